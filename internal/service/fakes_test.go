package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/yourorg/shiftline/internal/domain"
	"github.com/yourorg/shiftline/internal/notify"
)

type memEmployeeRepo struct {
	nextID    int64
	employees map[int64]*domain.Employee
	users     *memUserRepo // set by tests exercising provisioning
}

func newMemEmployeeRepo() *memEmployeeRepo {
	return &memEmployeeRepo{employees: map[int64]*domain.Employee{}}
}

// create is a seeding helper for tests that need an employee row
// without the paired user account.
func (m *memEmployeeRepo) create(e *domain.Employee) {
	m.nextID++
	e.ID = m.nextID
	cp := *e
	m.employees[e.ID] = &cp
}

// CreateWithUser mirrors the transactional repository: the employee row
// is removed again when the user insert fails, so callers never observe
// a half-provisioned state.
func (m *memEmployeeRepo) CreateWithUser(ctx context.Context, e *domain.Employee, baseUsername, passwordHash string) (string, error) {
	m.nextID++
	e.ID = m.nextID
	cp := *e
	m.employees[e.ID] = &cp

	username := baseUsername
	if _, taken := m.users.byUsername[username]; taken {
		username = fmt.Sprintf("%s%d", baseUsername, e.ID)
	}
	u := &domain.User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         domain.RoleEmployee,
		EmployeeID:   &e.ID,
	}
	if err := m.users.Create(ctx, u); err != nil {
		delete(m.employees, e.ID)
		m.nextID--
		return "", err
	}
	return username, nil
}

func (m *memEmployeeRepo) GetByID(_ context.Context, id int64) (*domain.Employee, error) {
	if e, ok := m.employees[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, fmt.Errorf("employee %d: %w", id, domain.ErrNotFound)
}

func (m *memEmployeeRepo) List(_ context.Context) ([]*domain.Employee, error) {
	out := []*domain.Employee{}
	for i := int64(1); i <= m.nextID; i++ {
		if e, ok := m.employees[i]; ok {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memEmployeeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.employees[id]; !ok {
		return fmt.Errorf("employee %d: %w", id, domain.ErrNotFound)
	}
	delete(m.employees, id)
	return nil
}

type memUserRepo struct {
	nextID     int64
	byUsername map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byUsername: map[string]*domain.User{}}
}

func (m *memUserRepo) Create(_ context.Context, u *domain.User) error {
	if _, ok := m.byUsername[u.Username]; ok {
		return fmt.Errorf("username %q: %w", u.Username, domain.ErrConflict)
	}
	m.nextID++
	u.ID = m.nextID
	cp := *u
	m.byUsername[u.Username] = &cp
	return nil
}

func (m *memUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	if u, ok := m.byUsername[username]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, fmt.Errorf("user %q: %w", username, domain.ErrNotFound)
}

func (m *memUserRepo) DeleteByEmployee(_ context.Context, employeeID int64) error {
	for name, u := range m.byUsername {
		if u.EmployeeID != nil && *u.EmployeeID == employeeID {
			delete(m.byUsername, name)
		}
	}
	return nil
}

type memWorkLogRepo struct {
	nextID int64
	logs   map[int64]*domain.WorkLog
	names  map[int64]string // employee id -> name, for joins
	phones map[int64]string
	stats  *domain.WorkLogStats
}

func newMemWorkLogRepo() *memWorkLogRepo {
	return &memWorkLogRepo{
		logs:   map[int64]*domain.WorkLog{},
		names:  map[int64]string{},
		phones: map[int64]string{},
	}
}

func (m *memWorkLogRepo) Create(_ context.Context, l *domain.WorkLog) error {
	m.nextID++
	l.ID = m.nextID
	cp := *l
	m.logs[l.ID] = &cp
	return nil
}

func (m *memWorkLogRepo) List(_ context.Context) ([]*domain.WorkLogEntry, error) {
	out := []*domain.WorkLogEntry{}
	for i := int64(1); i <= m.nextID; i++ {
		l, ok := m.logs[i]
		if !ok {
			continue
		}
		out = append(out, &domain.WorkLogEntry{WorkLog: *l, EmployeeName: m.names[l.EmployeeID]})
	}
	return out, nil
}

func (m *memWorkLogRepo) TogglePaid(_ context.Context, id int64) (*domain.WorkLog, error) {
	l, ok := m.logs[id]
	if !ok {
		return nil, fmt.Errorf("work log %d: %w", id, domain.ErrNotFound)
	}
	l.IsPaid = !l.IsPaid
	cp := *l
	return &cp, nil
}

func (m *memWorkLogRepo) UpdateNote(_ context.Context, id int64, note string) error {
	l, ok := m.logs[id]
	if !ok {
		return fmt.Errorf("work log %d: %w", id, domain.ErrNotFound)
	}
	l.Notes = note
	return nil
}

func (m *memWorkLogRepo) PayeesForLogs(_ context.Context, ids []int64) ([]domain.Payee, error) {
	seen := map[int64]bool{}
	out := []domain.Payee{}
	for _, id := range ids {
		l, ok := m.logs[id]
		if !ok || seen[l.EmployeeID] {
			continue
		}
		seen[l.EmployeeID] = true
		out = append(out, domain.Payee{
			EmployeeID: l.EmployeeID,
			Name:       m.names[l.EmployeeID],
			Phone:      m.phones[l.EmployeeID],
		})
	}
	return out, nil
}

func (m *memWorkLogRepo) MarkPaid(_ context.Context, ids []int64) (int64, error) {
	var n int64
	for _, id := range ids {
		if l, ok := m.logs[id]; ok {
			l.IsPaid = true
			n++
		}
	}
	return n, nil
}

func (m *memWorkLogRepo) Stats(_ context.Context, since string) (*domain.WorkLogStats, error) {
	if m.stats != nil {
		return m.stats, nil
	}
	s := &domain.WorkLogStats{}
	totals := map[int64]float64{}
	for _, l := range m.logs {
		if l.IsPaid {
			s.PaidCount++
		} else {
			s.UnpaidCount++
			s.UnpaidHours += l.Hours
		}
		if l.Date >= since {
			s.WeekHours += l.Hours
		}
		totals[l.EmployeeID] += l.Hours
	}
	var topID int64
	for id, h := range totals {
		if topID == 0 || h > totals[topID] || (h == totals[topID] && id < topID) {
			topID = id
		}
	}
	if topID != 0 {
		s.Top = &domain.TopEmployee{Name: m.names[topID], Hours: totals[topID]}
	}
	return s, nil
}

// memShiftRepo mirrors the conditional-update claim: the status check
// and the transition happen under one lock, so concurrent claims see
// exactly one winner.
type memShiftRepo struct {
	mu       sync.Mutex
	nextID   int64
	requests map[int64]*domain.ShiftRequest
	names    map[int64]string
	workLogs []*domain.WorkLog
}

func newMemShiftRepo() *memShiftRepo {
	return &memShiftRepo{requests: map[int64]*domain.ShiftRequest{}, names: map[int64]string{}}
}

func (m *memShiftRepo) Create(_ context.Context, s *domain.ShiftRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	s.ID = m.nextID
	s.Status = domain.ShiftOpen
	cp := *s
	m.requests[s.ID] = &cp
	return nil
}

func (m *memShiftRepo) ListOpen(_ context.Context) ([]*domain.OpenShift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.OpenShift{}
	for i := int64(1); i <= m.nextID; i++ {
		r, ok := m.requests[i]
		if !ok || r.Status != domain.ShiftOpen {
			continue
		}
		out = append(out, &domain.OpenShift{ShiftRequest: *r, RequesterName: m.names[r.RequesterID]})
	}
	return out, nil
}

func (m *memShiftRepo) Claim(_ context.Context, requestID, takerID int64, hours float64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[requestID]
	if !ok || r.Status != domain.ShiftOpen {
		return "", fmt.Errorf("shift request %d already taken or not found: %w", requestID, domain.ErrConflict)
	}
	r.Status = domain.ShiftTaken
	r.TakerID = &takerID
	m.workLogs = append(m.workLogs, &domain.WorkLog{
		EmployeeID: takerID,
		Date:       r.Date,
		Hours:      hours,
	})
	return r.Date, nil
}

type sentMessage struct {
	target  notify.Target
	message string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentMessage
}

func (n *recordingNotifier) Notify(target notify.Target, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMessage{target: target, message: message})
}

func (n *recordingNotifier) messages() []sentMessage {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentMessage{}, n.sent...)
}
