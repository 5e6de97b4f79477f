package handler

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/yourorg/shiftline/internal/domain"
	"github.com/yourorg/shiftline/internal/notify"
	"github.com/yourorg/shiftline/internal/service"
	"github.com/yourorg/shiftline/pkg/cache"
)

// In-memory repositories backing a full router, so handler tests run
// the real service layer end to end.

type stubEmployeeRepo struct {
	nextID    int64
	employees map[int64]*domain.Employee
	users     *stubUserRepo
}

// CreateWithUser mirrors the transactional repository: the employee row
// is rolled back when the user insert fails.
func (m *stubEmployeeRepo) CreateWithUser(ctx context.Context, e *domain.Employee, baseUsername, passwordHash string) (string, error) {
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

func (m *stubEmployeeRepo) GetByID(_ context.Context, id int64) (*domain.Employee, error) {
	if e, ok := m.employees[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, fmt.Errorf("employee %d: %w", id, domain.ErrNotFound)
}

func (m *stubEmployeeRepo) List(_ context.Context) ([]*domain.Employee, error) {
	out := []*domain.Employee{}
	for i := int64(1); i <= m.nextID; i++ {
		if e, ok := m.employees[i]; ok {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *stubEmployeeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.employees[id]; !ok {
		return fmt.Errorf("employee %d: %w", id, domain.ErrNotFound)
	}
	delete(m.employees, id)
	return nil
}

type stubUserRepo struct {
	nextID     int64
	byUsername map[string]*domain.User
}

func (m *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	if _, ok := m.byUsername[u.Username]; ok {
		return fmt.Errorf("username %q: %w", u.Username, domain.ErrConflict)
	}
	m.nextID++
	u.ID = m.nextID
	cp := *u
	m.byUsername[u.Username] = &cp
	return nil
}

func (m *stubUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	if u, ok := m.byUsername[username]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, fmt.Errorf("user %q: %w", username, domain.ErrNotFound)
}

func (m *stubUserRepo) DeleteByEmployee(_ context.Context, employeeID int64) error {
	for name, u := range m.byUsername {
		if u.EmployeeID != nil && *u.EmployeeID == employeeID {
			delete(m.byUsername, name)
		}
	}
	return nil
}

type stubWorkLogRepo struct {
	nextID    int64
	logs      map[int64]*domain.WorkLog
	employees *stubEmployeeRepo
}

func (m *stubWorkLogRepo) Create(_ context.Context, l *domain.WorkLog) error {
	m.nextID++
	l.ID = m.nextID
	cp := *l
	m.logs[l.ID] = &cp
	return nil
}

func (m *stubWorkLogRepo) List(_ context.Context) ([]*domain.WorkLogEntry, error) {
	out := []*domain.WorkLogEntry{}
	for i := int64(1); i <= m.nextID; i++ {
		l, ok := m.logs[i]
		if !ok {
			continue
		}
		name := ""
		if e, ok := m.employees.employees[l.EmployeeID]; ok {
			name = e.Name
		}
		out = append(out, &domain.WorkLogEntry{WorkLog: *l, EmployeeName: name})
	}
	return out, nil
}

func (m *stubWorkLogRepo) TogglePaid(_ context.Context, id int64) (*domain.WorkLog, error) {
	l, ok := m.logs[id]
	if !ok {
		return nil, fmt.Errorf("work log %d: %w", id, domain.ErrNotFound)
	}
	l.IsPaid = !l.IsPaid
	cp := *l
	return &cp, nil
}

func (m *stubWorkLogRepo) UpdateNote(_ context.Context, id int64, note string) error {
	l, ok := m.logs[id]
	if !ok {
		return fmt.Errorf("work log %d: %w", id, domain.ErrNotFound)
	}
	l.Notes = note
	return nil
}

func (m *stubWorkLogRepo) PayeesForLogs(_ context.Context, ids []int64) ([]domain.Payee, error) {
	seen := map[int64]bool{}
	out := []domain.Payee{}
	for _, id := range ids {
		l, ok := m.logs[id]
		if !ok || seen[l.EmployeeID] {
			continue
		}
		seen[l.EmployeeID] = true
		p := domain.Payee{EmployeeID: l.EmployeeID}
		if e, ok := m.employees.employees[l.EmployeeID]; ok {
			p.Name = e.Name
			p.Phone = e.Phone
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *stubWorkLogRepo) MarkPaid(_ context.Context, ids []int64) (int64, error) {
	var n int64
	for _, id := range ids {
		if l, ok := m.logs[id]; ok {
			l.IsPaid = true
			n++
		}
	}
	return n, nil
}

func (m *stubWorkLogRepo) Stats(_ context.Context, since string) (*domain.WorkLogStats, error) {
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
		name := ""
		if e, ok := m.employees.employees[topID]; ok {
			name = e.Name
		}
		s.Top = &domain.TopEmployee{Name: name, Hours: totals[topID]}
	}
	return s, nil
}

type stubShiftRepo struct {
	mu        sync.Mutex
	nextID    int64
	requests  map[int64]*domain.ShiftRequest
	workLogs  *stubWorkLogRepo
	employees *stubEmployeeRepo
}

func (m *stubShiftRepo) Create(_ context.Context, s *domain.ShiftRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	s.ID = m.nextID
	s.Status = domain.ShiftOpen
	cp := *s
	m.requests[s.ID] = &cp
	return nil
}

func (m *stubShiftRepo) ListOpen(_ context.Context) ([]*domain.OpenShift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.OpenShift{}
	for i := int64(1); i <= m.nextID; i++ {
		r, ok := m.requests[i]
		if !ok || r.Status != domain.ShiftOpen {
			continue
		}
		name := ""
		if e, ok := m.employees.employees[r.RequesterID]; ok {
			name = e.Name
		}
		out = append(out, &domain.OpenShift{ShiftRequest: *r, RequesterName: name})
	}
	return out, nil
}

func (m *stubShiftRepo) Claim(ctx context.Context, requestID, takerID int64, hours float64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[requestID]
	if !ok || r.Status != domain.ShiftOpen {
		return "", fmt.Errorf("shift request %d already taken or not found: %w", requestID, domain.ErrConflict)
	}
	r.Status = domain.ShiftTaken
	r.TakerID = &takerID
	m.workLogs.Create(ctx, &domain.WorkLog{EmployeeID: takerID, Date: r.Date, Hours: hours})
	return r.Date, nil
}

type stubNotifier struct {
	mu   sync.Mutex
	sent []string
}

func (n *stubNotifier) Notify(_ notify.Target, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, message)
}

// newTestRouter wires the full API over in-memory storage the same
// way the server main does.
func newTestRouter() (*http.ServeMux, *stubNotifier) {
	users := &stubUserRepo{byUsername: map[string]*domain.User{}}
	employees := &stubEmployeeRepo{employees: map[int64]*domain.Employee{}, users: users}
	logs := &stubWorkLogRepo{logs: map[int64]*domain.WorkLog{}, employees: employees}
	shifts := &stubShiftRepo{requests: map[int64]*domain.ShiftRequest{}, workLogs: logs, employees: employees}
	notifier := &stubNotifier{}

	employeeService := service.NewEmployeeService(employees, users, "password123", nil, nil)
	authService := service.NewAuthService(users, nil)
	workLogService := service.NewWorkLogService(logs, employees, notifier, 7, nil, nil)
	shiftService := service.NewShiftService(shifts, employees, notifier, 7, "", nil, nil)
	dashboardService := service.NewDashboardService(logs, 20, nil)

	authService.EnsureAdmin(context.Background(), "admin123")

	statsCache := NewStatsCache(nil, cache.New(), time.Minute, nil)

	loginHandler := NewLoginHandler(authService, nil)
	employeeHandler := NewEmployeeHandler(employeeService, nil)
	workLogHandler := NewWorkLogHandler(workLogService, statsCache, nil)
	shiftHandler := NewShiftHandler(shiftService, statsCache, nil)
	dashboardHandler := NewDashboardHandler(dashboardService, statsCache, nil)
	notificationHandler := NewNotificationHandler(notifier, nil)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/login", loginHandler.ServeHTTP)
	mux.HandleFunc("GET /api/employees", employeeHandler.List)
	mux.HandleFunc("POST /api/employees", employeeHandler.Create)
	mux.HandleFunc("DELETE /api/employees/{id}", employeeHandler.Delete)
	mux.HandleFunc("GET /api/work-logs", workLogHandler.List)
	mux.HandleFunc("POST /api/work-logs", workLogHandler.Create)
	mux.HandleFunc("POST /api/work-logs/{id}/toggle-paid", workLogHandler.TogglePaid)
	mux.HandleFunc("POST /api/work-logs/{id}/notes", workLogHandler.UpdateNote)
	mux.HandleFunc("POST /api/work-logs/batch-pay", workLogHandler.BatchPay)
	mux.HandleFunc("GET /api/shift-requests", shiftHandler.List)
	mux.HandleFunc("POST /api/shift-requests", shiftHandler.Create)
	mux.HandleFunc("POST /api/shift-requests/{id}/take", shiftHandler.Take)
	mux.HandleFunc("GET /api/dashboard/stats", dashboardHandler.Stats)
	mux.HandleFunc("POST /api/notifications", notificationHandler.Send)

	return mux, notifier
}
