package domain

import "context"

// Shift request statuses. The only legal transition is open -> taken;
// taken is terminal.
const (
	ShiftOpen  = "open"
	ShiftTaken = "taken"
)

// ShiftRequest is an offer by one employee to give up a shift,
// claimable by another. TakerID is set if and only if status is taken.
type ShiftRequest struct {
	ID          int64
	RequesterID int64
	Date        string // ISO 8601 YYYY-MM-DD
	TakerID     *int64
	Status      string
}

// OpenShift is an open ShiftRequest joined with the requester's name.
type OpenShift struct {
	ShiftRequest
	RequesterName string
}

// ShiftRepository defines data access for shift requests
type ShiftRepository interface {
	Create(ctx context.Context, s *ShiftRequest) error

	// ListOpen returns open requests ordered by date ascending,
	// ties broken by insertion order.
	ListOpen(ctx context.Context) ([]*OpenShift, error)

	// Claim transitions the request open -> taken and creates the
	// taker's work log in the same transaction. The status check and
	// update are a single conditional statement, so of N concurrent
	// claims exactly one succeeds; the rest get ErrConflict. Returns
	// the request's date.
	Claim(ctx context.Context, requestID, takerID int64, hours float64) (string, error)
}
