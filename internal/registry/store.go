package registry

import "context"

// ReportStore abstracts report persistence so the service can run against
// in-memory, PostgreSQL, or cache-decorated backends without rewiring
// business code.
//
// Create assigns the next dense id (starting at 1) and returns it. SetMatched
// and SetReturned mutate both sides of a pair atomically; implementations
// must apply either both changes or neither.
type ReportStore interface {
	Create(ctx context.Context, report Report) (int64, error)
	Get(ctx context.Context, id int64) (Report, error)
	List(ctx context.Context) ([]Report, error)
	Count(ctx context.Context) (int64, error)
	SetMatched(ctx context.Context, lostID, foundID int64) error
	SetReturned(ctx context.Context, lostID, foundID int64) error
}
