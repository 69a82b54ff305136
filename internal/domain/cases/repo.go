package cases

import "context"

// DefaultRecentLimit bounds ListRecent when the caller does not supply a
// positive limit.
const DefaultRecentLimit = 10

// Repository is the persistence contract for case records. Create assigns
// the record's identifier and creation timestamp atomically with the insert;
// reads return snapshots and never observe an in-progress create.
type Repository interface {
	Create(ctx context.Context, rec *CaseRecord) error
	ListAll(ctx context.Context) ([]*CaseRecord, error)
	ListByCountry(ctx context.Context, code string) ([]*CaseRecord, error)
	ListByVillage(ctx context.Context, name string) ([]*CaseRecord, error)
	// ListRecent returns up to limit records ordered by creation time
	// descending.
	ListRecent(ctx context.Context, limit int) ([]*CaseRecord, error)
}
