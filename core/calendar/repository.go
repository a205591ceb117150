package calendar

import "context"

// Repository is the data-access collaborator of the register. Dates are ISO (YYYY-MM-DD),
// both bounds inclusive; AllSections (or "") does not filter by section.
type Repository interface {
	FetchActivities(ctx context.Context, from, to string, sec Section) (Buckets[Activity], error)
	FetchEvaluations(ctx context.Context, from, to string, sec Section) (Buckets[Evaluation], error)
}

// Store is a Repository that can also bulk-load records, e.g. from a JSON export.
// Records without an ID get a new one. Import returns the number of stored records.
type Store interface {
	Repository
	ImportActivities(ctx context.Context, b Buckets[Activity]) (int, error)
	ImportEvaluations(ctx context.Context, b Buckets[Evaluation]) (int, error)
}
