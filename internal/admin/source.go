package admin

import "context"

// Source loads dashboard data.
type Source interface {
	Overview(ctx context.Context) (Overview, error)
}

// EmptySource serves an empty dashboard when no database is configured.
type EmptySource struct{}

// Overview returns an empty overview.
func (EmptySource) Overview(ctx context.Context) (Overview, error) {
	if err := ctx.Err(); err != nil {
		return Overview{}, err
	}
	return Overview{
		Users:        []UserRow{},
		Transactions: []TransactionRow{},
		Generations:  []GenerationRow{},
	}, nil
}

var _ Source = EmptySource{}
