package credits

import "context"

// Service contains business logic for credit balances.
type Service struct {
	Store Store
}

// NewService constructs a Service.
func NewService(store Store) *Service {
	return &Service{Store: store}
}

// Balance returns the current credit count for a user.
func (s *Service) Balance(ctx context.Context, userID string) (int, error) {
	b, err := s.Store.Get(ctx, userID)
	if err != nil {
		return 0, err
	}
	return b.Credits, nil
}

// Consume subtracts n credits, failing with ErrInsufficientCredits when the
// balance is too low. The store applies the check and the subtraction in one
// transaction, so two concurrent downloads cannot both spend the last credit.
func (s *Service) Consume(ctx context.Context, userID string, n int) (int, error) {
	b, err := s.Store.Consume(ctx, userID, n)
	if err != nil {
		return 0, err
	}
	return b.Credits, nil
}

// Grant adds n credits to a user's balance.
func (s *Service) Grant(ctx context.Context, userID string, n int) (int, error) {
	b, err := s.Store.Grant(ctx, userID, n)
	if err != nil {
		return 0, err
	}
	return b.Credits, nil
}
