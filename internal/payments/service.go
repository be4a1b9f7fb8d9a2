package payments

import (
	"context"
	"time"

	"github.com/google/uuid"

	"cvbien-backend/internal/shared/telemetry"
)

// CreditGranter is the slice of the credits service payments needs.
type CreditGranter interface {
	Grant(ctx context.Context, userID string, n int) (int, error)
}

// Service contains business logic for credit purchases.
type Service struct {
	Repo      Repo
	Processor Processor
	Credits   CreditGranter
}

// Checkout starts a purchase: a pending transaction is recorded, then the
// processor session is created. The caller is redirected to the returned
// checkout URL; credits are only granted after Confirm sees the session paid.
func (s *Service) Checkout(ctx context.Context, userID, packID string) (Transaction, string, error) {
	if userID == "" {
		return Transaction{}, "", ErrInvalidInput
	}
	pack, ok := PackByID(packID)
	if !ok {
		return Transaction{}, "", ErrUnknownPack
	}

	now := time.Now().UTC()
	tx := Transaction{
		ID:          uuid.NewString(),
		UserID:      userID,
		PackID:      pack.ID,
		Credits:     pack.Credits,
		AmountCents: pack.PriceCents,
		Currency:    pack.Currency,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	session, err := s.Processor.CreateSession(ctx, userID, pack, tx.ID)
	if err != nil {
		return Transaction{}, "", err
	}
	tx.ProviderRef = session.ID

	if err := s.Repo.Create(ctx, tx); err != nil {
		return Transaction{}, "", err
	}

	telemetry.Info("payment.checkout_started", map[string]any{
		"transaction_id": tx.ID,
		"user_id":        userID,
		"pack_id":        pack.ID,
		"amount_cents":   pack.PriceCents,
	})
	return tx, session.CheckoutURL, nil
}

// Confirm checks the processor session and, when paid, completes the
// transaction and grants its credits. Confirm is idempotent: only the call
// that flips the status grants, replays just return the stored transaction.
func (s *Service) Confirm(ctx context.Context, userID, transactionID string) (Transaction, error) {
	if userID == "" || transactionID == "" {
		return Transaction{}, ErrInvalidInput
	}

	tx, err := s.Repo.GetByID(ctx, userID, transactionID)
	if err != nil {
		return Transaction{}, err
	}
	if tx.Status == StatusCompleted {
		return tx, nil
	}
	if tx.Status == StatusFailed {
		return tx, ErrPaymentIncomplete
	}

	status, err := s.Processor.GetSession(ctx, tx.ProviderRef)
	if err != nil {
		return Transaction{}, err
	}
	if !status.Paid {
		return tx, ErrPaymentIncomplete
	}

	flipped, err := s.Repo.UpdateStatus(ctx, userID, transactionID, StatusCompleted)
	if err != nil {
		return Transaction{}, err
	}
	tx.Status = StatusCompleted
	if flipped {
		if _, err := s.Credits.Grant(ctx, userID, tx.Credits); err != nil {
			// The transaction is completed but the grant failed; surface the
			// error so the client retries through support rather than paying
			// again.
			telemetry.Error("payment.grant_failed", map[string]any{
				"transaction_id": tx.ID,
				"user_id":        userID,
				"credits":        tx.Credits,
				"error":          err.Error(),
			})
			return tx, err
		}
		telemetry.Info("payment.completed", map[string]any{
			"transaction_id": tx.ID,
			"user_id":        userID,
			"credits":        tx.Credits,
		})
	}
	return tx, nil
}

// List returns a user's transactions, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Transaction, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}
