package payments

import "time"

// Pack is a purchasable credit bundle.
type Pack struct {
	ID         string `json:"id"`
	Credits    int    `json:"credits"`
	PriceCents int    `json:"priceCents"`
	Currency   string `json:"currency"`
}

// Packs is the fixed catalog. Prices are what the checkout page shows; the
// processor is told the amount on every session, so the two cannot drift.
var Packs = []Pack{
	{ID: "pack_5", Credits: 5, PriceCents: 499, Currency: "eur"},
	{ID: "pack_20", Credits: 20, PriceCents: 1499, Currency: "eur"},
	{ID: "pack_50", Credits: 50, PriceCents: 2999, Currency: "eur"},
}

// PackByID resolves a catalog entry.
func PackByID(id string) (Pack, bool) {
	for _, p := range Packs {
		if p.ID == id {
			return p, true
		}
	}
	return Pack{}, false
}

// Transaction statuses.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Transaction is one credit purchase attempt.
type Transaction struct {
	ID          string
	UserID      string
	PackID      string
	Credits     int
	AmountCents int
	Currency    string
	Status      string
	ProviderRef string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
