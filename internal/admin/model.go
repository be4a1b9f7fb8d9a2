// Package admin aggregates operational data for the dashboard. Access is
// restricted to the configured admin email list.
package admin

import "time"

// UserRow is one user as the dashboard sees it.
type UserRow struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Credits   int       `json:"credits"`
	CreatedAt time.Time `json:"createdAt"`
}

// TransactionRow is one purchase as the dashboard sees it.
type TransactionRow struct {
	UserID      string    `json:"userId"`
	AmountCents int       `json:"amountCents"`
	Credits     int       `json:"credits"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// GenerationRow is one generation as the dashboard sees it. The job
// description is truncated; the dashboard only needs a hint of the target.
type GenerationRow struct {
	UserID         string    `json:"userId"`
	JobDescription string    `json:"jobDescription"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Statistics are the dashboard headline numbers.
type Statistics struct {
	TotalUsers        int `json:"totalUsers"`
	TotalCreditsSold  int `json:"totalCreditsSold"`
	TotalRevenueCents int `json:"totalRevenueCents"`
	TotalGenerations  int `json:"totalGenerations"`
}

// Overview is the full dashboard payload.
type Overview struct {
	Users        []UserRow        `json:"users"`
	Transactions []TransactionRow `json:"transactions"`
	Generations  []GenerationRow  `json:"generations"`
	Statistics   Statistics       `json:"statistics"`
}
