package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrBudgetNotFound indicates that the budget is not found.
	ErrBudgetNotFound = errors.New("budget not found")
	// ErrBudgetAlreadyExists indicates that the owner already
	// budgets the given category.
	ErrBudgetAlreadyExists = errors.New("budget for category already exists")
	// ErrInvalidBudget indicates a negative budgeted amount.
	ErrInvalidBudget = errors.New("budgeted amount must not be negative")
)

// Budget holds a spending cap for one category. The reporting period
// is supplied by the caller at evaluation time, not tracked here.
type Budget struct {
	ID        int64           `json:"id"`
	Owner     string          `json:"-"`
	Category  string          `json:"category"`
	Budgeted  decimal.Decimal `json:"budgeted"`
	CreatedAt time.Time       `json:"created_at"`
}

// StatusTier qualifies how much of a budget has been consumed.
type StatusTier string

// Status tiers ordered from best to worst.
const (
	StatusHealthy  StatusTier = "healthy"
	StatusWarning  StatusTier = "warning"
	StatusCritical StatusTier = "critical"
)

// BudgetStatus is the evaluated state of one budget over a period.
type BudgetStatus struct {
	Category  string          `json:"category"`
	Budgeted  decimal.Decimal `json:"budgeted"`
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
	Status    StatusTier      `json:"status"`
}

// CategorySpending is one category's share of total spending
// over an analysis period.
type CategorySpending struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}

// SpendingAnalysis summarizes expenses by category over a period.
type SpendingAnalysis struct {
	TotalSpending decimal.Decimal    `json:"total_spending"`
	Categories    []CategorySpending `json:"categories"`
}
