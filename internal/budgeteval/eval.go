// Package budgeteval derives budget rollups and spending summaries from
// a snapshot of ledger transactions. Like ledgerquery it is pure:
// no I/O, no state, no mutation of inputs.
package budgeteval

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/avasiliev/pocketledger/internal/domain"
)

// Ratio boundaries between status tiers, compared against the literal
// spent/budgeted quotient.
var (
	warningRatio  = decimal.NewFromFloat(0.75)
	criticalRatio = decimal.NewFromFloat(0.90)
)

var hundred = decimal.NewFromInt(100)

// Evaluate computes the spent amount, the remaining amount and a status
// tier for every budget, counting only expenses (negative amounts) whose
// category matches and whose date falls within period.
//
// Remaining may go negative when a budget is overspent.
func Evaluate(records []domain.Transaction, budgets []domain.Budget, period domain.DateRange) ([]domain.BudgetStatus, error) {
	statuses := make([]domain.BudgetStatus, 0, len(budgets))

	for _, b := range budgets {
		if b.Budgeted.IsNegative() {
			return nil, fmt.Errorf("%w: category %q budgeted %s",
				domain.ErrInvalidBudget, b.Category, b.Budgeted)
		}

		spent := spentInCategory(records, b.Category, period)

		statuses = append(statuses, domain.BudgetStatus{
			Category:  b.Category,
			Budgeted:  b.Budgeted,
			Spent:     spent,
			Remaining: b.Budgeted.Sub(spent),
			Status:    tier(spent, b.Budgeted),
		})
	}

	return statuses, nil
}

func spentInCategory(records []domain.Transaction, category string, period domain.DateRange) decimal.Decimal {
	spent := decimal.Zero

	for _, tx := range records {
		if tx.Category != category || !tx.Amount.IsNegative() {
			continue
		}

		if !period.Contains(tx.Date) {
			continue
		}

		spent = spent.Add(tx.Amount.Abs())
	}

	return spent
}

// tier buckets the spent/budgeted ratio:
// over 0.90 critical, over 0.75 warning, otherwise healthy.
// A zero budget is critical as soon as anything is spent.
func tier(spent, budgeted decimal.Decimal) domain.StatusTier {
	if budgeted.IsZero() {
		if spent.IsPositive() {
			return domain.StatusCritical
		}

		return domain.StatusHealthy
	}

	ratio := spent.Div(budgeted)

	switch {
	case ratio.GreaterThan(criticalRatio):
		return domain.StatusCritical
	case ratio.GreaterThan(warningRatio):
		return domain.StatusWarning
	}

	return domain.StatusHealthy
}

// AnalyzeSpending totals expenses by category over period and reports
// each category's percentage share, largest first. Categories with
// equal totals order by name so repeated calls stay deterministic.
func AnalyzeSpending(records []domain.Transaction, period domain.DateRange) domain.SpendingAnalysis {
	totals := make(map[string]decimal.Decimal)
	totalSpending := decimal.Zero

	for _, tx := range records {
		if !tx.Amount.IsNegative() || !period.Contains(tx.Date) {
			continue
		}

		amount := tx.Amount.Abs()
		totals[tx.Category] = totals[tx.Category].Add(amount)
		totalSpending = totalSpending.Add(amount)
	}

	categories := make([]domain.CategorySpending, 0, len(totals))

	for category, amount := range totals {
		percentage := decimal.Zero
		if totalSpending.IsPositive() {
			percentage = amount.Div(totalSpending).Mul(hundred).Round(2)
		}

		categories = append(categories, domain.CategorySpending{
			Category:   category,
			Amount:     amount,
			Percentage: percentage,
		})
	}

	sort.Slice(categories, func(i, j int) bool {
		if !categories[i].Amount.Equal(categories[j].Amount) {
			return categories[i].Amount.GreaterThan(categories[j].Amount)
		}

		return categories[i].Category < categories[j].Category
	})

	return domain.SpendingAnalysis{
		TotalSpending: totalSpending,
		Categories:    categories,
	}
}
