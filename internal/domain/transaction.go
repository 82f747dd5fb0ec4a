// Package domain provides defenitions of all entities.
package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrTransactionNotFound indicates that the transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrInvalidAmount indicates that the given amount is not a valid decimal.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrEmptyDescription indicates that the transaction description is blank.
	ErrEmptyDescription = errors.New("description must not be empty")
	// ErrInvalidQuery indicates that the ledger query parameters are malformed.
	ErrInvalidQuery = errors.New("invalid query")
)

// Transaction holds one financial event on a user's ledger.
//
// The sign of Amount is the sole income/expense indicator:
// negative amounts are expenses, positive amounts are income.
type Transaction struct {
	ID          int64           `json:"id"`
	Owner       string          `json:"-"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        time.Time       `json:"date"`
	Account     string          `json:"account"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CreateTransactionParams holds the fields required to record a transaction.
type CreateTransactionParams struct {
	Owner       string
	Description string
	Amount      string
	Category    string
	Date        time.Time
	Account     string
}

// FilterAll is the sentinel filter value that disables
// category and account filtering.
const FilterAll = "all"

// SortField enumerates the transaction fields a ledger query may sort on.
type SortField string

// Supported sort fields.
const (
	SortByDate        SortField = "date"
	SortByDescription SortField = "description"
	SortByAmount      SortField = "amount"
)

// Valid returns true if f is a member of the sort field enumeration.
func (f SortField) Valid() bool {
	switch f {
	case SortByDate, SortByDescription, SortByAmount:
		return true
	}

	return false
}

// SortDirection enumerates the supported sort orders.
type SortDirection string

// Supported sort directions.
const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Valid returns true if d is a member of the sort direction enumeration.
func (d SortDirection) Valid() bool {
	return d == SortAsc || d == SortDesc
}

// Query describes one ledger view request: which transactions to keep,
// how to order them and which page to return. It is a request shape,
// never persisted.
type Query struct {
	// SearchTerm matches description or category,
	// case-insensitive substring. Empty matches everything.
	SearchTerm string
	// Category keeps only exact matches unless empty or FilterAll.
	Category string
	// Account keeps only exact matches unless empty or FilterAll.
	Account string
	// StartDate and EndDate bound the transaction date inclusively.
	// A nil bound is open.
	StartDate *time.Time
	EndDate   *time.Time

	SortField     SortField
	SortDirection SortDirection

	// Page is 1-based.
	Page     int
	PageSize int
}

// TransactionPage is one page of a filtered, sorted ledger view.
//
// TotalMatched counts every transaction that satisfied the filters,
// regardless of pagination, so callers can derive the page count.
type TransactionPage struct {
	Items        []Transaction
	TotalMatched int
}

// DateRange bounds a reporting period inclusively. Nil bounds are open.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Contains returns true if the calendar date of t falls within the range.
func (r DateRange) Contains(t time.Time) bool {
	day := CalendarDate(t)

	if r.Start != nil && day.Before(CalendarDate(*r.Start)) {
		return false
	}

	if r.End != nil && day.After(CalendarDate(*r.End)) {
		return false
	}

	return true
}

// CalendarDate truncates t to its calendar date in UTC so that
// comparisons carry no time-of-day or timezone semantics.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
