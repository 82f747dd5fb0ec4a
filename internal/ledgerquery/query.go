// Package ledgerquery turns a snapshot of ledger transactions into a
// filtered, sorted and paginated view. It is purely computational:
// it performs no I/O, holds no state and never mutates its inputs,
// so concurrent calls over independent snapshots need no coordination.
package ledgerquery

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/avasiliev/pocketledger/internal/domain"
)

// Run applies q to records and returns the requested page together with
// the total number of matches before pagination.
//
// All filter predicates combine with logical AND; a predicate whose
// filter field is empty (or the FilterAll sentinel) always passes.
// A page beyond the last one yields an empty page, not an error.
func Run(records []domain.Transaction, q domain.Query) (domain.TransactionPage, error) {
	if err := validate(q); err != nil {
		return domain.TransactionPage{}, err
	}

	matched := filter(records, q)

	sortTransactions(matched, q.SortField, q.SortDirection)

	return domain.TransactionPage{
		Items:        paginate(matched, q.Page, q.PageSize),
		TotalMatched: len(matched),
	}, nil
}

func validate(q domain.Query) error {
	if q.Page < 1 {
		return fmt.Errorf("%w: page must be positive, got %d", domain.ErrInvalidQuery, q.Page)
	}

	if q.PageSize < 1 {
		return fmt.Errorf("%w: page size must be positive, got %d", domain.ErrInvalidQuery, q.PageSize)
	}

	if !q.SortField.Valid() {
		return fmt.Errorf("%w: unknown sort field %q", domain.ErrInvalidQuery, q.SortField)
	}

	if !q.SortDirection.Valid() {
		return fmt.Errorf("%w: unknown sort direction %q", domain.ErrInvalidQuery, q.SortDirection)
	}

	return nil
}

func filter(records []domain.Transaction, q domain.Query) []domain.Transaction {
	search := strings.ToLower(q.SearchTerm)
	period := domain.DateRange{Start: q.StartDate, End: q.EndDate}

	matched := make([]domain.Transaction, 0, len(records))

	for _, tx := range records {
		if search != "" &&
			!strings.Contains(strings.ToLower(tx.Description), search) &&
			!strings.Contains(strings.ToLower(tx.Category), search) {
			continue
		}

		if filterActive(q.Category) && tx.Category != q.Category {
			continue
		}

		if filterActive(q.Account) && tx.Account != q.Account {
			continue
		}

		if !period.Contains(tx.Date) {
			continue
		}

		matched = append(matched, tx)
	}

	return matched
}

func filterActive(value string) bool {
	return value != "" && value != domain.FilterAll
}

// sortTransactions orders txs stably on the given field. Descending
// order reverses the comparator outcome rather than the sorted slice,
// so records with equal keys keep their input order either way.
func sortTransactions(txs []domain.Transaction, field domain.SortField, dir domain.SortDirection) {
	var compare func(a, b domain.Transaction) int

	switch field {
	case domain.SortByDate:
		compare = func(a, b domain.Transaction) int {
			da, db := domain.CalendarDate(a.Date), domain.CalendarDate(b.Date)
			switch {
			case da.Before(db):
				return -1
			case da.After(db):
				return 1
			}
			return 0
		}
	case domain.SortByAmount:
		compare = func(a, b domain.Transaction) int {
			return a.Amount.Cmp(b.Amount)
		}
	case domain.SortByDescription:
		// A collator buffers internally and is not safe for concurrent
		// use, hence one per call.
		c := collate.New(language.English, collate.IgnoreCase)
		compare = func(a, b domain.Transaction) int {
			return c.CompareString(a.Description, b.Description)
		}
	}

	sort.SliceStable(txs, func(i, j int) bool {
		if dir == domain.SortDesc {
			return compare(txs[i], txs[j]) > 0
		}

		return compare(txs[i], txs[j]) < 0
	})
}

func paginate(txs []domain.Transaction, page, pageSize int) []domain.Transaction {
	// (page-1)*pageSize can overflow for huge yet valid page values, so
	// compare against the last page index before multiplying.
	if len(txs) == 0 || page-1 > (len(txs)-1)/pageSize {
		return []domain.Transaction{}
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(txs) {
		end = len(txs)
	}

	return txs[start:end]
}
