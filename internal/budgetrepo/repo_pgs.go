// Package budgetrepo manages repository layer of category budgets.
package budgetrepo

import (
	"context"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/avasiliev/pocketledger/internal/domain"
	"github.com/avasiliev/pocketledger/pkg/dbpkg"
	"github.com/avasiliev/pocketledger/pkg/errorspkg"
)

// RepoPGS facilitates budget repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns budget RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    budgets (owner, category, budgeted)
VALUES
    ($1, $2, $3)
RETURNING id, owner, category, budgeted, created_at
`

// Create stores a budget for the owner's category and then returns it.
func (r *RepoPGS) Create(ctx context.Context, owner, category, budgeted string) (domain.Budget, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, owner, category, budgeted)

	var b domain.Budget

	err := row.Scan(&b.ID, &b.Owner, &b.Category, &b.Budgeted, &b.CreatedAt)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "budgets_owner_category_key" {
				return b, domain.ErrBudgetAlreadyExists
			}
		}

		return b, errorspkg.ErrInternal
	}

	return b, nil
}

const listByOwnerQuery = `
SELECT id, owner, category, budgeted, created_at
FROM budgets
WHERE owner = $1
ORDER BY category
`

// ListByOwner returns all the owner's budgets ordered by category.
func (r *RepoPGS) ListByOwner(ctx context.Context, owner string) ([]domain.Budget, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listByOwnerQuery, owner)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	var budgets []domain.Budget

	for rows.Next() {
		var b domain.Budget

		if err := rows.Scan(&b.ID, &b.Owner, &b.Category, &b.Budgeted, &b.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		budgets = append(budgets, b)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return budgets, nil
}

const deleteQuery = `
DELETE FROM budgets
WHERE id = $1 AND owner = $2
`

// Delete removes the owner's budget with the given ID.
func (r *RepoPGS) Delete(ctx context.Context, id int64, owner string) error {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, deleteQuery, id, owner)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	affected, err := res.RowsAffected()
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if affected == 0 {
		return domain.ErrBudgetNotFound
	}

	return nil
}
