// Package transactionrepo manages repository layer of ledger transactions.
package transactionrepo

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/avasiliev/pocketledger/internal/domain"
	"github.com/avasiliev/pocketledger/pkg/dbpkg"
	"github.com/avasiliev/pocketledger/pkg/errorspkg"
)

// RepoPGS facilitates transaction repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns transaction RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    transactions (owner, description, amount, category, date, account)
VALUES
    ($1, $2, $3, $4, $5, $6)
RETURNING id, owner, description, amount, category, date, account, created_at
`

// Create records the transaction and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateTransactionParams) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.Owner, arg.Description, arg.Amount, arg.Category,
		domain.CalendarDate(arg.Date), arg.Account)

	tx, err := scanTransaction(row)
	if err != nil {
		l.Error().Err(err).Send()
		return tx, errorspkg.ErrInternal
	}

	return tx, nil
}

const getQuery = `
SELECT id, owner, description, amount, category, date, account, created_at
FROM transactions
WHERE id = $1
`

// Get returns the transaction with the given ID.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	tx, err := scanTransaction(r.db.QueryRowContext(ctx, getQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return tx, domain.ErrTransactionNotFound
		}

		l.Error().Err(err).Send()

		return tx, errorspkg.ErrInternal
	}

	return tx, nil
}

const listByOwnerQuery = `
SELECT id, owner, description, amount, category, date, account, created_at
FROM transactions
WHERE owner = $1
ORDER BY id
`

// ListByOwner returns the owner's full ledger snapshot in creation order.
// The query engine filters and sorts in memory, so no predicates are
// pushed down here.
func (r *RepoPGS) ListByOwner(ctx context.Context, owner string) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listByOwnerQuery, owner)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	var txs []domain.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return txs, nil
}

const deleteQuery = `
DELETE FROM transactions
WHERE id = $1 AND owner = $2
`

// Delete removes the owner's transaction with the given ID.
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
		return domain.ErrTransactionNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row rowScanner) (domain.Transaction, error) {
	var tx domain.Transaction

	err := row.Scan(
		&tx.ID,
		&tx.Owner,
		&tx.Description,
		&tx.Amount,
		&tx.Category,
		&tx.Date,
		&tx.Account,
		&tx.CreatedAt,
	)

	return tx, err
}
