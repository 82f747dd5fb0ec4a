// Package transactionservice manages business logic layer of ledger transactions.
package transactionservice

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/avasiliev/pocketledger/internal/domain"
	"github.com/avasiliev/pocketledger/internal/ledgerquery"
)

// Repo provides data access layer interface needed by transaction service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transactionservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateTransactionParams) (domain.Transaction, error)
	Get(ctx context.Context, id int64) (domain.Transaction, error)
	ListByOwner(ctx context.Context, owner string) ([]domain.Transaction, error)
	Delete(ctx context.Context, id int64, owner string) error
}

// Service facilitates transaction service layer logic.
type Service struct {
	repo Repo
}

// New returns transaction service struct to manage transaction bussines logic.
func New(tr Repo) *Service {
	return &Service{repo: tr}
}

// Create validates and records a transaction for the given owner.
func (s *Service) Create(ctx context.Context, arg domain.CreateTransactionParams) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	if strings.TrimSpace(arg.Description) == "" {
		return domain.Transaction{}, domain.ErrEmptyDescription
	}

	if _, err := decimal.NewFromString(arg.Amount); err != nil {
		l.Info().Err(err).Send()
		return domain.Transaction{}, domain.ErrInvalidAmount
	}

	if arg.Date.IsZero() {
		arg.Date = time.Now()
	}

	tx, err := s.repo.Create(ctx, arg)
	if err != nil {
		return tx, err
	}

	return tx, nil
}

// Get returns the owner's transaction with the given ID. A transaction
// belonging to somebody else reads as not found.
func (s *Service) Get(ctx context.Context, id int64, owner string) (domain.Transaction, error) {
	tx, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Transaction{}, err
	}

	if tx.Owner != owner {
		return domain.Transaction{}, domain.ErrTransactionNotFound
	}

	return tx, nil
}

// Query returns one page of the owner's ledger according to q.
func (s *Service) Query(ctx context.Context, owner string, q domain.Query) (domain.TransactionPage, error) {
	records, err := s.repo.ListByOwner(ctx, owner)
	if err != nil {
		return domain.TransactionPage{}, err
	}

	return ledgerquery.Run(records, q)
}

// Snapshot returns the owner's full ledger in creation order.
func (s *Service) Snapshot(ctx context.Context, owner string) ([]domain.Transaction, error) {
	return s.repo.ListByOwner(ctx, owner)
}

// Delete removes the owner's transaction with the given ID.
func (s *Service) Delete(ctx context.Context, id int64, owner string) error {
	return s.repo.Delete(ctx, id, owner)
}
