package transactionrepo

import (
	"context"
	"database/sql"
	"log"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/avasiliev/pocketledger/internal/domain"
	"github.com/avasiliev/pocketledger/pkg/configpkg"
	"github.com/avasiliev/pocketledger/pkg/randompkg"

	_ "github.com/lib/pq"
)

var testRepo *RepoPGS

func TestMain(m *testing.M) {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	testDB, err := sql.Open(config.DBDriver, config.DBSource)
	if err != nil {
		log.Fatal("cannot connect to db:", err)
	}

	testRepo = NewRepoPGS(testDB)

	os.Exit(m.Run())
}

func createRandomTransaction(t *testing.T, owner string) domain.Transaction {
	t.Helper()

	arg := domain.CreateTransactionParams{
		Owner:       owner,
		Description: randompkg.String(12),
		Amount:      randompkg.ExpenseAmountBetween(1, 500),
		Category:    randompkg.Category(),
		Date:        randompkg.DateWithinDays(30),
		Account:     randompkg.Account(),
	}

	tx, err := testRepo.Create(context.Background(), arg)
	require.NoError(t, err)
	require.NotEmpty(t, tx)

	require.NotZero(t, tx.ID)
	require.Equal(t, arg.Owner, tx.Owner)
	require.Equal(t, arg.Description, tx.Description)
	require.True(t, tx.Amount.Equal(decimal.RequireFromString(arg.Amount)),
		"amount = %s, want %s", tx.Amount, arg.Amount)
	require.Equal(t, arg.Category, tx.Category)
	require.True(t, tx.Date.Equal(domain.CalendarDate(arg.Date)),
		"date = %s, want %s", tx.Date, arg.Date)
	require.Equal(t, arg.Account, tx.Account)
	require.NotZero(t, tx.CreatedAt)

	t.Cleanup(func() {
		if err := testRepo.Delete(context.Background(), tx.ID, owner); err != nil &&
			err != domain.ErrTransactionNotFound {
			t.Errorf("cleanup delete failed: %v", err)
		}
	})

	return tx
}

func TestCreate(t *testing.T) {
	createRandomTransaction(t, randompkg.Owner())
}

func TestGet(t *testing.T) {
	owner := randompkg.Owner()
	created := createRandomTransaction(t, owner)

	got, err := testRepo.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, created.Owner, got.Owner)
	require.True(t, got.Amount.Equal(created.Amount))
}

func TestGetNotFound(t *testing.T) {
	_, err := testRepo.Get(context.Background(), -1)
	require.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestListByOwner(t *testing.T) {
	owner := randompkg.Owner()

	want := make([]int64, 0, 5)
	for i := 0; i < 5; i++ {
		want = append(want, createRandomTransaction(t, owner).ID)
	}

	// Another owner's rows must not leak into the snapshot.
	createRandomTransaction(t, randompkg.Owner())

	txs, err := testRepo.ListByOwner(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, txs, 5)

	got := make([]int64, 0, len(txs))
	for _, tx := range txs {
		require.Equal(t, owner, tx.Owner)
		got = append(got, tx.ID)
	}

	// Creation order.
	require.Equal(t, want, got)
}

func TestDelete(t *testing.T) {
	owner := randompkg.Owner()
	created := createRandomTransaction(t, owner)

	err := testRepo.Delete(context.Background(), created.ID, owner)
	require.NoError(t, err)

	_, err = testRepo.Get(context.Background(), created.ID)
	require.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestDeleteWrongOwner(t *testing.T) {
	created := createRandomTransaction(t, randompkg.Owner())

	err := testRepo.Delete(context.Background(), created.ID, randompkg.Owner())
	require.ErrorIs(t, err, domain.ErrTransactionNotFound)
}
