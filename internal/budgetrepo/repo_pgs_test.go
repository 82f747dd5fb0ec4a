package budgetrepo

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

func createRandomBudget(t *testing.T, owner string) domain.Budget {
	t.Helper()

	category := randompkg.Category() + randompkg.String(4)
	budgeted := randompkg.MoneyAmountBetween(100, 1_000)

	b, err := testRepo.Create(context.Background(), owner, category, budgeted)
	require.NoError(t, err)
	require.NotEmpty(t, b)

	require.NotZero(t, b.ID)
	require.Equal(t, owner, b.Owner)
	require.Equal(t, category, b.Category)
	require.True(t, b.Budgeted.Equal(decimal.RequireFromString(budgeted)),
		"budgeted = %s, want %s", b.Budgeted, budgeted)
	require.NotZero(t, b.CreatedAt)

	t.Cleanup(func() {
		if err := testRepo.Delete(context.Background(), b.ID, owner); err != nil &&
			err != domain.ErrBudgetNotFound {
			t.Errorf("cleanup delete failed: %v", err)
		}
	})

	return b
}

func TestCreate(t *testing.T) {
	createRandomBudget(t, randompkg.Owner())
}

func TestCreateDuplicateCategory(t *testing.T) {
	owner := randompkg.Owner()
	created := createRandomBudget(t, owner)

	_, err := testRepo.Create(context.Background(), owner, created.Category, "100")
	require.ErrorIs(t, err, domain.ErrBudgetAlreadyExists)
}

func TestListByOwner(t *testing.T) {
	owner := randompkg.Owner()

	for i := 0; i < 3; i++ {
		createRandomBudget(t, owner)
	}

	createRandomBudget(t, randompkg.Owner())

	budgets, err := testRepo.ListByOwner(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, budgets, 3)

	for i, b := range budgets {
		require.Equal(t, owner, b.Owner)

		if i > 0 {
			require.LessOrEqual(t, budgets[i-1].Category, b.Category)
		}
	}
}

func TestDelete(t *testing.T) {
	owner := randompkg.Owner()
	created := createRandomBudget(t, owner)

	err := testRepo.Delete(context.Background(), created.ID, owner)
	require.NoError(t, err)

	budgets, err := testRepo.ListByOwner(context.Background(), owner)
	require.NoError(t, err)
	require.Empty(t, budgets)
}

func TestDeleteNotFound(t *testing.T) {
	err := testRepo.Delete(context.Background(), -1, randompkg.Owner())
	require.ErrorIs(t, err, domain.ErrBudgetNotFound)
}
