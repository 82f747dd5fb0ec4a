// Package integrationtest provides db helpers used in integration tests.
package integrationtest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/avasiliev/pocketledger/cmd/httpserver"
	"github.com/avasiliev/pocketledger/internal/budgetrepo"
	"github.com/avasiliev/pocketledger/internal/domain"
	"github.com/avasiliev/pocketledger/internal/middleware"
	"github.com/avasiliev/pocketledger/internal/transactionrepo"
	"github.com/avasiliev/pocketledger/pkg/configpkg"
	"github.com/avasiliev/pocketledger/pkg/dbpkg"
	"github.com/avasiliev/pocketledger/pkg/randompkg"
)

// SetupServer returns test server that cleans up database after each integration test.
func SetupServer(t *testing.T) *httpserver.Server {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		t.Fatalf(`configpkg.Load("../../configs") returned error: %v`, err)
	}

	zerolog.SetGlobalLevel(zerolog.FatalLevel)

	logger := middleware.CreateLogger(config)

	db := SetupDB(t, config.DBDriver, config.DBSource)

	gin.SetMode(gin.ReleaseMode)

	server, err := httpserver.New(db, logger, config)
	if err != nil {
		t.Fatalf(`httpserver.New(db, logger, config) returned error: %v`, err)
	}

	return server
}

// SetupDB sets up connection with database for testing and then cleans it.
func SetupDB(t *testing.T, driver, source string) *sql.DB {
	t.Helper()

	db, err := dbpkg.Setup(driver, source)
	if err != nil {
		t.Fatalf("db initialization failed. err: %v", err)
	}

	t.Cleanup(func() {
		Flush(t, db)

		if err := db.Close(); err != nil {
			t.Fatalf("db cleanup failed. err: %v", err)
		}
	})

	return db
}

// Flush flushes all db tables without droping.
func Flush(t *testing.T, db *sql.DB) {
	t.Helper()

	var tables string

	const query = `
	SELECT string_agg(table_name, ', ')
	FROM information_schema.tables
	WHERE table_schema='public';`

	row := db.QueryRow(query)

	err := row.Scan(&tables)
	if err != nil {
		t.Fatalf("db cleanup failed. err: %v", err)
	}

	if _, err := db.Exec(`TRUNCATE TABLE ` + tables + " CASCADE"); err != nil {
		t.Fatalf("db cleanup failed. err: %v", err)
	}
}

// SeedTransaction stores one transaction for the owner.
func SeedTransaction(t *testing.T, db dbpkg.SQLInterface, arg domain.CreateTransactionParams) domain.Transaction {
	t.Helper()

	repo := transactionrepo.NewRepoPGS(db)

	tx, err := repo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("repo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return tx
}

// SeedRandomExpense stores a random expense for the owner in the given category.
func SeedRandomExpense(t *testing.T, db dbpkg.SQLInterface, owner, category string) domain.Transaction {
	t.Helper()

	return SeedTransaction(t, db, domain.CreateTransactionParams{
		Owner:       owner,
		Description: randompkg.String(12),
		Amount:      randompkg.ExpenseAmountBetween(1, 100),
		Category:    category,
		Date:        randompkg.DateWithinDays(7),
		Account:     randompkg.Account(),
	})
}

// SeedBudget stores a budget for the owner's category.
func SeedBudget(t *testing.T, db dbpkg.SQLInterface, owner, category, budgeted string) domain.Budget {
	t.Helper()

	repo := budgetrepo.NewRepoPGS(db)

	b, err := repo.Create(context.Background(), owner, category, budgeted)
	if err != nil {
		t.Fatalf("repo.Create(%v, %v, %v) returned error: %v", owner, category, budgeted, err)
	}

	return b
}
