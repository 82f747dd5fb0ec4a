// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/avasiliev/pocketledger/internal/budgetdelivery"
	"github.com/avasiliev/pocketledger/internal/budgetrepo"
	"github.com/avasiliev/pocketledger/internal/budgetservice"
	"github.com/avasiliev/pocketledger/internal/middleware"
	"github.com/avasiliev/pocketledger/internal/transactiondelivery"
	"github.com/avasiliev/pocketledger/internal/transactionrepo"
	"github.com/avasiliev/pocketledger/internal/transactionservice"
	"github.com/avasiliev/pocketledger/pkg/configpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	transactionRepo := transactionrepo.NewRepoPGS(conn)
	budgetRepo := budgetrepo.NewRepoPGS(conn)

	transactionService := transactionservice.New(transactionRepo)
	budgetService := budgetservice.New(budgetRepo, transactionService)

	transactionHandler := transactiondelivery.NewHandler(transactionService)
	budgetHandler := budgetdelivery.NewHandler(budgetService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	ownerRoutes := engine.Group("/").Use(middleware.RequireOwner())

	ownerRoutes.POST("/transactions", transactionHandler.Create)
	ownerRoutes.GET("/transactions", transactionHandler.List)
	ownerRoutes.GET("/transactions/:id", transactionHandler.Get)
	ownerRoutes.DELETE("/transactions/:id", transactionHandler.Delete)

	ownerRoutes.POST("/budgets", budgetHandler.Create)
	ownerRoutes.GET("/budgets", budgetHandler.List)
	ownerRoutes.GET("/budgets/status", budgetHandler.Status)
	ownerRoutes.DELETE("/budgets/:id", budgetHandler.Delete)

	ownerRoutes.GET("/analysis/spending", budgetHandler.Analyze)

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
