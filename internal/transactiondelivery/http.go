// Package transactiondelivery manages delivery layer of ledger transactions.
package transactiondelivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/avasiliev/pocketledger/internal/domain"
	"github.com/avasiliev/pocketledger/internal/middleware"
	"github.com/avasiliev/pocketledger/pkg/errorspkg"
	"github.com/avasiliev/pocketledger/pkg/web"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Service provides service layer interface needed by transaction delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transactiondelivery
type Service interface {
	Create(ctx context.Context, arg domain.CreateTransactionParams) (domain.Transaction, error)
	Get(ctx context.Context, id int64, owner string) (domain.Transaction, error)
	Query(ctx context.Context, owner string, q domain.Query) (domain.TransactionPage, error)
	Delete(ctx context.Context, id int64, owner string) error
}

// Handler facilitates transaction delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transaction handler.
func NewHandler(ts Service) Handler {
	return Handler{service: ts}
}

type createRequest struct {
	Description string `json:"description" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Date        string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Account     string `json:"account" binding:"required"`
}

type data struct {
	Transaction domain.Transaction `json:"transaction"`
}
type response struct {
	Data data `json:"data,omitempty"`
}

// Create handles http request to record a transaction.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindingErrorMsg(err)})

		return
	}

	var date time.Time

	if req.Date != "" {
		// The layout is enforced by the binding above.
		date, _ = time.Parse(DateLayout, req.Date)
	}

	arg := domain.CreateTransactionParams{
		Owner:       middleware.Owner(gctx),
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        date,
		Account:     req.Account,
	}

	created, err := h.service.Create(ctx, arg)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAmount),
			errors.Is(err, domain.ErrEmptyDescription):
			gctx.JSON(http.StatusBadRequest, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{created}})
}

type getRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// Get handles http request for a single transaction.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindingErrorMsg(err)})

		return
	}

	tx, err := h.service.Get(ctx, req.ID, middleware.Owner(gctx))
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{tx}})
}

type listRequest struct {
	Search    string `form:"search"`
	Category  string `form:"category"`
	Account   string `form:"account"`
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	SortBy    string `form:"sort_by,default=date"`
	SortDir   string `form:"sort_dir,default=desc"`
	Page      int    `form:"page,default=1"`
	PageSize  int    `form:"page_size,default=20"`
}

type listResponse struct {
	Items    []domain.Transaction `json:"items"`
	Total    int                  `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
}

// List handles http request for one page of the owner's ledger.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindingErrorMsg(err)})

		return
	}

	q := domain.Query{
		SearchTerm:    req.Search,
		Category:      req.Category,
		Account:       req.Account,
		SortField:     domain.SortField(req.SortBy),
		SortDirection: domain.SortDirection(req.SortDir),
		Page:          req.Page,
		PageSize:      req.PageSize,
	}

	if req.StartDate != "" {
		start, _ := time.Parse(DateLayout, req.StartDate)
		q.StartDate = &start
	}

	if req.EndDate != "" {
		end, _ := time.Parse(DateLayout, req.EndDate)
		q.EndDate = &end
	}

	page, err := h.service.Query(ctx, middleware.Owner(gctx), q)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidQuery) {
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, listResponse{
		Items:    page.Items,
		Total:    page.TotalMatched,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
}

type deleteRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// Delete handles http request to remove a transaction.
func (h *Handler) Delete(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req deleteRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindingErrorMsg(err)})

		return
	}

	if err := h.service.Delete(ctx, req.ID, middleware.Owner(gctx)); err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.Status(http.StatusNoContent)
}

func bindingErrorMsg(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		field := ve[0]
		return field.Field() + web.GetErrorMsg(field)
	}

	return err.Error()
}
