// Package budgetdelivery manages delivery layer of category budgets.
package budgetdelivery

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

const dateLayout = "2006-01-02"

// Analysis windows applied when no explicit date range is given.
const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

// Service provides service layer interface needed by budget delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package budgetdelivery
type Service interface {
	Create(ctx context.Context, owner, category, budgeted string) (domain.Budget, error)
	List(ctx context.Context, owner string) ([]domain.Budget, error)
	Delete(ctx context.Context, id int64, owner string) error
	Status(ctx context.Context, owner string, period domain.DateRange) ([]domain.BudgetStatus, error)
	Analyze(ctx context.Context, owner string, period domain.DateRange) (domain.SpendingAnalysis, error)
}

// Handler facilitates budget delivery layer logic.
type Handler struct {
	service Service
	now     func() time.Time
}

// NewHandler returns budget handler.
func NewHandler(bs Service) Handler {
	return Handler{service: bs, now: time.Now}
}

type createRequest struct {
	Category string `json:"category" binding:"required"`
	Budgeted string `json:"budgeted" binding:"required"`
}

type data struct {
	Budget domain.Budget `json:"budget"`
}
type response struct {
	Data data `json:"data,omitempty"`
}

// Create handles http request to add a category budget.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindingErrorMsg(err)})

		return
	}

	created, err := h.service.Create(ctx, middleware.Owner(gctx), req.Category, req.Budgeted)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAmount),
			errors.Is(err, domain.ErrInvalidBudget):
			gctx.JSON(http.StatusBadRequest, web.Error(err))
		case errors.Is(err, domain.ErrBudgetAlreadyExists):
			gctx.JSON(http.StatusConflict, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{created}})
}

type dataBudgets struct {
	Budgets []domain.Budget `json:"budgets"`
}
type responseBudgets struct {
	Data dataBudgets `json:"data,omitempty"`
}

// List handles http request for all the owner's budgets.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	budgets, err := h.service.List(ctx, middleware.Owner(gctx))
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	if budgets == nil {
		budgets = []domain.Budget{}
	}

	gctx.JSON(http.StatusOK, responseBudgets{Data: dataBudgets{budgets}})
}

type deleteRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// Delete handles http request to remove a budget.
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
		if errors.Is(err, domain.ErrBudgetNotFound) {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.Status(http.StatusNoContent)
}

type rangeRequest struct {
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
}

// Status handles http request for the evaluated state of every budget.
func (h *Handler) Status(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req rangeRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindingErrorMsg(err)})

		return
	}

	statuses, err := h.service.Status(ctx, middleware.Owner(gctx), parseRange(req))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidBudget) {
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, statuses)
}

type analyzeRequest struct {
	Period    string `form:"period,default=month" binding:"oneof=week month year"`
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
}

// Analyze handles http request for the spending-by-category summary.
//
// Explicit start_date/end_date take precedence; otherwise the window is
// derived from period, ending today.
func (h *Handler) Analyze(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req analyzeRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindingErrorMsg(err)})

		return
	}

	period := parseRange(rangeRequest{StartDate: req.StartDate, EndDate: req.EndDate})

	if period.End == nil {
		end := domain.CalendarDate(h.now())
		period.End = &end
	}

	if period.Start == nil {
		var days int

		switch req.Period {
		case PeriodYear:
			days = 365
		case PeriodMonth:
			days = 30
		default:
			days = 7
		}

		start := period.End.AddDate(0, 0, -days)
		period.Start = &start
	}

	analysis, err := h.service.Analyze(ctx, middleware.Owner(gctx), period)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, analysis)
}

func parseRange(req rangeRequest) domain.DateRange {
	var period domain.DateRange

	if req.StartDate != "" {
		start, _ := time.Parse(dateLayout, req.StartDate)
		period.Start = &start
	}

	if req.EndDate != "" {
		end, _ := time.Parse(dateLayout, req.EndDate)
		period.End = &end
	}

	return period
}

func bindingErrorMsg(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		field := ve[0]
		return field.Field() + web.GetErrorMsg(field)
	}

	return err.Error()
}
