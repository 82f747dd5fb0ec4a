package budgetdelivery

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/avasiliev/pocketledger/internal/domain"
	"github.com/avasiliev/pocketledger/internal/middleware"
	"github.com/avasiliev/pocketledger/pkg/randompkg"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// fixedClock pins Analyze's default window in tests.
var fixedClock = time.Date(2025, 3, 31, 15, 4, 5, 0, time.UTC)

func newTestRouter(service Service) *gin.Engine {
	handler := Handler{service: service, now: func() time.Time { return fixedClock }}

	engine := gin.New()
	routes := engine.Group("/").Use(middleware.RequireOwner())

	routes.POST("/budgets", handler.Create)
	routes.GET("/budgets", handler.List)
	routes.GET("/budgets/status", handler.Status)
	routes.DELETE("/budgets/:id", handler.Delete)
	routes.GET("/analysis/spending", handler.Analyze)

	return engine
}

func performRequest(t *testing.T, engine *gin.Engine, method, url, owner string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)

	if owner != "" {
		req.Header.Set(middleware.OwnerHeader, owner)
	}

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	return recorder
}

func TestCreate(t *testing.T) {
	owner := randompkg.Owner()

	stored := domain.Budget{
		ID:       1,
		Owner:    owner,
		Category: "Food",
		Budgeted: decimal.RequireFromString("700"),
	}

	testCases := []struct {
		name           string
		body           gin.H
		buildStubs     func(service *MockService)
		wantStatusCode int
	}{
		{
			name: "OK",
			body: gin.H{"category": "Food", "budgeted": "700"},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Eq(owner), gomock.Eq("Food"), gomock.Eq("700")).
					Times(1).
					Return(stored, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "MissingCategory",
			body: gin.H{"budgeted": "700"},
			buildStubs: func(service *MockService) {
				service.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "NegativeBudget",
			body: gin.H{"category": "Food", "budgeted": "-700"},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Eq(owner), gomock.Eq("Food"), gomock.Eq("-700")).
					Times(1).
					Return(domain.Budget{}, domain.ErrInvalidBudget)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "DuplicateCategory",
			body: gin.H{"category": "Food", "budgeted": "700"},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Eq(owner), gomock.Eq("Food"), gomock.Eq("700")).
					Times(1).
					Return(domain.Budget{}, domain.ErrBudgetAlreadyExists)
			},
			wantStatusCode: http.StatusConflict,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			engine := newTestRouter(service)

			recorder := performRequest(t, engine, http.MethodPost, "/budgets", owner, tc.body)
			require.Equal(t, tc.wantStatusCode, recorder.Code)
		})
	}
}

func TestStatus(t *testing.T) {
	owner := randompkg.Owner()

	statuses := []domain.BudgetStatus{
		{
			Category:  "Food",
			Budgeted:  decimal.RequireFromString("700"),
			Spent:     decimal.RequireFromString("650.75"),
			Remaining: decimal.RequireFromString("49.25"),
			Status:    domain.StatusCritical,
		},
	}

	t.Run("OK", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := NewMockService(ctrl)

		service.EXPECT().
			Status(gomock.Any(), gomock.Eq(owner), gomock.Any()).
			Times(1).
			DoAndReturn(func(_ context.Context, _ string, period domain.DateRange) ([]domain.BudgetStatus, error) {
				require.NotNil(t, period.Start)
				require.NotNil(t, period.End)
				require.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), *period.Start)
				require.Equal(t, time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), *period.End)

				return statuses, nil
			})

		engine := newTestRouter(service)

		url := "/budgets/status?start_date=2025-03-01&end_date=2025-03-31"
		recorder := performRequest(t, engine, http.MethodGet, url, owner, nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		var got []struct {
			Category  string `json:"category"`
			Budgeted  string `json:"budgeted"`
			Spent     string `json:"spent"`
			Remaining string `json:"remaining"`
			Status    string `json:"status"`
		}

		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
		require.Len(t, got, 1)
		require.Equal(t, "Food", got[0].Category)
		require.Equal(t, "650.75", got[0].Spent)
		require.Equal(t, "49.25", got[0].Remaining)
		require.Equal(t, "critical", got[0].Status)
	})

	t.Run("MalformedDate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := NewMockService(ctrl)
		service.EXPECT().Status(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		engine := newTestRouter(service)

		recorder := performRequest(t, engine, http.MethodGet, "/budgets/status?start_date=yesterday", owner, nil)
		require.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("InvalidBudget", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := NewMockService(ctrl)
		service.EXPECT().
			Status(gomock.Any(), gomock.Eq(owner), gomock.Any()).
			Times(1).
			Return(nil, domain.ErrInvalidBudget)

		engine := newTestRouter(service)

		recorder := performRequest(t, engine, http.MethodGet, "/budgets/status", owner, nil)
		require.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestAnalyze(t *testing.T) {
	owner := randompkg.Owner()

	analysis := domain.SpendingAnalysis{
		TotalSpending: decimal.RequireFromString("100"),
		Categories: []domain.CategorySpending{
			{
				Category:   "Food",
				Amount:     decimal.RequireFromString("100"),
				Percentage: decimal.RequireFromString("100"),
			},
		},
	}

	testCases := []struct {
		name           string
		url            string
		wantStart      time.Time
		wantEnd        time.Time
		wantStatusCode int
		stubbed        bool
	}{
		{
			name:           "DefaultMonthWindow",
			url:            "/analysis/spending",
			wantStart:      time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:        time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
			wantStatusCode: http.StatusOK,
			stubbed:        true,
		},
		{
			name:           "WeekWindow",
			url:            "/analysis/spending?period=week",
			wantStart:      time.Date(2025, 3, 24, 0, 0, 0, 0, time.UTC),
			wantEnd:        time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
			wantStatusCode: http.StatusOK,
			stubbed:        true,
		},
		{
			name:           "ExplicitRangeWins",
			url:            "/analysis/spending?period=year&start_date=2025-03-10&end_date=2025-03-20",
			wantStart:      time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			wantEnd:        time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
			wantStatusCode: http.StatusOK,
			stubbed:        true,
		},
		{
			name:           "UnknownPeriodRejected",
			url:            "/analysis/spending?period=decade",
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)

			if tc.stubbed {
				service.EXPECT().
					Analyze(gomock.Any(), gomock.Eq(owner), gomock.Any()).
					Times(1).
					DoAndReturn(func(_ context.Context, _ string, period domain.DateRange) (domain.SpendingAnalysis, error) {
						require.NotNil(t, period.Start)
						require.NotNil(t, period.End)
						require.Equal(t, tc.wantStart, *period.Start)
						require.Equal(t, tc.wantEnd, *period.End)

						return analysis, nil
					})
			} else {
				service.EXPECT().Analyze(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			}

			engine := newTestRouter(service)

			recorder := performRequest(t, engine, http.MethodGet, tc.url, owner, nil)
			require.Equal(t, tc.wantStatusCode, recorder.Code)
		})
	}
}

func TestDelete(t *testing.T) {
	owner := randompkg.Owner()

	testCases := []struct {
		name           string
		url            string
		buildStubs     func(service *MockService)
		wantStatusCode int
	}{
		{
			name: "OK",
			url:  "/budgets/3",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Delete(gomock.Any(), gomock.Eq(int64(3)), gomock.Eq(owner)).
					Times(1).
					Return(nil)
			},
			wantStatusCode: http.StatusNoContent,
		},
		{
			name: "NotFound",
			url:  "/budgets/3",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Delete(gomock.Any(), gomock.Eq(int64(3)), gomock.Eq(owner)).
					Times(1).
					Return(domain.ErrBudgetNotFound)
			},
			wantStatusCode: http.StatusNotFound,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			engine := newTestRouter(service)

			recorder := performRequest(t, engine, http.MethodDelete, tc.url, owner, nil)
			require.Equal(t, tc.wantStatusCode, recorder.Code)
		})
	}
}
