package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"deposit-address-service/internal/adapter/http/middleware"
	redisStore "deposit-address-service/internal/adapter/storage/redis"
	"deposit-address-service/internal/core/ports"
	"deposit-address-service/internal/core/ports/mocks"
	"deposit-address-service/pkg/apperror"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Data struct {
		Currency string `json:"currency"`
		Address  string `json:"address"`
		State    string `json:"state"`
	} `json:"data"`
	ErrorCode string `json:"error_code"`
	RequestID string `json:"request_id"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

type routerFixture struct {
	router   *gin.Engine
	deposits *mocks.MockDepositAddressService
	tokens   *mocks.MockTokenService
}

func newRouterFixture(t *testing.T, store *redisStore.RateLimitStore, limit int64) *routerFixture {
	ctrl := gomock.NewController(t)
	f := &routerFixture{
		deposits: mocks.NewMockDepositAddressService(ctrl),
		tokens:   mocks.NewMockTokenService(ctrl),
	}
	f.tokens.EXPECT().Validate("member-token").Return(&ports.TokenClaims{UID: "ID0000000001"}, nil).AnyTimes()
	f.router = SetupRouter(RouterDeps{
		DepositSvc:     f.deposits,
		TokenSvc:       f.tokens,
		RateLimitStore: store,
		LookupLimit:    middleware.RateLimitRule{Limit: limit, Window: time.Minute},
		Gatherer:       prometheus.NewRegistry(),
		Logger:         zerolog.Nop(),
	})
	return f
}

func (f *routerFixture) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer member-token")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

// --- Deposit Address Handler Tests ---

func TestGetDepositAddress_Active(t *testing.T) {
	f := newRouterFixture(t, nil, 0)
	f.deposits.EXPECT().Lookup(gomock.Any(), "ID0000000001", "btc").
		Return(&ports.DepositAddressView{Currency: "btc", Address: "1abc", State: ports.DepositAddressActive}, nil)

	w := f.get("/api/v1/account/deposit_address/btc")

	assert.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.Equal(t, "btc", env.Data.Currency)
	assert.Equal(t, "1abc", env.Data.Address)
	assert.Equal(t, "active", env.Data.State)
	assert.Equal(t, w.Header().Get(middleware.HeaderRequestID), env.RequestID)
}

func TestGetDepositAddress_Pending(t *testing.T) {
	f := newRouterFixture(t, nil, 0)
	f.deposits.EXPECT().Lookup(gomock.Any(), "ID0000000001", "BTC").
		Return(&ports.DepositAddressView{Currency: "btc", State: ports.DepositAddressPending}, nil)

	w := f.get("/api/v1/account/deposit_address/BTC")

	assert.Equal(t, http.StatusAccepted, w.Code)
	env := decode(t, w)
	assert.Equal(t, "pending", env.Data.State)
	assert.Empty(t, env.Data.Address)
	assert.NotContains(t, w.Body.String(), `"address"`)
}

func TestGetDepositAddress_InvalidCurrency(t *testing.T) {
	f := newRouterFixture(t, nil, 0)

	w := f.get("/api/v1/account/deposit_address/b$c")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VAL_001", decode(t, w).ErrorCode)
}

func TestGetDepositAddress_ServiceErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{"fiat", apperror.ErrFiatCurrency("usd"), http.StatusUnprocessableEntity, "ADDR_002"},
		{"not found", apperror.ErrNotFound("account"), http.StatusNotFound, "ADDR_001"},
		{"broker down", apperror.ErrBrokerUnavailable(errors.New("closed")), http.StatusServiceUnavailable, "SYS_002"},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError, "SYS_000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRouterFixture(t, nil, 0)
			f.deposits.EXPECT().Lookup(gomock.Any(), "ID0000000001", "usd").Return(nil, tt.err)

			w := f.get("/api/v1/account/deposit_address/usd")

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantErr, decode(t, w).ErrorCode)
		})
	}
}

func TestGetDepositAddress_RequiresToken(t *testing.T) {
	f := newRouterFixture(t, nil, 0)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/account/deposit_address/btc", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetDepositAddress_NoMemberInContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewDepositAddressHandler(mocks.NewMockDepositAddressService(ctrl))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/account/deposit_address/btc", nil)

	h.Get(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetDepositAddress_RateLimited(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	f := newRouterFixture(t, redisStore.NewRateLimitStore(client), 2)
	f.deposits.EXPECT().Lookup(gomock.Any(), "ID0000000001", "btc").
		Return(&ports.DepositAddressView{Currency: "btc", Address: "1abc", State: ports.DepositAddressActive}, nil).
		Times(2)

	assert.Equal(t, http.StatusOK, f.get("/api/v1/account/deposit_address/btc").Code)
	assert.Equal(t, http.StatusOK, f.get("/api/v1/account/deposit_address/btc").Code)

	w := f.get("/api/v1/account/deposit_address/btc")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

// --- Health, Metrics, Docs ---

func mockChecker(ctrl *gomock.Controller, name string, err error) ports.HealthChecker {
	m := mocks.NewMockHealthChecker(ctrl)
	m.EXPECT().Name().Return(name).AnyTimes()
	m.EXPECT().Ping(gomock.Any()).Return(err)
	return m
}

func TestHealthCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	HealthCheck(mockChecker(ctrl, "postgresql", nil), mockChecker(ctrl, "redis", nil))(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
}

func TestHealthCheck_Degraded(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	HealthCheck(mockChecker(ctrl, "postgresql", nil), mockChecker(ctrl, "rabbitmq", errors.New("connection closed")))(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp struct {
		Status       string `json:"status"`
		Dependencies map[string]struct {
			Status string `json:"status"`
			Error  string `json:"error"`
		} `json:"dependencies"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "healthy", resp.Dependencies["postgresql"].Status)
	assert.Equal(t, "connection closed", resp.Dependencies["rabbitmq"].Error)
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_probe_total", Help: "probe"})
	reg.MustRegister(counter)
	counter.Inc()

	router := SetupRouter(RouterDeps{Gatherer: reg, Logger: zerolog.Nop()})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "test_probe_total 1")
}

func TestSwaggerUI(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/swagger", nil)

	SwaggerUI(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "swagger-ui")
	assert.Contains(t, w.Body.String(), "/swagger/spec")
}

func TestSwaggerSpec(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/swagger/spec", nil)

	SwaggerSpec(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/account/deposit_address/{currency}")
}
