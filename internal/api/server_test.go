package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cpreston123/core-swipe-service-Care2Share/internal/api/handler/v1/response"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/config"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/domain"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/pkg/jwthelper"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/repository/dao"
)

const (
	testSigningKey    = "server-test-signing-key"
	testAdminUser     = "admin"
	testAdminPassword = "s3cret-admin"
)

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, string, string, string) error { return nil }

func testConfig(t *testing.T) *config.AppConfig {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	return &config.AppConfig{
		API: &config.APIConfig{
			Environment:        "test",
			Port:               "0",
			BaseURL:            "localhost:8080",
			AllowedCORSDomains: []string{"http://localhost:3000"},
			JWTSigningKey:      testSigningKey,
			TokenTTL:           time.Hour,
		},
		Gin:       &config.GinConfig{Mode: gin.TestMode},
		Admin:     &config.AdminConfig{Username: testAdminUser, PasswordHash: string(hash)},
		Mailgun:   &config.MailgunConfig{DefaultDomain: "columbia.edu"},
		Gateway:   &config.GatewayConfig{},
		RateLimit: &config.RateLimitConfig{},
		Stream:    &config.StreamConfig{Interval: 20 * time.Millisecond},
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, dao.InitTables(db))

	return NewServer(testConfig(t), db, nopNotifier{})
}

func do(t *testing.T, s *Server, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)

	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())

	return v
}

func adminToken(t *testing.T, s *Server) string {
	t.Helper()

	w := do(t, s, http.MethodPost, "/api/v1/admin/login", "", map[string]string{
		"username": testAdminUser,
		"password": testAdminPassword,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	return decode[response.AdminLoginResponse](t, w).Token
}

// identityToken signs a user token the way the upstream identity provider does.
func identityToken(t *testing.T, uni string) string {
	t.Helper()

	token, err := jwthelper.GenerateToken([]byte(testSigningKey), uni, jwthelper.RoleUser, time.Hour, "go-test")
	require.NoError(t, err)

	return token
}

// login signs uni in and has the admin set its starting balances.
func login(t *testing.T, s *Server, uni string, swipes, points int) string {
	t.Helper()

	w := do(t, s, http.MethodPost, "/api/v1/login", identityToken(t, uni), map[string]any{"uni": uni})
	require.Contains(t, []int{http.StatusOK, http.StatusCreated}, w.Code, w.Body.String())
	token := decode[response.LoginResponse](t, w).Token

	admin := adminToken(t, s)
	for field, value := range map[string]int{"current_swipes": swipes, "current_points": points} {
		w = do(t, s, http.MethodPut, "/api/v1/admin/update-user", admin, map[string]any{"uni": uni, "field": field, "value": value})
		require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	}

	return token
}

func TestLogin_CreatesThenLogsIn(t *testing.T) {
	s := newTestServer(t)
	identity := identityToken(t, "ab1234")

	body := map[string]any{"uni": "ab1234", "current_swipes": 500, "current_points": 100000}

	w := do(t, s, http.MethodPost, "/api/v1/login", identity, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, `</api/v1/users/ab1234>; rel="self"`, w.Header().Get("Link"))

	created := decode[response.LoginResponse](t, w)
	assert.NotEmpty(t, created.Token)
	assert.Equal(t, "bearer", created.Type)
	assert.Zero(t, created.User.CurrentSwipes)
	assert.Zero(t, created.User.CurrentPoints)
	assert.False(t, created.User.Initialized())

	w = do(t, s, http.MethodPut, "/api/v1/admin/update-user", adminToken(t, s), map[string]any{"uni": "ab1234", "field": "current_points", "value": 50})
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	w = do(t, s, http.MethodPost, "/api/v1/login", identity, map[string]any{"uni": "ab1234"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Empty(t, w.Header().Get("Link"))
	assert.Equal(t, 50, decode[response.LoginResponse](t, w).User.CurrentPoints)
}

func TestLogin_RequiresMatchingToken(t *testing.T) {
	s := newTestServer(t)
	victim := login(t, s, "victim", 5, 0)

	w := do(t, s, http.MethodPost, "/api/v1/login", "", map[string]any{"uni": "victim"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotContains(t, w.Body.String(), "access_token")

	w = do(t, s, http.MethodPost, "/api/v1/login", identityToken(t, "mallory"), map[string]any{"uni": "victim"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NotContains(t, w.Body.String(), "access_token")

	forged, err := jwthelper.GenerateToken([]byte("not-the-signing-key"), "victim", jwthelper.RoleUser, time.Hour, "")
	require.NoError(t, err)
	w = do(t, s, http.MethodPost, "/api/v1/login", forged, map[string]any{"uni": "victim"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, s, http.MethodPost, "/api/v1/login", adminToken(t, s), map[string]any{"uni": "victim"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, s, http.MethodGet, "/api/v1/users/victim", victim, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, decode[domain.User](t, w).CurrentSwipes)
}

func TestLogin_InvalidUni(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodPost, "/api/v1/login", adminToken(t, s), map[string]any{"uni": "a b"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"detail"`)
}

func TestAdmin_RelativeIncrementPastMaximum(t *testing.T) {
	s := newTestServer(t)
	_ = login(t, s, "ef9012", 0, 1)
	admin := adminToken(t, s)

	w := do(t, s, http.MethodPut, "/api/v1/users/ef9012?is_relative=true", admin, map[string]any{"points": math.MaxInt})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPut, "/api/v1/users/ef9012?is_relative=true", admin, map[string]any{"points": domain.MaxBalance})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[response.Err](t, w).Detail, "exceed")

	w = do(t, s, http.MethodGet, "/api/v1/users/ef9012", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[domain.User](t, w).CurrentPoints)
}

func TestAdminLogin_WrongPassword(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodPost, "/api/v1/admin/login", "", map[string]string{
		"username": testAdminUser,
		"password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSwipes_DonateThenClaim(t *testing.T) {
	s := newTestServer(t)

	donor := login(t, s, "donor1", 5, 0)
	recipient := login(t, s, "recip1", 0, 0)

	w := do(t, s, http.MethodPost, "/api/v1/swipes/donate", donor, map[string]any{"donor_id": "donor1", "current_swipes": 3})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 3, decode[domain.SwipeDonation](t, w).Count)

	w = do(t, s, http.MethodGet, "/api/v1/swipes/donated", recipient, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, decode[response.DonatedSwipesResponse](t, w).Count)

	w = do(t, s, http.MethodPost, "/api/v1/swipes/claim", recipient, map[string]any{"recipient_id": "recip1", "swipes_to_claim": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	claim := decode[domain.SwipeClaim](t, w)
	assert.Equal(t, 2, claim.Count)
	assert.Len(t, claim.Transactions, 2)

	w = do(t, s, http.MethodGet, "/api/v1/users/recip1", recipient, nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := decode[domain.User](t, w)
	assert.Equal(t, 2, user.CurrentSwipes)
	assert.Equal(t, 2, user.SwipesReceived)

	w = do(t, s, http.MethodGet, "/api/v1/transactions/history/recip1?page=1&page_size=1", recipient, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	page := decode[response.TransactionPageResponse](t, w)
	assert.Len(t, page.Items, 1)
	assert.EqualValues(t, 2, page.TotalItems)
	assert.Equal(t, 2, page.TotalPages)
	assert.NotEmpty(t, page.Links.Next)
	assert.Empty(t, page.Links.Prev)

	w = do(t, s, http.MethodGet, "/api/v1/transactions/summary/donor1", donor, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, decode[domain.TransactionSummary](t, w).SwipesDonated)
}

func TestSwipes_OverClaimRejected(t *testing.T) {
	s := newTestServer(t)

	recipient := login(t, s, "recip2", 0, 0)

	w := do(t, s, http.MethodPost, "/api/v1/swipes/claim", recipient, map[string]any{"recipient_id": "recip2", "swipes_to_claim": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[response.Err](t, w).Detail, "only 0 available")
}

func TestSwipes_DonateMoreThanHeld(t *testing.T) {
	s := newTestServer(t)

	donor := login(t, s, "donor3", 3, 0)

	w := do(t, s, http.MethodPost, "/api/v1/swipes/donate", donor, map[string]any{"donor_id": "donor3", "current_swipes": 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[response.Err](t, w).Detail, "has only 3 swipes available")
}

func TestPoints_DonateThenClaim(t *testing.T) {
	s := newTestServer(t)

	donor := login(t, s, "donor4", 0, 100)
	recipient := login(t, s, "recip4", 0, 0)

	w := do(t, s, http.MethodPost, "/api/v1/points/donate", donor, map[string]any{"donor_id": "donor4", "points": 40})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, s, http.MethodPost, "/api/v1/points/claim", recipient, map[string]any{"recipient_id": "recip4", "points": 50})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPost, "/api/v1/points/claim", recipient, map[string]any{"recipient_id": "recip4", "points": 25})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, domain.PoolDonorID, decode[domain.PointsClaim](t, w).Transaction.DonorID)

	w = do(t, s, http.MethodGet, "/api/v1/points/pool", recipient, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 15, decode[domain.PointsPool](t, w).Balance)
}

func TestAuthorization(t *testing.T) {
	s := newTestServer(t)

	alice := login(t, s, "alice1", 2, 0)
	_ = login(t, s, "bob123", 2, 0)

	w := do(t, s, http.MethodGet, "/api/v1/users/alice1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, s, http.MethodPost, "/api/v1/swipes/donate", alice, map[string]any{"donor_id": "bob123", "current_swipes": 1})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(t, s, http.MethodGet, "/api/v1/admin/users", alice, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(t, s, http.MethodGet, "/api/v1/users/bob123", adminToken(t, s), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdmin_UsersAndBalances(t *testing.T) {
	s := newTestServer(t)
	admin := adminToken(t, s)

	w := do(t, s, http.MethodPost, "/api/v1/users", admin, map[string]any{"uni": "cd5678", "current_swipes": 4, "current_points": 10})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, s, http.MethodPost, "/api/v1/users", admin, map[string]any{"uni": "cd5678", "current_swipes": 1, "current_points": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "user already exists")

	w = do(t, s, http.MethodPut, "/api/v1/users/cd5678?is_relative=true", admin, map[string]any{"current_swipes": -5})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[response.Err](t, w).Detail, "cannot decrement 5 swipes: user cd5678 has only 4 swipes available")

	w = do(t, s, http.MethodPut, "/api/v1/users/cd5678?is_relative=true", admin, map[string]any{"current_swipes": -1, "points": 5})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	user := decode[domain.User](t, w)
	assert.Equal(t, 3, user.CurrentSwipes)
	assert.Equal(t, 1, user.SwipesGiven)
	assert.Equal(t, 15, user.CurrentPoints)

	w = do(t, s, http.MethodPut, "/api/v1/users/nobody?is_relative=false", admin, map[string]any{"points": 5})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, s, http.MethodPut, "/api/v1/admin/update-user", admin, map[string]any{"uni": "cd5678", "field": "current_points", "value": 0})
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	assert.Equal(t, 0, decode[response.AdminUpdateResponse](t, w).User.CurrentPoints)

	w = do(t, s, http.MethodGet, "/api/v1/admin/users", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.User](t, w), 1)

	w = do(t, s, http.MethodGet, "/api/v1/transactions?page_size=500", admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodGet, "/api/v1/transactions", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[response.TransactionPageResponse](t, w).Items)
}

func TestGraphQL_AdminOnly(t *testing.T) {
	s := newTestServer(t)
	alice := login(t, s, "alice1", 3, 20)

	w := do(t, s, http.MethodPost, "/api/v1/swipes/donate", alice, map[string]any{"donor_id": "alice1", "current_swipes": 1})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	query := map[string]any{"query": "{ users { uni current_swipes swipes_given current_points } swipes { swipe_id is_donated } donated_swipe_count }"}

	w = do(t, s, http.MethodPost, "/api/v1/graphql", "", query)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, s, http.MethodPost, "/api/v1/graphql", alice, query)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(t, s, http.MethodPost, "/api/v1/graphql", adminToken(t, s), query)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out struct {
		Data struct {
			Users []struct {
				Uni           string `json:"uni"`
				CurrentSwipes int    `json:"current_swipes"`
				SwipesGiven   int    `json:"swipes_given"`
				CurrentPoints int    `json:"current_points"`
			} `json:"users"`
			Swipes []struct {
				SwipeID   int  `json:"swipe_id"`
				IsDonated bool `json:"is_donated"`
			} `json:"swipes"`
			DonatedSwipeCount int `json:"donated_swipe_count"`
		} `json:"data"`
		Errors []any `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	require.Empty(t, out.Errors)
	require.Len(t, out.Data.Users, 1)
	assert.Equal(t, 2, out.Data.Users[0].CurrentSwipes)
	assert.Equal(t, 1, out.Data.Users[0].SwipesGiven)
	assert.Equal(t, 20, out.Data.Users[0].CurrentPoints)
	assert.Len(t, out.Data.Swipes, 3)
	assert.Equal(t, 1, out.Data.DonatedSwipeCount)
}

func TestHistory_UnknownUser(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/api/v1/transactions/history/ghost1", adminToken(t, s), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProbesAndCorrelation(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Correlation-ID", "trace-42")
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "trace-42", w.Header().Get("X-Correlation-ID"))

	w = do(t, s, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, s, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "care2share_http_requests_total")
}

func TestStream_PushesBalances(t *testing.T) {
	s := newTestServer(t)
	token := login(t, s, "ws1234", 7, 30)

	w := do(t, s, http.MethodPost, "/api/v1/swipes/donate", token, map[string]any{"donor_id": "ws1234", "current_swipes": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = do(t, s, http.MethodPost, "/api/v1/points/donate", token, map[string]any{"donor_id": "ws1234", "points": 10})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = do(t, s, http.MethodPost, "/api/v1/points/claim", token, map[string]any{"recipient_id": "ws1234", "points": 4})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	srv := httptest.NewServer(s.Router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/ws/ws1234?token=" + token
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	for i := 0; i < 2; i++ {
		var msg map[string]any
		require.NoError(t, conn.ReadJSON(&msg))
		assert.Equal(t, "ws1234", msg["uni"])
		assert.EqualValues(t, 5, msg["current_swipes"])
		assert.EqualValues(t, 2, msg["swipes_given"])
		assert.EqualValues(t, 0, msg["swipes_received"])
		assert.EqualValues(t, 24, msg["current_points"])
		assert.EqualValues(t, 10, msg["points_given"])
		assert.EqualValues(t, 4, msg["points_received"])
	}
}

func TestStream_ForeignUni(t *testing.T) {
	s := newTestServer(t)
	token := login(t, s, "ws5678", 1, 1)

	w := do(t, s, http.MethodGet, "/api/v1/ws/someone?token="+token, "", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
