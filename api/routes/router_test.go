package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/chemstock/api/responses"
	"github.com/angelmondragon/chemstock/internal/products"
	"github.com/angelmondragon/chemstock/pkg/config"
	"github.com/angelmondragon/chemstock/pkg/db/models"
	"github.com/angelmondragon/chemstock/pkg/enums"
	"github.com/angelmondragon/chemstock/pkg/session"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProducts struct{}

func (stubProducts) Create(context.Context, products.CreateProductInput) (*models.Product, error) {
	return &models.Product{ID: uuid.New()}, nil
}
func (stubProducts) Get(context.Context, uuid.UUID) (*models.Product, error) {
	return &models.Product{ID: uuid.New()}, nil
}
func (stubProducts) List(context.Context, products.ListFilter) ([]models.Product, error) {
	return []models.Product{{ID: uuid.New(), Name: "Ethanol", CASNumber: "64-17-5", Unit: "Litre", Stock: 50}}, nil
}
func (stubProducts) UpdateDetails(context.Context, uuid.UUID, products.UpdateProductInput) (*models.Product, error) {
	return &models.Product{ID: uuid.New()}, nil
}
func (stubProducts) Delete(context.Context, uuid.UUID) error { return nil }

type stubStock struct{}

func (stubStock) Apply(_ context.Context, productID uuid.UUID, action enums.MovementAction, quantity float64) (*models.StockMovement, error) {
	return &models.StockMovement{ID: uuid.New(), ProductID: productID, Action: action, Quantity: quantity}, nil
}
func (stubStock) History(context.Context, uuid.UUID) (*models.Product, []models.StockMovement, error) {
	return &models.Product{ID: uuid.New(), Name: "Ethanol"}, nil, nil
}

type stubAuth struct {
	user *models.User
}

func (s stubAuth) Login(context.Context, string, string) (*models.User, error) {
	return s.user, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	renderer, err := responses.NewRenderer()
	require.NoError(t, err)

	sessions := session.NewManager(config.SessionConfig{
		CookieName: "chemstock_session",
		TTL:        time.Hour,
	}, session.NewMemoryStore())

	return NewRouter(Deps{
		Config:   &config.Config{App: config.AppConfig{Env: "test"}},
		Renderer: renderer,
		Sessions: sessions,
		Products: stubProducts{},
		Stock:    stubStock{},
		Auth:     stubAuth{user: &models.User{ID: uuid.New(), Username: "admin"}},
	})
}

func TestAnonymousInventoryRedirectsToLogin(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestHealthLiveIsPublic(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "live")
}

func TestLoginFormIsPublic(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sign in")
}

func TestLoginGrantsAccessAndLogoutRevokesIt(t *testing.T) {
	router := newTestRouter(t)

	form := url.Values{"username": {"admin"}, "password": {"admin123"}}
	loginReq := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	loginReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	loginRec := httptest.NewRecorder()
	router.ServeHTTP(loginRec, loginReq)

	require.Equal(t, http.StatusFound, loginRec.Code)
	require.Equal(t, "/", loginRec.Header().Get("Location"))
	cookies := loginRec.Result().Cookies()
	require.NotEmpty(t, cookies)

	listReq := httptest.NewRequest(http.MethodGet, "/", nil)
	listReq.AddCookie(cookies[0])
	listRec := httptest.NewRecorder()
	router.ServeHTTP(listRec, listReq)

	require.Equal(t, http.StatusOK, listRec.Code)
	assert.Contains(t, listRec.Body.String(), "Ethanol")

	logoutReq := httptest.NewRequest(http.MethodGet, "/logout", nil)
	logoutReq.AddCookie(cookies[0])
	logoutRec := httptest.NewRecorder()
	router.ServeHTTP(logoutRec, logoutReq)
	require.Equal(t, http.StatusFound, logoutRec.Code)

	afterReq := httptest.NewRequest(http.MethodGet, "/", nil)
	afterReq.AddCookie(cookies[0])
	afterRec := httptest.NewRecorder()
	router.ServeHTTP(afterRec, afterReq)

	require.Equal(t, http.StatusFound, afterRec.Code)
	assert.Equal(t, "/login", afterRec.Header().Get("Location"))
}
