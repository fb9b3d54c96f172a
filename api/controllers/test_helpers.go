package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/angelmondragon/chemstock/api/middleware"
	"github.com/angelmondragon/chemstock/api/responses"
	"github.com/angelmondragon/chemstock/internal/products"
	"github.com/angelmondragon/chemstock/pkg/config"
	"github.com/angelmondragon/chemstock/pkg/db/models"
	"github.com/angelmondragon/chemstock/pkg/enums"
	"github.com/angelmondragon/chemstock/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(t *testing.T) *responses.Renderer {
	t.Helper()
	renderer, err := responses.NewRenderer()
	require.NoError(t, err)
	return renderer
}

func newTestSessions() *session.Manager {
	return session.NewManager(config.SessionConfig{
		CookieName: "chemstock_session",
		TTL:        time.Hour,
	}, session.NewMemoryStore())
}

// attachSession loads a fresh session for the request and stashes it in the
// context, the way the session middleware would. The returned session is the
// same instance the handler will mutate.
func attachSession(t *testing.T, r *http.Request, manager *session.Manager, userID string) (*http.Request, *session.Session) {
	t.Helper()
	sess, err := manager.Load(r)
	require.NoError(t, err)
	if userID != "" {
		sess.SetUserID(userID)
	}
	return r.WithContext(middleware.WithSession(r.Context(), sess)), sess
}

func withProductID(r *http.Request, id uuid.UUID) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("productID", id.String())
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func requireRedirect(t *testing.T, rec *httptest.ResponseRecorder, target string) {
	t.Helper()
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, target, rec.Header().Get("Location"))
}

func lastFlash(t *testing.T, sess *session.Session) session.Flash {
	t.Helper()
	flashes := sess.ConsumeFlashes()
	require.NotEmpty(t, flashes)
	return flashes[len(flashes)-1]
}

type stubProductsService struct {
	list       []models.Product
	product    *models.Product
	err        error
	lastFilter products.ListFilter
}

func (s *stubProductsService) Create(_ context.Context, input products.CreateProductInput) (*models.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Product{
		ID:        uuid.New(),
		Name:      input.Name,
		CASNumber: input.CASNumber,
		Unit:      input.Unit,
	}, nil
}

func (s *stubProductsService) Get(context.Context, uuid.UUID) (*models.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

func (s *stubProductsService) List(_ context.Context, filter products.ListFilter) ([]models.Product, error) {
	s.lastFilter = filter
	if s.err != nil {
		return nil, s.err
	}
	return s.list, nil
}

func (s *stubProductsService) UpdateDetails(context.Context, uuid.UUID, products.UpdateProductInput) (*models.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

func (s *stubProductsService) Delete(context.Context, uuid.UUID) error {
	return s.err
}

type stubStockService struct {
	product   *models.Product
	movements []models.StockMovement
	err       error
}

func (s *stubStockService) Apply(_ context.Context, productID uuid.UUID, action enums.MovementAction, quantity float64) (*models.StockMovement, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.StockMovement{
		ID:        uuid.New(),
		ProductID: productID,
		Action:    action,
		Quantity:  quantity,
	}, nil
}

func (s *stubStockService) History(context.Context, uuid.UUID) (*models.Product, []models.StockMovement, error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	return s.product, s.movements, nil
}

type stubAuthService struct {
	user *models.User
	err  error
}

func (s *stubAuthService) Login(context.Context, string, string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}
