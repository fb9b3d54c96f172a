package controllers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/angelmondragon/chemstock/pkg/db/models"
	"github.com/angelmondragon/chemstock/pkg/enums"
	pkgerrors "github.com/angelmondragon/chemstock/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateStockPageRendersHistory(t *testing.T) {
	sessions := newTestSessions()
	product := &models.Product{ID: uuid.New(), Name: "Ammonia", CASNumber: "7664-41-7", Unit: "KG", Stock: 2}
	svc := &stubStockService{
		product: product,
		movements: []models.StockMovement{
			{ID: uuid.New(), ProductID: product.ID, Action: enums.MovementActionIn, Quantity: 2, CreatedAt: time.Now()},
		},
	}
	handler := UpdateStockPage(svc, sessions, newTestRenderer(t), nil)

	req := httptest.NewRequest(http.MethodGet, "/update-stock/"+product.ID.String(), nil)
	req = withProductID(req, product.ID)
	req, _ = attachSession(t, req, sessions, uuid.NewString())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Ammonia")
	assert.Contains(t, body, "Movement History")
}

func TestUpdateStockSuccessRedirectsBack(t *testing.T) {
	sessions := newTestSessions()
	handler := UpdateStock(&stubStockService{}, sessions, newTestRenderer(t), nil)

	id := uuid.New()
	req := postForm("/update-stock/"+id.String(), url.Values{"action": {"IN"}, "quantity": {"5"}})
	req = withProductID(req, id)
	req, sess := attachSession(t, req, sessions, uuid.NewString())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	requireRedirect(t, rec, "/update-stock/"+id.String())
	flash := lastFlash(t, sess)
	assert.Equal(t, flashSuccess, flash.Level)
	assert.Equal(t, "Stock updated successfully!", flash.Message)
}

func TestUpdateStockInsufficientStockFlashes(t *testing.T) {
	sessions := newTestSessions()
	svc := &stubStockService{err: pkgerrors.New(pkgerrors.CodeValidation, "Stock cannot go below zero!")}
	handler := UpdateStock(svc, sessions, newTestRenderer(t), nil)

	id := uuid.New()
	req := postForm("/update-stock/"+id.String(), url.Values{"action": {"OUT"}, "quantity": {"5"}})
	req = withProductID(req, id)
	req, sess := attachSession(t, req, sessions, uuid.NewString())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	requireRedirect(t, rec, "/update-stock/"+id.String())
	flash := lastFlash(t, sess)
	assert.Equal(t, flashDanger, flash.Level)
	assert.Equal(t, "Stock cannot go below zero!", flash.Message)
}

func TestUpdateStockBadQuantityNeverReachesService(t *testing.T) {
	sessions := newTestSessions()
	svc := &stubStockService{err: pkgerrors.New(pkgerrors.CodeInternal, "must not be called")}
	handler := UpdateStock(svc, sessions, newTestRenderer(t), nil)

	id := uuid.New()
	req := postForm("/update-stock/"+id.String(), url.Values{"action": {"IN"}, "quantity": {"lots"}})
	req = withProductID(req, id)
	req, sess := attachSession(t, req, sessions, uuid.NewString())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	requireRedirect(t, rec, "/update-stock/"+id.String())
	assert.Equal(t, "Quantity must be positive!", lastFlash(t, sess).Message)
}

func TestUpdateStockUnknownProductRendersErrorPage(t *testing.T) {
	sessions := newTestSessions()
	svc := &stubStockService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}
	handler := UpdateStock(svc, sessions, newTestRenderer(t), nil)

	id := uuid.New()
	req := postForm("/update-stock/"+id.String(), url.Values{"action": {"IN"}, "quantity": {"5"}})
	req = withProductID(req, id)
	req, _ = attachSession(t, req, sessions, uuid.NewString())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
