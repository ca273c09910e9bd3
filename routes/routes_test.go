package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"queuedesk/config"
	"queuedesk/database/repository/memory"
	"queuedesk/handlers"
	"queuedesk/models"
	"queuedesk/services/attention"
	"queuedesk/services/block"
	"queuedesk/services/booking"
	"queuedesk/utils"

	"github.com/gin-gonic/gin"
)

type stubBookings struct {
	booking.BookingService
	cancelledBy string
}

func (s *stubBookings) CancelBookings(context.Context) (models.BatchResult, error) {
	return models.BatchResult{}, nil
}

func (s *stubBookings) CancelBooking(_ context.Context, user, id string) (*models.Booking, error) {
	s.cancelledBy = user
	return &models.Booking{ID: id}, nil
}

func newEngine(t *testing.T) (*gin.Engine, *stubBookings) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.AppConfig.JWTSecret = "routes-test-secret"

	store := memory.NewStore()
	store.PutCommerce(models.Commerce{ID: "c1"})
	if err := store.Queues().Create(context.Background(), &models.Queue{
		ID: "q1", CommerceID: "c1", Active: true, BlockTime: 30,
		ServiceInfo: &models.ServiceInfo{AttentionHourFrom: 9, AttentionHourTo: 11},
	}); err != nil {
		t.Fatalf("seed queue: %v", err)
	}

	bookings := &stubBookings{}
	r := gin.New()
	RegisterRoutes(r, &handlers.HandlerBundle{
		Attention: handlers.NewAttentionHandler(nil),
		Booking:   handlers.NewBookingHandler(bookings),
		Block:     handlers.NewBlockHandler(&block.DefaultBlockService{Queues: store.Queues(), Commerces: store.Commerces()}),
		Health:    handlers.NewHealthHandler(),
	})
	return r, bookings
}

func request(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestOperatorRoutesRequireToken(t *testing.T) {
	r, _ := newEngine(t)

	if w := request(r, http.MethodPost, "/api/booking/cancel-past", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("without token status = %d, want 401", w.Code)
	}
	if w := request(r, http.MethodPost, "/api/booking/cancel-past", "garbage"); w.Code != http.StatusUnauthorized {
		t.Fatalf("bad token status = %d, want 401", w.Code)
	}

	token, err := utils.GenerateToken("op-1", "c1", time.Hour)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if w := request(r, http.MethodPost, "/api/booking/cancel-past", token); w.Code != http.StatusOK {
		t.Fatalf("with token status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestVisitorRoutesAcceptOptionalToken(t *testing.T) {
	r, bookings := newEngine(t)

	if w := request(r, http.MethodPatch, "/api/booking/cancel/b1", ""); w.Code != http.StatusOK {
		t.Fatalf("anonymous cancel status = %d", w.Code)
	}
	if bookings.cancelledBy != attention.SystemUser {
		t.Fatalf("anonymous actor = %q", bookings.cancelledBy)
	}

	token, _ := utils.GenerateToken("op-2", "c1", time.Hour)
	request(r, http.MethodPatch, "/api/booking/cancel/b1", token)
	if bookings.cancelledBy != "op-2" {
		t.Fatalf("actor = %q, want op-2", bookings.cancelledBy)
	}

	expired, _ := utils.GenerateToken("op-3", "c1", -time.Hour)
	if w := request(r, http.MethodPatch, "/api/booking/cancel/b1", expired); w.Code != http.StatusUnauthorized {
		t.Fatalf("expired token status = %d, want 401", w.Code)
	}
}

func TestBlockRoutes(t *testing.T) {
	r, _ := newEngine(t)
	if w := request(r, http.MethodGet, "/api/block/queue/q1", ""); w.Code != http.StatusOK {
		t.Fatalf("blocks status = %d, body %s", w.Code, w.Body.String())
	}
	if w := request(r, http.MethodGet, "/api/block/queue/missing", ""); w.Code != http.StatusNotFound {
		t.Fatalf("missing queue status = %d, want 404", w.Code)
	}
}

func preflight(r http.Handler, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodOptions, "/api/booking/process", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCORSPreflight(t *testing.T) {
	r, _ := newEngine(t)
	w := preflight(r, "http://frontend.test")
	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d, want 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("allow origin = %q, want *", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "" {
		t.Fatalf("wildcard origin must not allow credentials, got %q", got)
	}
}

func TestCORSPreflightWithOriginList(t *testing.T) {
	previous := config.AppConfig.CORSOrigins
	config.AppConfig.CORSOrigins = "http://frontend.test, http://admin.test"
	t.Cleanup(func() { config.AppConfig.CORSOrigins = previous })
	r, _ := newEngine(t)

	w := preflight(r, "http://admin.test")
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://admin.test" {
		t.Fatalf("allow origin = %q, want http://admin.test", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Fatalf("allow credentials = %q, want true", got)
	}
	if w := preflight(r, "http://elsewhere.test"); w.Code != http.StatusForbidden {
		t.Fatalf("unknown origin status = %d, want 403", w.Code)
	}
}
