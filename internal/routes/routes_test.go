package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amrutdhara/orderbot/internal/conversation"
	"github.com/amrutdhara/orderbot/internal/handlers"
	"github.com/amrutdhara/orderbot/internal/services"
	"github.com/amrutdhara/orderbot/internal/session"
	"github.com/amrutdhara/orderbot/internal/storage"
)

type testServer struct {
	app   *fiber.App
	bot   *conversation.Bot
	store *storage.MemoryStore
}

func newTestServer(t *testing.T, disableValidation bool) *testServer {
	t.Helper()

	publicDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(publicDir, "images"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(publicDir, "images", "bottle.svg"), []byte("<svg/>"), 0o644))

	store := storage.NewMemoryStore()
	auth := services.NewAuthService(store)
	bot := conversation.New(
		session.NewStore(session.Config{Timeout: time.Minute}),
		auth,
		services.NewOrderService(store),
		services.NewNotificationService(store, services.NotificationConfig{}),
		conversation.Options{BotName: "Amrut-Dhara Water Solutions"},
	)

	app := fiber.New()
	SetupRoutes(app, Dependencies{
		Webhook:                  handlers.NewWebhookHandler(bot),
		WhatsApp:                 handlers.NewWhatsAppHandler(bot, nil, "verify"),
		Health:                   handlers.NewHealthHandler("test", store, bot),
		Users:                    handlers.NewUserHandler(auth),
		TwilioAuthToken:          "token",
		DisableWebhookValidation: disableValidation,
		PublicDir:                publicDir,
	})

	return &testServer{app: app, bot: bot, store: store}
}

func (s *testServer) post(t *testing.T, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.app.Test(req)
	require.NoError(t, err)

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func (s *testServer) chat(t *testing.T, message string) string {
	t.Helper()
	status, body := s.post(t, "/webhook", fmt.Sprintf(`{"userId":"web-user-1","message":%q}`, message))
	require.Equal(t, http.StatusOK, status)
	return body["response"].(string)
}

func TestRoutes_RegisterThenOrderThroughWebhook(t *testing.T) {
	srv := newTestServer(t, true)

	status, _ := srv.post(t, "/api/users", `{"email":"shop@example.com","password":"password123","company_name":"Corner Shop"}`)
	require.Equal(t, http.StatusCreated, status)

	assert.Contains(t, srv.chat(t, "hi"), "registered email")
	assert.Contains(t, srv.chat(t, "shop@example.com"), "password")
	assert.Contains(t, srv.chat(t, "password123"), "Authentication successful")
	assert.Contains(t, srv.chat(t, "menu"), "Main Menu")
	assert.Contains(t, srv.chat(t, "1"), "select bottle type")
	assert.Contains(t, srv.chat(t, "3"), "500ml")
	assert.Contains(t, srv.chat(t, "20"), "20 bottles")
	assert.Contains(t, srv.chat(t, "7 Market Street, Nashik 422001"), "Address saved")

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	assert.Contains(t, srv.chat(t, tomorrow), "Order Summary")
	assert.Contains(t, srv.chat(t, "yes"), "Order Placed Successfully")
	require.NoError(t, srv.bot.Wait(context.Background()))

	stats, err := srv.store.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Orders)

	assert.Contains(t, srv.chat(t, "2"), "Your Recent Orders")
}

func TestRoutes_HealthAndStatic(t *testing.T) {
	srv := newTestServer(t, true)

	resp, err := srv.app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = srv.app.Test(httptest.NewRequest(http.MethodGet, "/images/bottle.svg", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRoutes_TwilioWebhookRequiresSignature(t *testing.T) {
	form := url.Values{"From": {"whatsapp:+919811111111"}, "Body": {"hi"}}.Encode()

	srv := newTestServer(t, false)
	req := httptest.NewRequest(http.MethodPost, "/webhook/twilio", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := srv.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	srv = newTestServer(t, true)
	req = httptest.NewRequest(http.MethodPost, "/webhook/twilio", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err = srv.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
