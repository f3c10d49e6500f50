package middleware

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAuthToken = "12345"

// sign computes the X-Twilio-Signature for a form POST
func sign(token, fullURL string, form url.Values) string {
	keys := make([]string, 0, len(form))
	for k := range form {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	data := fullURL
	for _, k := range keys {
		data += k + form.Get(k)
	}

	mac := hmac.New(sha1.New, []byte(token))
	mac.Write([]byte(data))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func newTwilioApp(publicURL string) *fiber.App {
	app := fiber.New()
	app.Post("/webhook/twilio", ValidateTwilioSignature(testAuthToken, publicURL), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func formRequest(form url.Values, signature string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/webhook/twilio", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if signature != "" {
		req.Header.Set("X-Twilio-Signature", signature)
	}
	return req
}

var testForm = url.Values{
	"From": {"whatsapp:+919811111111"},
	"To":   {"whatsapp:+14155238886"},
	"Body": {"menu"},
}

func TestValidateTwilioSignature_AcceptsValidSignature(t *testing.T) {
	app := newTwilioApp("https://bot.example.com")
	signature := sign(testAuthToken, "https://bot.example.com/webhook/twilio", testForm)

	resp, err := app.Test(formRequest(testForm, signature))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestValidateTwilioSignature_UsesRequestURLWithoutPublicURL(t *testing.T) {
	app := newTwilioApp("")
	signature := sign(testAuthToken, "http://example.com/webhook/twilio", testForm)

	resp, err := app.Test(formRequest(testForm, signature))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestValidateTwilioSignature_Rejects(t *testing.T) {
	app := newTwilioApp("https://bot.example.com")

	resp, err := app.Test(formRequest(testForm, ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "missing signature")

	wrongToken := sign("other-token", "https://bot.example.com/webhook/twilio", testForm)
	resp, err = app.Test(formRequest(testForm, wrongToken))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "wrong token")

	signed := sign(testAuthToken, "https://bot.example.com/webhook/twilio", testForm)
	tampered := url.Values{"From": testForm["From"], "To": testForm["To"], "Body": {"1"}}
	resp, err = app.Test(formRequest(tampered, signed))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "tampered body")
}

func TestValidateTwilioSignature_MissingAuthToken(t *testing.T) {
	app := fiber.New()
	app.Post("/webhook/twilio", ValidateTwilioSignature("", ""), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(formRequest(testForm, "anything"))

	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
