package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T) (*fiber.App, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	entry := logrus.NewEntry(logger)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(entry)})
	app.Use(RequestLogger(entry))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/teapot", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("disk on fire") })
	return app, hook
}

func call(t *testing.T, app *fiber.App, path string) (int, map[string]string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := map[string]string{}
	_ = json.Unmarshal(body, &out)
	return resp.StatusCode, out
}

func TestErrorHandlerRendersJSON(t *testing.T) {
	app, _ := newApp(t)

	status, body := call(t, app, "/teapot")
	assert.Equal(t, http.StatusTeapot, status)
	assert.Equal(t, "short and stout", body["error"])

	status, body = call(t, app, "/boom")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", body["error"])

	status, body = call(t, app, "/missing")
	assert.Equal(t, http.StatusNotFound, status)
	assert.NotEmpty(t, body["error"])
}

func TestRequestLoggerRecordsFinalStatus(t *testing.T) {
	app, hook := newApp(t)

	call(t, app, "/ok")
	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, logrus.InfoLevel, last.Level)
	assert.Equal(t, http.StatusOK, last.Data["status"])
	assert.Equal(t, "/ok", last.Data["path"])

	call(t, app, "/teapot")
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, http.StatusTeapot, hook.LastEntry().Data["status"])

	hook.Reset()
	call(t, app, "/boom")
	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "unexpected error", entries[0].Message)
	assert.Equal(t, http.StatusInternalServerError, entries[1].Data["status"])
}
