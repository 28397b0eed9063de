package utils

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func runHandler(t *testing.T, handler fiber.Handler) (*http.Response, APIResponse) {
	t.Helper()
	app := fiber.New()
	app.Get("/", handler)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	var payload APIResponse
	require.NoError(t, json.Unmarshal(body, &payload))
	return resp, payload
}

func TestSendSuccess(t *testing.T) {
	resp, payload := runHandler(t, func(c *fiber.Ctx) error {
		return SendSuccess(c, "done", fiber.Map{"id": 1})
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, payload.Success)
	require.Equal(t, "done", payload.Message)
	require.NotNil(t, payload.Data)
}

func TestSendSuccessDefaultsMessage(t *testing.T) {
	_, payload := runHandler(t, func(c *fiber.Ctx) error {
		return SendSuccess(c, "", nil)
	})

	require.Equal(t, "success", payload.Message)
}

func TestSendSuccessWithStatus(t *testing.T) {
	resp, payload := runHandler(t, func(c *fiber.Ctx) error {
		return SendSuccessWithStatus(c, fiber.StatusCreated, "created", fiber.Map{"id": 7})
	})

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.True(t, payload.Success)
	require.Equal(t, "created", payload.Message)
}

func TestSendError(t *testing.T) {
	resp, payload := runHandler(t, func(c *fiber.Ctx) error {
		return SendError(c, fiber.StatusNotFound, "student not found")
	})

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.False(t, payload.Success)
	require.Equal(t, "student not found", payload.Message)
	require.Nil(t, payload.Details)
}

func TestSendErrorWithDetails(t *testing.T) {
	resp, payload := runHandler(t, func(c *fiber.Ctx) error {
		return SendErrorWithDetails(c, fiber.StatusBadRequest, "validation failed", []string{"name is required"})
	})

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.False(t, payload.Success)
	require.Equal(t, "validation failed", payload.Message)
	require.NotNil(t, payload.Details)
}
