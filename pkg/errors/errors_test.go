package errors

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestToHTTPError(t *testing.T) {
	t.Run("client code keeps the message", func(t *testing.T) {
		httpErr := ToHTTPError(NewAppError(ErrNotFound, "user not found", nil))
		assert.Equal(t, http.StatusNotFound, httpErr.Code)
		assert.Contains(t, httpErr.Message, "user not found")
	})

	t.Run("client code leaves out the cause", func(t *testing.T) {
		httpErr := ToHTTPError(NewAppError(ErrConflict, "already exists", New("E11000 dup key")))
		assert.Equal(t, http.StatusConflict, httpErr.Code)
		assert.Equal(t, "already exists", httpErr.Message)
	})

	t.Run("server code hides the cause", func(t *testing.T) {
		httpErr := ToHTTPError(NewAppError(ErrUnavailable, "dial tcp 10.0.0.1:27017", nil))
		assert.Equal(t, http.StatusServiceUnavailable, httpErr.Code)
		assert.Equal(t, http.StatusText(http.StatusServiceUnavailable), httpErr.Message)
	})

	t.Run("echo errors pass through", func(t *testing.T) {
		httpErr := ToHTTPError(echo.NewHTTPError(http.StatusBadRequest, "bad body"))
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})

	t.Run("plain errors are internal", func(t *testing.T) {
		httpErr := ToHTTPError(New("boom"))
		assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
		assert.Equal(t, ErrInternal, CodeOf(New("boom")))
	})
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, ErrNotFound, TypeOf(NewAppError(ErrNotFound, "missing", nil)))
	assert.Equal(t, ErrInternal, TypeOf(New("boom")))
}

func TestLogError(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	LogError(logger, NewAppError(ErrInvalidArgument, "bad id", nil), "lookup failed")
	LogError(logger, NewAppError(ErrUnavailable, "store down", nil), "lookup failed")
	LogError(logger, nil, "ignored")

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
		assert.Equal(t, ErrInvalidArgument, entries[0].ContextMap()["error_code"])
		assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	}
}
