package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestFromContextRoundTrip(t *testing.T) {
	attached := zap.NewNop().With(zap.String("request_id", "abc"))
	ctx := WithContext(context.Background(), attached)
	assert.Same(t, attached, FromContext(ctx))
}

func TestFromContextFallback(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
	assert.NotNil(t, FromContext(nil))
}

func TestFromEcho(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := echo.New().NewContext(req, httptest.NewRecorder())

	// No logger attached yet; the process fallback must be non-nil.
	assert.NotNil(t, FromEcho(c))
	assert.NotNil(t, FromEcho(nil))

	attached := zap.NewNop().With(zap.String("request_id", "abc"))
	c.Set("logger", attached)
	assert.Same(t, attached, FromEcho(c))
}
