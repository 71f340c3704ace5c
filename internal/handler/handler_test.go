package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T, target string) echo.Context {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec)
}

func TestParseUserID(t *testing.T) {
	id, err := parseUserID("USR1000")
	require.NoError(t, err)
	assert.Equal(t, uint(1000), id)

	id, err = parseUserID(" 1001 ")
	require.NoError(t, err)
	assert.Equal(t, uint(1001), id)

	_, err = parseUserID("USRabc")
	assert.Error(t, err)
	_, err = parseUserID("")
	assert.Error(t, err)
}

func TestPaginationDefaults(t *testing.T) {
	c := testContext(t, "/employees")
	skip, limit := pagination(c, 100)
	assert.Zero(t, skip)
	assert.Equal(t, 100, limit)
}

func TestPaginationParams(t *testing.T) {
	c := testContext(t, "/employees?skip=40&limit=20")
	skip, limit := pagination(c, 100)
	assert.Equal(t, 40, skip)
	assert.Equal(t, 20, limit)
}

func TestPaginationRejectsBadValues(t *testing.T) {
	c := testContext(t, "/employees?skip=-5&limit=0")
	skip, limit := pagination(c, 100)
	assert.Zero(t, skip)
	assert.Equal(t, 100, limit)

	c = testContext(t, "/employees?skip=x&limit=y")
	skip, limit = pagination(c, 100)
	assert.Zero(t, skip)
	assert.Equal(t, 100, limit)
}

func TestHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	require.NoError(t, Health(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
