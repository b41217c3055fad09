package serviceutils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponses(t *testing.T) {
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, ResponseSuccess(c, http.StatusOK, "ok", []string{"Account"}))
	assert.JSONEq(t, `{"success":true,"message":"ok","data":["Account"]}`, rec.Body.String())

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, ResponseError(c, http.StatusBadRequest, "bad", errors.New("boom")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"bad","error":"boom"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, ResponseErrorWithData(c, http.StatusBadGateway, "failed", errors.New("1 objects failed"), map[string]int{"failures": 1}))
	assert.JSONEq(t, `{"success":false,"message":"failed","data":{"failures":1},"error":"1 objects failed"}`, rec.Body.String())
}
