package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestRouter(middleware ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware...)
	router.GET("/api/ping", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})
	return router
}

func TestAPIKeyMiddleware(t *testing.T) {

	t.Run("AllowsRequestWithValidBearer", func(t *testing.T) {

		router := newTestRouter(APIKeyMiddleware("secret"))
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest("GET", "/api/ping", nil)
		request.Header.Set("Authorization", "Bearer secret")

		// act
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("RejectsRequestWithInvalidBearer", func(t *testing.T) {

		router := newTestRouter(APIKeyMiddleware("secret"))
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest("GET", "/api/ping", nil)
		request.Header.Set("Authorization", "Bearer nope")

		// act
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("RejectsRequestWithoutAuthorizationHeader", func(t *testing.T) {

		router := newTestRouter(APIKeyMiddleware("secret"))
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest("GET", "/api/ping", nil)

		// act
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("AllowsAnyRequestWhenNoKeyIsConfigured", func(t *testing.T) {

		router := newTestRouter(APIKeyMiddleware(""))
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest("GET", "/api/ping", nil)

		// act
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}

func TestRequestIDMiddleware(t *testing.T) {

	t.Run("KeepsIncomingRequestID", func(t *testing.T) {

		router := newTestRouter(RequestIDMiddleware())
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest("GET", "/api/ping", nil)
		request.Header.Set(RequestIDHeader, "abc-123")

		// act
		router.ServeHTTP(recorder, request)

		assert.Equal(t, "abc-123", recorder.Body.String())
		assert.Equal(t, "abc-123", recorder.Header().Get(RequestIDHeader))
	})

	t.Run("GeneratesRequestIDWhenMissing", func(t *testing.T) {

		router := newTestRouter(RequestIDMiddleware())
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest("GET", "/api/ping", nil)

		// act
		router.ServeHTTP(recorder, request)

		assert.Equal(t, 36, len(recorder.Body.String()))
		assert.Equal(t, recorder.Body.String(), recorder.Header().Get(RequestIDHeader))
	})
}

func TestZeroLogAndOpenTracingMiddleware(t *testing.T) {

	t.Run("PassesRequestThrough", func(t *testing.T) {

		router := newTestRouter(RequestIDMiddleware(), ZeroLogMiddleware(), OpenTracingMiddleware())
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest("GET", "/api/ping?a=b", nil)

		// act
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}
