package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mager/bloom/logger"
)

const secret = "sekret"

func ok(seen *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			*seen = GetRequestID(r.Context())
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequestIDGenerated(t *testing.T) {
	log, logs := logger.NewTestLogger()
	var seen string

	rr := httptest.NewRecorder()
	RequestID(log)(ok(&seen)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/grow", nil))

	id := rr.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, seen)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, id, logs.All()[0].ContextMap()["request_id"])
}

func TestRequestIDPropagated(t *testing.T) {
	log, _ := logger.NewTestLogger()
	var seen string

	req := httptest.NewRequest(http.MethodGet, "/grow", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr := httptest.NewRecorder()
	RequestID(log)(ok(&seen)).ServeHTTP(rr, req)

	assert.Equal(t, "abc-123", rr.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", seen)
}

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, exp time.Time) string {
	tok := jwt.NewWithClaims(method, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := tok.SignedString(key)
	require.NoError(t, err)
	return s
}

func TestJWTAuth(t *testing.T) {
	log, _ := logger.NewTestLogger()
	h := JWTAuth(secret, log)(ok(nil))
	future := time.Now().Add(time.Hour)

	for name, tc := range map[string]struct {
		header string
		query  string
		want   int
	}{
		"valid":        {header: "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), future), want: http.StatusOK},
		"query token":  {query: "?token=" + sign(t, jwt.SigningMethodHS256, []byte(secret), future), want: http.StatusOK},
		"missing":      {want: http.StatusUnauthorized},
		"wrong secret": {header: "Bearer " + sign(t, jwt.SigningMethodHS256, []byte("other"), future), want: http.StatusUnauthorized},
		"expired":      {header: "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), time.Now().Add(-time.Hour)), want: http.StatusUnauthorized},
		"wrong alg":    {header: "Bearer " + sign(t, jwt.SigningMethodHS512, []byte(secret), future), want: http.StatusUnauthorized},
		"not bearer":   {header: "Basic dXNlcjpwYXNz", want: http.StatusUnauthorized},
	} {
		req := httptest.NewRequest(http.MethodGet, "/grow"+tc.query, nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		assert.Equal(t, tc.want, rr.Code, name)
	}
}

func TestJWTAuthDisabled(t *testing.T) {
	log, _ := logger.NewTestLogger()

	rr := httptest.NewRecorder()
	JWTAuth("", log)(ok(nil)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/grow", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}
