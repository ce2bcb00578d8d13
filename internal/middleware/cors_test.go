package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORSPreflight(t *testing.T) {
	handler := CORSHandler([]string{"https://ops.example"})(http.HandlerFunc(okHandler))

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/api/v1/athletes/x/contacts/review", nil)
			req.Header.Set("Origin", "https://ops.example")
			req.Header.Set("Access-Control-Request-Method", method)
			req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, "https://ops.example", w.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, method, w.Header().Get("Access-Control-Allow-Methods"))
		})
	}
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	handler := CORSHandler([]string{"https://ops.example"})(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
