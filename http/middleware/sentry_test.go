package middleware_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/accounts/http/middleware"
	"github.com/xy-planning-network/accounts/http/resp"
)

func TestReportPanic(t *testing.T) {
	// Arrange + Act
	actual := middleware.ReportPanic("")

	// Assert
	require.Equal(t, fmt.Sprintf("%p", middleware.NoopAdapter), fmt.Sprintf("%p", actual))
}

func TestRecover(t *testing.T) {
	// Arrange + Act
	actual := middleware.Recover(nil)

	// Assert
	require.Equal(t, fmt.Sprintf("%p", middleware.NoopAdapter), fmt.Sprintf("%p", actual))

	tcs := []struct {
		name     string
		val      any
		expected string
	}{
		{"String", "kaboom", `{"error":"kaboom"}`},
		{"Error", errors.New("This is an error"), `{"error":"This is an error"}`},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "http://example.com/error", nil)
			h := middleware.Recover(resp.NewResponder())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				panic(tc.val)
			}))

			// Act
			require.NotPanics(t, func() { h.ServeHTTP(w, r) })

			// Assert
			require.Equal(t, http.StatusInternalServerError, w.Code)
			require.JSONEq(t, tc.expected, w.Body.String())
		})
	}

	t.Run("Abort", func(t *testing.T) {
		// Arrange
		h := middleware.Recover(resp.NewResponder())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic(http.ErrAbortHandler)
		}))

		// Act + Assert
		require.Panics(t, func() {
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		})
	})
}
