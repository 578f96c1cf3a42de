package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/accounts"
	"github.com/xy-planning-network/accounts/http/middleware"
)

func TestGetIPAddress(t *testing.T) {
	tcs := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		trusted    []string
		expected   string
	}{
		{"Direct-HTTPS", nil, "203.0.113.9:51234", middleware.DefaultIPHeaders, "203.0.113.9"},
		{"Direct-IPv6", nil, "[2001:db8::7]:443", middleware.DefaultIPHeaders, "2001:db8::7"},
		{"Unparseable-Remote", nil, "pipe", middleware.DefaultIPHeaders, "0.0.0.0"},
		{
			"Behind-Proxy",
			map[string]string{"X-Forwarded-For": "198.51.100.4"},
			"10.0.0.2:3000",
			middleware.DefaultIPHeaders,
			"198.51.100.4",
		},
		{
			"Proxy-Chain-Rightmost-Public",
			map[string]string{"X-Forwarded-For": "198.51.100.4, 203.0.113.50, 172.16.0.3"},
			"10.0.0.2:3000",
			middleware.DefaultIPHeaders,
			"203.0.113.50",
		},
		{
			"Only-Internal-Hops",
			map[string]string{"X-Forwarded-For": "192.168.1.20, 100.64.0.9", "X-Real-Ip": "198.18.0.1"},
			"10.0.0.2:3000",
			middleware.DefaultIPHeaders,
			"10.0.0.2",
		},
		{
			"Real-Ip-Fallback",
			map[string]string{"X-Forwarded-For": "garbage", "X-Real-Ip": "198.51.100.77"},
			"10.0.0.2:3000",
			middleware.DefaultIPHeaders,
			"198.51.100.77",
		},
		{
			"Untrusted-Header-Ignored",
			map[string]string{"X-Forwarded-For": "198.51.100.4"},
			"203.0.113.9:51234",
			[]string{"CF-Connecting-IP"},
			"203.0.113.9",
		},
		{
			"Custom-Header",
			map[string]string{"CF-Connecting-IP": "198.51.100.8", "X-Forwarded-For": "198.51.100.4"},
			"10.0.0.2:3000",
			[]string{"CF-Connecting-IP"},
			"198.51.100.8",
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			r := httptest.NewRequest(http.MethodPost, "/login", nil)
			r.RemoteAddr = tc.remoteAddr
			for k, v := range tc.headers {
				r.Header.Set(k, v)
			}

			// Act
			actual := middleware.GetIPAddress(r, tc.trusted)

			// Assert
			require.Equal(t, tc.expected, actual)
		})
	}
}

func TestInjectIPAddress(t *testing.T) {
	for _, tc := range []struct {
		name     string
		adapter  middleware.Adapter
		expected string
	}{
		{"Default-Headers", middleware.InjectIPAddress(), "198.51.100.4"},
		{"Configured-Headers", middleware.InjectIPAddress("X-Client-Ip"), "203.0.113.9"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			var actual any
			h := tc.adapter(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				actual = r.Context().Value(accounts.IpAddrKey)
			}))

			r := httptest.NewRequest(http.MethodGet, "/myinfo", nil)
			r.RemoteAddr = "203.0.113.9:51234"
			r.Header.Set("X-Forwarded-For", "198.51.100.4")

			// Act
			h.ServeHTTP(httptest.NewRecorder(), r)

			// Assert
			require.Equal(t, tc.expected, actual)
		})
	}
}
