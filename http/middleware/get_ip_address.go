package middleware

import (
	"context"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/xy-planning-network/accounts"
)

// unknownIP stands in for a client whose address cannot be determined.
const unknownIP = "0.0.0.0"

// DefaultIPHeaders are the headers a reverse proxy in front of the service sets.
var DefaultIPHeaders = []string{"X-Forwarded-For", "X-Real-Ip"}

// nonPublic are the ranges a proxy hop, not a client, sits in.
// netip.Addr.IsPrivate covers 10/8, 172.16/12, 192.168/16 and fc00::/7.
var nonPublic = []netip.Prefix{
	netip.MustParsePrefix("100.64.0.0/10"),
	netip.MustParsePrefix("192.0.0.0/24"),
	netip.MustParsePrefix("198.18.0.0/15"),
}

// InjectIPAddress stores the client's IP address in the request's context under accounts.IpAddrKey.
//
// The address comes from the first of headers carrying a public address,
// read right to left so the hop closest to the service wins.
// Requests reaching a listener directly fall back to the connection's remote address.
// Without headers, DefaultIPHeaders are read.
func InjectIPAddress(headers ...string) Adapter {
	if len(headers) == 0 {
		headers = DefaultIPHeaders
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := GetIPAddress(r, headers)
			h.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), accounts.IpAddrKey, ip)))
		})
	}
}

// GetIPAddress finds the client address of r as InjectIPAddress describes.
func GetIPAddress(r *http.Request, headers []string) string {
	for _, name := range headers {
		hops := strings.Split(r.Header.Get(name), ",")
		for i := len(hops) - 1; i >= 0; i-- {
			addr, err := netip.ParseAddr(strings.TrimSpace(hops[i]))
			if err == nil && isPublic(addr) {
				return addr.String()
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	if addr, err := netip.ParseAddr(host); err == nil {
		return addr.Unmap().String()
	}

	return unknownIP
}

func isPublic(addr netip.Addr) bool {
	addr = addr.Unmap()
	if !addr.IsGlobalUnicast() || addr.IsPrivate() {
		return false
	}

	for _, p := range nonPublic {
		if p.Contains(addr) {
			return false
		}
	}

	return true
}
