package metadata

import (
	"net"
	"net/http"
	"net/netip"
	"strings"

	"kredita/pkg/requestcontext"
)

// Resolver attributes requests to a client IP address. Forwarding headers
// are honoured only when the connection comes from a trusted proxy.
type Resolver struct {
	trusted []netip.Prefix
}

// NewResolver trusts forwarding headers set by peers inside the given
// prefixes. With no prefixes only the connection address is used.
func NewResolver(trusted []netip.Prefix) *Resolver {
	return &Resolver{trusted: trusted}
}

// ClientMetadata extracts client IP address and User-Agent from the request
// and adds them to the context for use by handlers and the rate limiter.
// This middleware should be applied early in the chain.
func (res *Resolver) ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithClientMetadata(r.Context(), res.ClientIP(r), r.Header.Get("User-Agent"))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClientIP returns the address the request is attributed to.
//
// Behind trusted proxies X-Forwarded-For is read right to left and the first
// hop outside the trusted prefixes wins.
func (res *Resolver) ClientIP(r *http.Request) string {
	remote, ok := remoteAddr(r)
	if !ok {
		if r.RemoteAddr == "" {
			return "unknown"
		}
		return r.RemoteAddr
	}
	if !res.isTrusted(remote) {
		return remote.String()
	}

	if hops := forwardedHops(r); len(hops) > 0 {
		client := remote
		for i := len(hops) - 1; i >= 0; i-- {
			hop, err := netip.ParseAddr(hops[i])
			if err != nil {
				break
			}
			client = hop.Unmap()
			if !res.isTrusted(client) {
				break
			}
		}
		return client.String()
	}

	if xri, err := netip.ParseAddr(strings.TrimSpace(r.Header.Get("X-Real-IP"))); err == nil {
		return xri.Unmap().String()
	}
	return remote.String()
}

func (res *Resolver) isTrusted(addr netip.Addr) bool {
	for _, p := range res.trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

func remoteAddr(r *http.Request) (netip.Addr, bool) {
	host := r.RemoteAddr
	if h, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		host = h
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}

// forwardedHops flattens every X-Forwarded-For header, in order.
func forwardedHops(r *http.Request) []string {
	var hops []string
	for _, v := range r.Header.Values("X-Forwarded-For") {
		for _, hop := range strings.Split(v, ",") {
			if hop = strings.TrimSpace(hop); hop != "" {
				hops = append(hops, hop)
			}
		}
	}
	return hops
}
