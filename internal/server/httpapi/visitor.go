package httpapi

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
)

// clientIP returns the peer address without its port. Behind a proxy the
// router's RealIP middleware has already replaced RemoteAddr with the
// forwarded client address.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}

// visitorID identifies a visitor for likes without storing the address.
func visitorID(r *http.Request) string {
	sum := sha256.Sum256([]byte(clientIP(r)))
	return hex.EncodeToString(sum[:])
}
