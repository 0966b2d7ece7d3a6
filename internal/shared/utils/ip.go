package utils

import (
	"net"
	"net/http"
	"strings"
)

// ExtractClientIP returns the real client IP of r.
//
// Priority order:
// 1. X-Forwarded-For (first entry)
// 2. X-Real-IP
// 3. RemoteAddr
func ExtractClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if isValidIP(first) {
			return first
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); isValidIP(xri) {
		return xri
	}

	// RemoteAddr: "IP:port" hoặc "[IPv6]:port"
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	if isValidIP(ip) {
		return ip
	}
	return "127.0.0.1"
}

func isValidIP(ip string) bool {
	return ip != "" && net.ParseIP(ip) != nil
}
