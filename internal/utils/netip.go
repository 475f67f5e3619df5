package utils

import "net"

// ParseHostNoPort returns the host part (no port) from strings like
// "ip:port", "[v6]:port", or "ip".
func ParseHostNoPort(s string) string {
	if s == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(s); err == nil {
		return h
	}
	return s
}

// IsLoopbackAddr reports whether the remote address string resolves to a
// loopback IP. Used to fence the API to local clients.
func IsLoopbackAddr(remoteAddr string) bool {
	host := ParseHostNoPort(remoteAddr)
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
