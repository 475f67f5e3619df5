package mw

import (
	"net/http"

	"github.com/MrSnakeDoc/waypoint/internal/logger"
	"github.com/MrSnakeDoc/waypoint/internal/utils"
)

// LoopbackOnly rejects requests from non-loopback clients. The daemon
// manipulates the local filesystem on behalf of its caller, so by default
// nothing off-machine may talk to it. Disabled => passthrough.
func LoopbackOnly(enabled bool, log logger.Logger) func(http.Handler) http.Handler {
	if !enabled {
		log.Debug("LoopbackOnly: disabled, passthrough mode")
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !utils.IsLoopbackAddr(r.RemoteAddr) {
				log.Warn("rejected non-loopback client",
					logger.String("remote_ip", r.RemoteAddr))
				w.WriteHeader(http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
