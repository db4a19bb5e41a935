package handlers

import (
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
)

// loopbackOnly rejects peers that are not on the local machine.
func (h *Handler) loopbackOnly(c *gin.Context) {
	ip := net.ParseIP(c.RemoteIP())
	if ip == nil || !ip.IsLoopback() {
		if h.log != nil {
			h.log.Warnw("non_local_request_rejected", "remote", c.Request.RemoteAddr, "path", c.Request.URL.Path)
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "control surface is only available on the local device",
		})
		return
	}
	c.Next()
}
