package ui

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimit caps requests per client IP in a fixed one-minute window. The
// calculator is the site's most abused endpoint; the cap is generous for a
// human and cheap to enforce.
func RateLimit(perMinute int) gin.HandlerFunc {
	type window struct {
		count int
		start time.Time
	}
	var mu sync.Mutex
	windows := make(map[string]*window)

	return func(c *gin.Context) {
		mu.Lock()
		w, ok := windows[c.ClientIP()]
		now := time.Now()
		if !ok || now.Sub(w.start) >= time.Minute {
			w = &window{start: now}
			windows[c.ClientIP()] = w
		}
		w.count++
		blocked := w.count > perMinute
		// Keep the map from growing without bound across windows.
		if len(windows) > 10000 {
			for ip, win := range windows {
				if now.Sub(win.start) >= time.Minute {
					delete(windows, ip)
				}
			}
		}
		mu.Unlock()

		if blocked {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Muitas requisições, tente novamente em instantes",
			})
			return
		}
		c.Next()
	}
}
