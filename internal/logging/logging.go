// Package logging writes one JSON object per line to stdout for the
// supply chain service and its request middleware.
package logging

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
)

// Service is stamped on every entry so shipped logs can be filtered per binary
const Service = "retail-supply-chain"

func init() {
	log.SetOutput(os.Stdout)
}

// LogKV logs a structured line with a level, message and extra fields
func LogKV(level, msg string, fields map[string]interface{}) {
	log.Println(string(encode(level, msg, fields, time.Now())))
}

func encode(level, msg string, fields map[string]interface{}, now time.Time) []byte {
	entry := make(map[string]interface{}, len(fields)+4)
	for k, v := range fields {
		entry[k] = v
	}
	entry["level"] = level
	entry["ts"] = now.UTC().Format(time.RFC3339Nano)
	entry["msg"] = msg
	entry["service"] = Service
	b, _ := json.Marshal(entry)
	return b
}

// requestLevel is "error" for 5xx or handler-recorded errors (failed
// notifications, page load errors) and "warn" for other 4xx
func requestLevel(status int, errs int) string {
	switch {
	case status >= http.StatusInternalServerError || errs > 0:
		return "error"
	case status >= http.StatusBadRequest:
		return "warn"
	default:
		return "info"
	}
}

// JSONLogger logs each request with its matched route and the signed-in
// user's id and role when a session is present.
func JSONLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		status := c.Writer.Status()
		fields := map[string]interface{}{
			"method":     c.Request.Method,
			"path":       path,
			"route":      c.FullPath(),
			"query":      query,
			"status":     status,
			"latency_ms": float64(time.Since(start).Microseconds()) / 1000.0,
			"client_ip":  c.ClientIP(),
			"bytes_out":  c.Writer.Size(),
		}
		if uid, ok := c.Get("user_id"); ok {
			fields["user_id"] = uid
		}
		if role, ok := c.Get("role"); ok {
			fields["role"] = role
		}
		if len(c.Errors) > 0 {
			fields["error"] = c.Errors.String()
		}

		LogKV(requestLevel(status, len(c.Errors)), "request", fields)
	}
}
