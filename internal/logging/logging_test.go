package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/gin-gonic/gin"
)

func TestEncode(t *testing.T) {
	c := qt.New(t)

	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	var entry map[string]interface{}
	err := json.Unmarshal(encode("info", "hello", map[string]interface{}{"order_id": 7}, now), &entry)
	c.Assert(err, qt.IsNil)
	c.Assert(entry["level"], qt.Equals, "info")
	c.Assert(entry["msg"], qt.Equals, "hello")
	c.Assert(entry["ts"], qt.Equals, "2025-01-02T03:04:05Z")
	c.Assert(entry["order_id"], qt.Equals, float64(7))
	c.Assert(entry["service"], qt.Equals, Service)

	// reserved keys win over caller fields
	entry = nil
	err = json.Unmarshal(encode("info", "hello", map[string]interface{}{"level": "debug"}, now), &entry)
	c.Assert(err, qt.IsNil)
	c.Assert(entry["level"], qt.Equals, "info")
}

func TestRequestLevel(t *testing.T) {
	c := qt.New(t)
	c.Assert(requestLevel(http.StatusOK, 0), qt.Equals, "info")
	c.Assert(requestLevel(http.StatusFound, 0), qt.Equals, "info")
	c.Assert(requestLevel(http.StatusNotFound, 0), qt.Equals, "warn")
	c.Assert(requestLevel(http.StatusOK, 1), qt.Equals, "error")
	c.Assert(requestLevel(http.StatusServiceUnavailable, 0), qt.Equals, "error")
}

func TestJSONLogger(t *testing.T) {
	c := qt.New(t)
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	log.SetOutput(&buf)
	log.SetFlags(0)
	defer func() {
		log.SetOutput(os.Stdout)
		log.SetFlags(log.LstdFlags)
	}()

	r := gin.New()
	r.Use(JSONLogger())
	r.GET("/ok", func(ctx *gin.Context) {
		ctx.Set("user_id", 3)
		ctx.Set("role", "admin")
		ctx.Status(http.StatusOK)
	})
	r.GET("/fail", func(ctx *gin.Context) {
		_ = ctx.Error(errors.New("boom"))
		ctx.Status(http.StatusBadRequest)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok?x=1", nil))
	var entry map[string]interface{}
	c.Assert(json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry), qt.IsNil)
	c.Assert(entry["level"], qt.Equals, "info")
	c.Assert(entry["path"], qt.Equals, "/ok")
	c.Assert(entry["query"], qt.Equals, "x=1")
	c.Assert(entry["status"], qt.Equals, float64(200))
	c.Assert(entry["route"], qt.Equals, "/ok")
	c.Assert(entry["user_id"], qt.Equals, float64(3))
	c.Assert(entry["role"], qt.Equals, "admin")

	buf.Reset()
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fail", nil))
	entry = nil
	c.Assert(json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry), qt.IsNil)
	c.Assert(entry["level"], qt.Equals, "error")
	c.Assert(entry["error"], qt.Contains, "boom")
}
