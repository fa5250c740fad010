package middleware_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"timeline-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sanitizedEcho(t *testing.T, method, body string) (int, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(middleware.SanitizeAndCleanInputMiddleware())
	handle := func(c *gin.Context) {
		raw, err := io.ReadAll(c.Request.Body)
		require.NoError(t, err)
		if len(raw) == 0 {
			c.Status(http.StatusOK)
			return
		}
		var echoed map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &echoed))
		c.JSON(http.StatusOK, echoed)
	}
	r.POST("/echo", handle)
	r.GET("/echo", handle)

	req := httptest.NewRequest(method, "/echo", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w.Code, out
}

func TestSanitizeStripsMarkupFromNestedFields(t *testing.T) {
	code, out := sanitizedEcho(t, http.MethodPost, `{
		"event": {
			"title": "<script>alert(1)</script>Moon Landing",
			"tags": [{"text": "<b>history</b>"}]
		}
	}`)
	require.Equal(t, http.StatusOK, code)

	event := out["event"].(map[string]interface{})
	assert.Equal(t, "Moon Landing", event["title"])
	tags := event["tags"].([]interface{})
	tag := tags[0].(map[string]interface{})
	assert.Equal(t, "history", tag["text"])
}

func TestSanitizeLeavesNonStringsAlone(t *testing.T) {
	code, out := sanitizedEcho(t, http.MethodPost, `{"page": 3, "private": true}`)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 3, out["page"])
	assert.Equal(t, true, out["private"])
}

func TestSanitizeRejectsMalformedJSON(t *testing.T) {
	code, _ := sanitizedEcho(t, http.MethodPost, `{"broken`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestSanitizeSkipsReadsAndEmptyBodies(t *testing.T) {
	code, _ := sanitizedEcho(t, http.MethodGet, "")
	assert.Equal(t, http.StatusOK, code)

	code, _ = sanitizedEcho(t, http.MethodPost, strings.Repeat(" ", 4))
	assert.Equal(t, http.StatusOK, code)
}
