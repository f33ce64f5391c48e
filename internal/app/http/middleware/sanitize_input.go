package middleware

import (
	"bytes"
	"encoding/json"
	"html"
	"io"
	"net/http"
	"strings"

	"folkify/internal/app/http/respond"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

// verbatimFields are passed through untouched: links and secrets must reach
// the handler byte for byte.
var verbatimFields = map[string]bool{
	"image":         true,
	"url":           true,
	"thumbnail_url": true,
	"image_url":     true,
	"password":      true,
	"old_password":  true,
	"new_password":  true,
	"token":         true,
}

// SanitizeAndCleanInputMiddleware strips markup from every string in a JSON
// body, including strings nested in objects and arrays such as tags. The
// result is plain text, so entities are decoded again after stripping.
func SanitizeAndCleanInputMiddleware() gin.HandlerFunc {
	policy := bluemonday.StrictPolicy()

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}
		// multipart uploads and other bodies pass through untouched
		if !strings.HasPrefix(c.ContentType(), "application/json") {
			c.Next()
			return
		}

		buf, err := io.ReadAll(c.Request.Body)
		if err != nil {
			respond.FailWith(c, http.StatusBadRequest, "Invalid body")
			return
		}
		if len(bytes.TrimSpace(buf)) == 0 {
			c.Request.Body = io.NopCloser(bytes.NewReader(buf))
			c.Next()
			return
		}

		var body interface{}
		if err := json.Unmarshal(buf, &body); err != nil {
			respond.FailWith(c, http.StatusBadRequest, "Malformed JSON")
			return
		}

		newBody, _ := json.Marshal(clean(policy, body))
		c.Request.Body = io.NopCloser(bytes.NewBuffer(newBody))
		c.Request.ContentLength = int64(len(newBody))

		c.Next()
	}
}

func clean(policy *bluemonday.Policy, v interface{}) interface{} {
	switch t := v.(type) {
	case string:
		return html.UnescapeString(policy.Sanitize(t))
	case map[string]interface{}:
		for k, inner := range t {
			if verbatimFields[k] {
				continue
			}
			t[k] = clean(policy, inner)
		}
		return t
	case []interface{}:
		for i, inner := range t {
			t[i] = clean(policy, inner)
		}
		return t
	default:
		return v
	}
}
