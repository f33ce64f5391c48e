package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"folkify/config"
	"folkify/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	config.JWT_SECRET = "test-secret"
}

func protected(extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware()}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		s, ok := CurrentSession(c)
		c.JSON(http.StatusOK, gin.H{"ok": ok, "user_id": s.UserID, "role": s.Role, "ctx_user": c.GetString("user_id")})
	})
	r.GET("/p", handlers...)
	return r
}

func get(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareBuildsSession(t *testing.T) {
	token, err := IssueToken("u-1", "meera@example.com", users.RoleArtist)
	require.NoError(t, err)

	w := get(protected(), "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "u-1", body["user_id"])
	assert.Equal(t, "u-1", body["ctx_user"])
	assert.Equal(t, users.RoleArtist, body["role"])
}

func TestAuthMiddlewareRejects(t *testing.T) {
	r := protected()

	assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer not-a-jwt").Code)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "u-1"})
	signed, err := foreign.SignedString([]byte("other-secret"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer "+signed).Code)

	numeric := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": 7})
	signed, err = numeric.SignedString([]byte(config.JWT_SECRET))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer "+signed).Code)
}

func TestRequireRole(t *testing.T) {
	r := protected(RequireRole(users.RoleArtist))

	buyer, err := IssueToken("u-2", "b@example.com", users.RoleBuyer)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, get(r, "Bearer "+buyer).Code)

	artist, err := IssueToken("u-3", "a@example.com", users.RoleArtist)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, get(r, "Bearer "+artist).Code)
}

func TestSanitizeCleansNestedStrings(t *testing.T) {
	r := gin.New()
	r.Use(SanitizeAndCleanInputMiddleware())
	r.POST("/s", func(c *gin.Context) {
		raw, _ := io.ReadAll(c.Request.Body)
		c.Data(http.StatusOK, "application/json", raw)
	})

	payload := `{"title":"<b>Warli</b> Dance","tags":["<script>x</script>folk"],"price":10}`
	req := httptest.NewRequest(http.MethodPost, "/s", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Warli Dance", body["title"])
	assert.Equal(t, []any{"folk"}, body["tags"])
	assert.EqualValues(t, 10, body["price"])
}

func TestSanitizeKeepsPlainTextAndLinks(t *testing.T) {
	r := gin.New()
	r.Use(SanitizeAndCleanInputMiddleware())
	r.POST("/s", func(c *gin.Context) {
		raw, _ := io.ReadAll(c.Request.Body)
		c.Data(http.StatusOK, "application/json", raw)
	})

	payload := `{"title":"Warli & Gond <i>pair</i>","shipping_address":"12 A&B Lane, \"Rose\" Villa",` +
		`"image":{"url":"https://cdn.test/a.jpg?w=800&h=600","thumbnail_url":"https://cdn.test/t.jpg?a=1&b=2"},` +
		`"password":"p<ss>&word1"}`
	req := httptest.NewRequest(http.MethodPost, "/s", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Warli & Gond pair", body["title"])
	assert.Equal(t, `12 A&B Lane, "Rose" Villa`, body["shipping_address"])
	image := body["image"].(map[string]any)
	assert.Equal(t, "https://cdn.test/a.jpg?w=800&h=600", image["url"])
	assert.Equal(t, "https://cdn.test/t.jpg?a=1&b=2", image["thumbnail_url"])
	assert.Equal(t, "p<ss>&word1", body["password"])
}

func TestSanitizeAllowsEmptyAndRejectsMalformed(t *testing.T) {
	r := gin.New()
	r.Use(SanitizeAndCleanInputMiddleware())
	r.POST("/s", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodPost, "/s", nil)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/s", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOptionalAuth(t *testing.T) {
	r := gin.New()
	r.GET("/o", OptionalAuth(), func(c *gin.Context) {
		s, ok := CurrentSession(c)
		c.JSON(http.StatusOK, gin.H{"ok": ok, "user_id": s.UserID})
	})

	call := func(header string) map[string]any {
		req := httptest.NewRequest(http.MethodGet, "/o", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		return body
	}

	assert.Equal(t, false, call("")["ok"])
	assert.Equal(t, false, call("Bearer garbage")["ok"])

	token, err := IssueToken("u-9", "x@example.com", users.RoleBuyer)
	require.NoError(t, err)
	body := call("Bearer " + token)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "u-9", body["user_id"])
}
