// Package testsupport wires an in-memory store and a gin engine for handler tests.
package testsupport

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"folkify/database"
	"folkify/internal/app/http/middleware"
	"folkify/internal/domain/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenDB migrates a fresh in-memory database and installs it as database.DB
// for the duration of the test.
func OpenDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(conn))

	prev := database.DB
	database.DB = conn
	t.Cleanup(func() { database.DB = prev })
	return conn
}

func Engine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// As authenticates every request on the route as s.
func As(s session.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.SetSession(c, s)
		c.Next()
	}
}

// JSON performs a request with an optional JSON body and decodes the reply.
func JSON(t testing.TB, h http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return Do(t, h, req)
}

// Do serves req and decodes a JSON object reply when there is one.
func Do(t testing.TB, h http.Handler, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	out := map[string]any{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w, out
}

// FailQueries makes every SELECT against table fail with err.
func FailQueries(t testing.TB, db *gorm.DB, table string, err error) {
	t.Helper()
	require.NoError(t, db.Callback().Query().Before("gorm:query").
		Register("testsupport:fail_query_"+table, failOn(table, err)))
}

// FailUpdates makes every UPDATE against table fail with err.
func FailUpdates(t testing.TB, db *gorm.DB, table string, err error) {
	t.Helper()
	require.NoError(t, db.Callback().Update().Before("gorm:update").
		Register("testsupport:fail_update_"+table, failOn(table, err)))
}

func failOn(table string, err error) func(*gorm.DB) {
	return func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			_ = tx.AddError(err)
		}
	}
}
