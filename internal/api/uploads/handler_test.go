package uploads

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"folkify/internal/domain/session"
	"folkify/internal/infra/imagehost"
	"folkify/internal/testsupport"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func multipartRequest(t *testing.T, field, name string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		part, err := mw.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/uploads/images", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func setup(t *testing.T) (*gin.Engine, *imagehost.Memory) {
	t.Helper()
	host := imagehost.NewMemory()
	prev := imagehost.Default
	imagehost.Default = host
	t.Cleanup(func() { imagehost.Default = prev })

	r := testsupport.Engine()
	r.POST("/uploads/images", testsupport.As(session.Session{UserID: "artist-1", Role: "artist"}), UploadImage)
	return r, host
}

func TestUploadImageStoresUnderArtistFolder(t *testing.T) {
	r, host := setup(t)

	w, body := testsupport.Do(t, r, multipartRequest(t, "file", "fish.png", pngHeader))
	require.Equal(t, http.StatusCreated, w.Code, body)

	image := body["image"].(map[string]any)
	id := image["provider_id"].(string)
	assert.True(t, strings.HasPrefix(id, "artworks/artist-1/"))
	assert.True(t, strings.HasSuffix(id, ".png"))
	assert.Equal(t, "image/png", image["content_type"])

	stored, err := host.Get(id)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, stored)
}

func TestUploadImageRejectsWrongType(t *testing.T) {
	r, _ := setup(t)

	w, body := testsupport.Do(t, r, multipartRequest(t, "file", "notes.txt", []byte("just some text")))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body["error"], "is not allowed")
}

func TestUploadImageRequiresFile(t *testing.T) {
	r, _ := setup(t)

	w, body := testsupport.Do(t, r, multipartRequest(t, "", "", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "file is required", body["error"])
}
