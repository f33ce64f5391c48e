package uploads

import (
	"io"
	"net/http"
	"path"

	"folkify/internal/app/http/middleware"
	"folkify/internal/app/http/respond"
	"folkify/internal/apperr"
	"folkify/internal/infra/imagehost"

	"github.com/gin-gonic/gin"
)

// FormFile reads the "file" part of a multipart request, capped at the
// host's upload limit. It returns the bytes and the client-side file name.
func FormFile(c *gin.Context) ([]byte, string, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, "", apperr.New(apperr.CodeValidation, "file is required")
	}
	if fh.Size > imagehost.MaxUploadBytes {
		return nil, "", apperr.New(apperr.CodeValidation, "file is too large")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, "", apperr.Wrap(apperr.CodeValidation, err, "could not read file")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, imagehost.MaxUploadBytes+1))
	if err != nil {
		return nil, "", apperr.Wrap(apperr.CodeValidation, err, "could not read file")
	}
	return data, path.Base(fh.Filename), nil
}

// POST /uploads/images
func UploadImage(c *gin.Context) {
	s, _ := middleware.CurrentSession(c)

	data, _, err := FormFile(c)
	if err != nil {
		respond.Fail(c, err)
		return
	}

	res, err := imagehost.Upload(c.Request.Context(), imagehost.Default, "artworks/"+s.UserID, data, imagehost.ImageTypes)
	if err != nil {
		respond.Fail(c, err)
		return
	}

	respond.OK(c, http.StatusCreated, gin.H{"image": res})
}
