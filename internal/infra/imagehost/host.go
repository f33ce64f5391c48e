package imagehost

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"folkify/internal/apperr"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// MaxUploadBytes caps a single uploaded file.
const MaxUploadBytes = 10 << 20

var (
	ImageTypes    = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}
	DocumentTypes = []string{"application/pdf", "image/jpeg", "image/png"}
)

// Result is what the host returns for a stored file.
type Result struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
	ProviderID   string `json:"provider_id"`
	ContentType  string `json:"content_type"`
	Size         int64  `json:"size"`
}

// Host stores uploaded files. Delete is a placeholder: removal of stored
// objects is left to a lifecycle rule on the storage side.
type Host interface {
	Put(ctx context.Context, objectName, contentType string, data []byte) (Result, error)
	Delete(ctx context.Context, providerID string) error
}

// Default is the host used by the HTTP handlers; main sets it at startup.
var Default Host

// Upload sniffs data, checks it against allowed and stores it under folder.
func Upload(ctx context.Context, h Host, folder string, data []byte, allowed []string) (Result, error) {
	if h == nil {
		return Result{}, apperr.New(apperr.CodeDependency, "image host not configured")
	}
	if len(data) == 0 {
		return Result{}, apperr.New(apperr.CodeValidation, "file is empty")
	}
	if len(data) > MaxUploadBytes {
		return Result{}, apperr.New(apperr.CodeValidation, "file is too large")
	}

	mt := mimetype.Detect(data)
	if !mimetype.EqualsAny(mt.String(), allowed...) {
		return Result{}, apperr.New(apperr.CodeValidation, fmt.Sprintf("file type %s is not allowed", mt.String()))
	}

	name, err := ObjectName(folder, mt.Extension())
	if err != nil {
		return Result{}, err
	}
	res, err := h.Put(ctx, name, mt.String(), data)
	if err != nil {
		return Result{}, apperr.Wrap(apperr.CodeDependency, err, "upload failed")
	}
	res.ContentType = mt.String()
	res.Size = int64(len(data))
	return res, nil
}

// ObjectName builds "<folder>/<uuid><ext>" and rejects folders that try to
// escape the upload root.
func ObjectName(folder, ext string) (string, error) {
	folder = strings.Trim(strings.TrimSpace(folder), "/")
	if folder == "" {
		return "", apperr.New(apperr.CodeValidation, "folder is required")
	}
	clean := path.Clean(folder)
	if clean != folder || strings.HasPrefix(clean, "..") || strings.Contains(clean, "/../") {
		return "", apperr.New(apperr.CodeValidation, "invalid folder")
	}
	return clean + "/" + uuid.NewString() + ext, nil
}

var errNotStored = errors.New("object not stored")
