package imagehost

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// Disk stores files under a local directory that the router serves
// statically. It is the fallback when no bucket is configured.
type Disk struct {
	root    string
	baseURL string
}

func NewDisk(root, baseURL string) (*Disk, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Disk{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (d *Disk) Put(ctx context.Context, objectName, contentType string, data []byte) (Result, error) {
	full := filepath.Join(d.root, filepath.FromSlash(objectName))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return Result{}, err
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return Result{}, err
	}

	url := d.baseURL + "/" + objectName
	return Result{URL: url, ThumbnailURL: url, ProviderID: objectName}, nil
}

func (d *Disk) Delete(ctx context.Context, providerID string) error {
	log.Debug().Str("provider_id", providerID).Msg("image delete skipped")
	return nil
}
