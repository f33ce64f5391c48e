package imagehost

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// GCS stores files in a Cloud Storage bucket.
type GCS struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

// NewGCS opens a storage client. An empty credentialsFile falls back to
// application default credentials. cdnURL, when set, replaces the public
// storage.googleapis.com base in returned URLs.
func NewGCS(ctx context.Context, bucket, credentialsFile, cdnURL string) (*GCS, error) {
	if bucket == "" {
		return nil, fmt.Errorf("gcs bucket name is required")
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	base := strings.TrimRight(cdnURL, "/")
	if base == "" {
		base = "https://storage.googleapis.com/" + bucket
	}
	log.Info().Str("bucket", bucket).Msg("gcs image host initialized")
	return &GCS{client: client, bucket: bucket, baseURL: base}, nil
}

func (g *GCS) Put(ctx context.Context, objectName, contentType string, data []byte) (Result, error) {
	w := g.client.Bucket(g.bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=31536000"

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return Result{}, fmt.Errorf("write object %s: %w", objectName, err)
	}
	if err := w.Close(); err != nil {
		return Result{}, fmt.Errorf("finalize object %s: %w", objectName, err)
	}

	url := g.baseURL + "/" + objectName
	return Result{URL: url, ThumbnailURL: url, ProviderID: objectName}, nil
}

func (g *GCS) Delete(ctx context.Context, providerID string) error {
	log.Debug().Str("provider_id", providerID).Msg("image delete skipped; handled by bucket lifecycle")
	return nil
}

func (g *GCS) Close() error {
	return g.client.Close()
}
