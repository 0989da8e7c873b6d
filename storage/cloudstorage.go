package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"

	"github.com/portalempleos/backend/config"
	"github.com/portalempleos/backend/models"
	"github.com/portalempleos/backend/validation"
)

// ReviewURLExpiry bounds employer review access. The persisted CV
// reference is the object key; signed URLs are minted on demand.
const ReviewURLExpiry = time.Hour

// CloudStorageClient wraps Google Cloud Storage operations for CV files
type CloudStorageClient struct {
	client     *storage.Client
	bucketName string
}

// NewCloudStorageClient creates a new Cloud Storage client
func NewCloudStorageClient(ctx context.Context, cfg *config.Config) (*CloudStorageClient, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Cloud Storage client: %w", err)
	}

	return &CloudStorageClient{
		client:     client,
		bucketName: cfg.CVBucketName,
	}, nil
}

// Close closes the Cloud Storage client
func (c *CloudStorageClient) Close() error {
	return c.client.Close()
}

// CVObjectKey derives the storage key for an uploaded CV. Keys are
// namespaced per offer and unique per application id, timestamp, and a
// random component, so a collision indicates a bug rather than bad luck.
func CVObjectKey(offerID, applicationID, originalName string) string {
	return fmt.Sprintf("cvs/%s/%s-%d-%04d-%s",
		offerID, applicationID, time.Now().Unix(), rand.Intn(10000),
		validation.SanitizeFileName(originalName))
}

// Upload writes CV bytes under the given key. The write carries a
// does-not-exist precondition: overwriting an existing key fails with
// models.ErrObjectExists.
func (c *CloudStorageClient) Upload(ctx context.Context, key string, content []byte, contentType string) error {
	obj := c.client.Bucket(c.bucketName).Object(key).If(storage.Conditions{DoesNotExist: true})

	wc := obj.NewWriter(ctx)
	wc.ContentType = contentType
	if wc.ContentType == "" {
		wc.ContentType = contentTypeForKey(key)
	}
	wc.CacheControl = "private, max-age=3600"

	if _, err := wc.Write(content); err != nil {
		wc.Close()
		return fmt.Errorf("failed to write CV object: %w", err)
	}

	if err := wc.Close(); err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusPreconditionFailed {
			return models.ErrObjectExists
		}
		return fmt.Errorf("failed to finish CV upload: %w", err)
	}
	return nil
}

// Download reads a stored CV back as bytes
func (c *CloudStorageClient) Download(ctx context.Context, key string) ([]byte, error) {
	rc, err := c.client.Bucket(c.bucketName).Object(key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, models.ErrObjectNotFound
		}
		return nil, fmt.Errorf("failed to open CV object: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read CV object: %w", err)
	}
	return data, nil
}

// Delete removes a stored CV. Used as the compensating action when the
// application record cannot be completed, and by the retention sweep.
func (c *CloudStorageClient) Delete(ctx context.Context, key string) error {
	if err := c.client.Bucket(c.bucketName).Object(key).Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return models.ErrObjectNotFound
		}
		return fmt.Errorf("failed to delete CV object: %w", err)
	}
	return nil
}

// SignedURL generates a time-limited V4 signed URL for retrieving a CV
func (c *CloudStorageClient) SignedURL(key string, expiry time.Duration) (string, error) {
	opts := &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  "GET",
		Expires: time.Now().Add(expiry),
	}

	url, err := c.client.Bucket(c.bucketName).SignedURL(key, opts)
	if err != nil {
		return "", fmt.Errorf("failed to generate signed URL: %w", err)
	}
	return url, nil
}

func contentTypeForKey(key string) string {
	switch {
	case strings.HasSuffix(key, ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(key, ".doc"):
		return "application/msword"
	case strings.HasSuffix(key, ".docx"):
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}
