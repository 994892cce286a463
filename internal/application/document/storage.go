package document

import (
	"context"
	"time"
)

// ObjectStorage is the upload collaborator. The core never handles file
// bytes; clients PUT them to a presigned URL and report back the key.
type ObjectStorage interface {
	// GenerateUploadURL returns a presigned PUT URL and its expiry
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	// GenerateDownloadURL returns a presigned GET URL and its expiry
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
	DeleteObject(ctx context.Context, storageKey string) error
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
	// ObjectURL is the stable, unsigned location of a stored object
	ObjectURL(storageKey string) string
}
