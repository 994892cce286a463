package storage

import (
	"context"
	"strings"
	"time"

	appdocument "github.com/rentals/backend/internal/application/document"
)

// StubObjectStorage hands out fake URLs for local development. It never
// stores anything and reports every key as present so the upload flow can be
// exercised without a bucket.
type StubObjectStorage struct {
	BaseURL string
}

var _ appdocument.ObjectStorage = (*StubObjectStorage)(nil)

// NewStubObjectStorage creates a new StubObjectStorage
func NewStubObjectStorage(baseURL string) *StubObjectStorage {
	if baseURL == "" {
		baseURL = "https://storage.example.com"
	}
	return &StubObjectStorage{BaseURL: strings.TrimRight(baseURL, "/")}
}

func (s *StubObjectStorage) signed(kind, storageKey string, expiresIn time.Duration) (string, time.Time) {
	if expiresIn <= 0 {
		expiresIn = defaultPresignExpiration
	}
	expiresAt := time.Now().Add(expiresIn)
	return s.BaseURL + "/" + kind + "/" + storageKey + "?expires=" + expiresAt.UTC().Format(time.RFC3339), expiresAt
}

func (s *StubObjectStorage) GenerateUploadURL(_ context.Context, storageKey, _ string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errKeyRequired
	}
	u, exp := s.signed("upload", storageKey, expiresIn)
	return u, exp, nil
}

func (s *StubObjectStorage) GenerateDownloadURL(_ context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errKeyRequired
	}
	u, exp := s.signed("download", storageKey, expiresIn)
	return u, exp, nil
}

func (s *StubObjectStorage) DeleteObject(_ context.Context, storageKey string) error {
	if storageKey == "" {
		return errKeyRequired
	}
	return nil
}

func (s *StubObjectStorage) ObjectExists(_ context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errKeyRequired
	}
	return true, nil
}

func (s *StubObjectStorage) ObjectURL(storageKey string) string {
	return s.BaseURL + "/files/" + strings.TrimLeft(storageKey, "/")
}
