package storage

import (
	"context"
	"io"
	"net/http"
	"time"

	gcs "cloud.google.com/go/storage"
)

type GCSStore struct {
	client *gcs.Client
	bucket string
}

func NewGCSStore(ctx context.Context, bucket string) (*GCSStore, error) {
	c, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &GCSStore{client: c, bucket: bucket}, nil
}

func (s *GCSStore) Close() error { return s.client.Close() }

// Upload writes the object and returns its key. Resumes stay private;
// reads go through SignedGetURL.
func (s *GCSStore) Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (string, error) {
	obj := s.client.Bucket(s.bucket).Object(objectName)

	w := obj.NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	return objectName, nil
}

func (s *GCSStore) SignedGetURL(ctx context.Context, objectName string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return s.client.Bucket(s.bucket).SignedURL(objectName, &gcs.SignedURLOptions{
		Method:  http.MethodGet,
		Expires: time.Now().Add(ttl),
		Scheme:  gcs.SigningSchemeV4,
	})
}
