package storage

import (
	"context"
	"fmt"
	"net/url"

	gstorage "cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// GCSStore writes audio objects to a Cloud Storage bucket and hands out
// token-scoped download URLs, the same scheme used for item images.
type GCSStore struct {
	client *gstorage.Client
	bucket string
}

func NewGCSStore(ctx context.Context, bucket string) (*GCSStore, error) {
	client, err := gstorage.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &GCSStore{client: client, bucket: bucket}, nil
}

func (s *GCSStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	token := uuid.NewString()
	objectPath := "audio/" + name

	obj := s.client.Bucket(s.bucket).Object(objectPath)
	w := obj.NewWriter(ctx)
	w.ContentType = "audio/mpeg"
	w.Metadata = map[string]string{
		"firebaseStorageDownloadTokens": token,
	}
	if _, err := w.Write(data); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	escapedPath := url.PathEscape(objectPath)
	publicURL := fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		s.bucket, escapedPath, token)
	return publicURL, nil
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}
