package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Store is the blob-store surface the document pipeline uses.
type Store interface {
	Upload(ctx context.Context, objectPath string, data []byte, contentType string) error
	// ResolveURL returns a distribution URL for an existing object: the
	// public URL when one is configured, else a signed long-lived URL.
	ResolveURL(ctx context.Context, objectPath string) (string, error)
	// PresignedURL always mints a fresh signed URL, used at read time since
	// stored URLs are not assumed durable.
	PresignedURL(ctx context.Context, objectPath string, ttl time.Duration) (string, error)
}

type minioStore struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
}

// NewMinioStore builds the store from environment configuration.
func NewMinioStore() (Store, error) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		endpoint = "localhost:9000"
	}
	bucket := os.Getenv("MINIO_BUCKET")
	if bucket == "" {
		bucket = "medilink-documents"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY"), ""),
		Secure: os.Getenv("MINIO_USE_SSL") == "true",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &minioStore{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(os.Getenv("STORAGE_PUBLIC_BASE_URL"), "/"),
	}, nil
}

func (s *minioStore) Upload(ctx context.Context, objectPath string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, objectPath, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload object %s: %w", objectPath, err)
	}
	return nil
}

func (s *minioStore) ResolveURL(ctx context.Context, objectPath string) (string, error) {
	if s.publicBaseURL != "" {
		return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, s.bucket, objectPath), nil
	}
	// No public endpoint configured: fall back to a signed long-lived URL.
	return s.PresignedURL(ctx, objectPath, 7*24*time.Hour)
}

func (s *minioStore) PresignedURL(ctx context.Context, objectPath string, ttl time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, objectPath, ttl, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to presign object %s: %w", objectPath, err)
	}
	return u.String(), nil
}
