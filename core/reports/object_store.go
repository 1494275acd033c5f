package reports

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"reservation-portal/core/storage"
	"reservation-portal/core/utils"

	"github.com/minio/minio-go/v7"
)

// ObjectStore keeps artifacts in an S3/MinIO bucket below a key prefix.
type ObjectStore struct {
	client storage.Client
	bucket string
	prefix string
}

// NewObjectStore creates a store writing under bucket/prefix.
func NewObjectStore(client storage.Client, bucket, prefix string) *ObjectStore {
	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	return &ObjectStore{client: client, bucket: bucket, prefix: prefix}
}

func (s *ObjectStore) key(name string) (string, error) {
	rel, err := utils.CleanRelative(name)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, name)
	}
	return s.prefix + rel, nil
}

// Save uploads the artifact.
func (s *ObjectStore) Save(ctx context.Context, name string, r io.Reader, size int64) error {
	key, err := s.key(name)
	if err != nil {
		return err
	}
	_, err = s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType(name),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", name, err)
	}
	return nil
}

// Open stats the object first so a missing key maps to ErrNotFound.
func (s *ObjectStore) Open(ctx context.Context, name string) (*Artifact, error) {
	key, err := s.key(name)
	if err != nil {
		return nil, err
	}

	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", name, err)
	}

	body, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", name, err)
	}
	return &Artifact{
		ReadCloser: body,
		Name:       path.Base(key),
		Size:       info.Size,
		ModTime:    info.LastModified,
	}, nil
}

// List enumerates every key below the prefix.
func (s *ObjectStore) List(ctx context.Context) ([]Section, error) {
	var paths []string
	opts := minio.ListObjectsOptions{Prefix: s.prefix, Recursive: true}
	for obj := range s.client.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list reports: %w", obj.Err)
		}
		rel := strings.TrimPrefix(obj.Key, s.prefix)
		if rel == "" || strings.HasSuffix(rel, "/") {
			continue
		}
		paths = append(paths, rel)
	}
	return BuildSections(paths), nil
}

// Clear deletes every key below the prefix.
func (s *ObjectStore) Clear(ctx context.Context) error {
	objectsCh := make(chan minio.ObjectInfo)
	listErr := make(chan error, 1)

	go func() {
		defer close(objectsCh)
		opts := minio.ListObjectsOptions{Prefix: s.prefix, Recursive: true}
		for obj := range s.client.ListObjects(ctx, s.bucket, opts) {
			if obj.Err != nil {
				listErr <- obj.Err
				return
			}
			select {
			case objectsCh <- obj:
			case <-ctx.Done():
				return
			}
		}
	}()

	var firstErr error
	for rErr := range s.client.RemoveObjects(ctx, s.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		if firstErr == nil {
			firstErr = fmt.Errorf("failed to remove %s: %w", rErr.ObjectName, rErr.Err)
		}
	}
	// Drain in case RemoveObjects returned without consuming the channel.
	for range objectsCh {
	}

	select {
	case err := <-listErr:
		return fmt.Errorf("failed to list reports: %w", err)
	default:
	}
	return firstErr
}

func contentType(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".pdf":
		return "application/pdf"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ".csv":
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}
