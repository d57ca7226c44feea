package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	domainerrors "gisteam.backend/internal/domain/errors"
)

// GCSStore keeps objects in a Google Cloud Storage bucket.
type GCSStore struct {
	client *storage.Client
	bucket *storage.BucketHandle
	name   string
}

// NewGCSStore opens a client for bucket. credentialsFile may be empty to use
// application default credentials.
func NewGCSStore(ctx context.Context, bucket, credentialsFile string, opts ...option.ClientOption) (*GCSStore, error) {
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &GCSStore{client: client, bucket: client.Bucket(bucket), name: bucket}, nil
}

// EnsureBucket creates the bucket when it does not exist yet.
func (s *GCSStore) EnsureBucket(ctx context.Context, projectID string) error {
	_, err := s.bucket.Attrs(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrBucketNotExist) {
		return domainerrors.Transient("gcs bucket attrs", err)
	}
	if err := s.bucket.Create(ctx, projectID, nil); err != nil {
		return domainerrors.Transient("gcs create bucket", err)
	}
	return nil
}

// Close releases the underlying client.
func (s *GCSStore) Close() error {
	return s.client.Close()
}

func (s *GCSStore) Put(ctx context.Context, path string, data []byte) error {
	w := s.bucket.Object(path).NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return domainerrors.Transient("gcs put "+path, err)
	}
	// The object only becomes visible once Close succeeds.
	if err := w.Close(); err != nil {
		return domainerrors.Transient("gcs put "+path, err)
	}
	return nil
}

func (s *GCSStore) Get(ctx context.Context, path string) ([]byte, bool, error) {
	r, err := s.bucket.Object(path).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, false, nil
		}
		return nil, false, domainerrors.Transient("gcs get "+path, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, false, domainerrors.Transient("gcs read "+path, err)
	}
	return data, true, nil
}

func (s *GCSStore) List(ctx context.Context, prefix string) ([]string, error) {
	it := s.bucket.Objects(ctx, &storage.Query{Prefix: prefix})
	var paths []string
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, domainerrors.Transient("gcs list "+prefix, err)
		}
		paths = append(paths, attrs.Name)
	}
	return paths, nil
}

func (s *GCSStore) Delete(ctx context.Context, path string) (bool, error) {
	err := s.bucket.Object(path).Delete(ctx)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, storage.ErrObjectNotExist) {
		return false, nil
	}
	return false, domainerrors.Transient("gcs delete "+path, err)
}
