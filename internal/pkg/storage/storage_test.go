package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir, "http://localhost:8080/uploads/")
	require.NoError(t, err)

	path := filepath.Join(dir, "athletes", "a.jpg")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	require.NoError(t, s.Delete(context.Background(), "athletes/a.jpg"))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// second delete is a no-op
	assert.NoError(t, s.Delete(context.Background(), "athletes/a.jpg"))
	assert.Error(t, s.Delete(context.Background(), "../outside.jpg"))

	assert.Equal(t, "http://localhost:8080/uploads/athletes/a.jpg", s.GetURL("athletes/a.jpg"))
}

func TestS3GetURL(t *testing.T) {
	assert.Equal(t, "https://cdn.test/k.jpg", (&S3Storage{bucket: "b", publicURL: "https://cdn.test"}).GetURL("k.jpg"))
	assert.Equal(t, "http://minio:9000/b/k.jpg", (&S3Storage{bucket: "b", endpoint: "http://minio:9000"}).GetURL("k.jpg"))
	assert.Equal(t, "https://b.s3.amazonaws.com/k.jpg", (&S3Storage{bucket: "b"}).GetURL("k.jpg"))
}

type stubDeleter struct{ err error }

func (d stubDeleter) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	return &s3.DeleteObjectOutput{}, d.err
}

func TestS3DeleteIgnoresMissingKey(t *testing.T) {
	s := &S3Storage{client: stubDeleter{err: &smithy.GenericAPIError{Code: "NoSuchKey"}}, bucket: "b"}
	assert.NoError(t, s.Delete(context.Background(), "k"))

	s.client = stubDeleter{err: &smithy.GenericAPIError{Code: "AccessDenied"}}
	assert.Error(t, s.Delete(context.Background(), "k"))

	s.client = stubDeleter{err: errors.New("network")}
	assert.Error(t, s.Delete(context.Background(), "k"))
}

func TestNewFromConfigFallsBackToLocal(t *testing.T) {
	s, err := NewFromConfig(context.Background(), Config{LocalPath: t.TempDir(), LocalBaseURL: "/uploads"})
	require.NoError(t, err)
	_, ok := s.(*LocalStorage)
	assert.True(t, ok)
}
