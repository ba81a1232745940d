package catalog

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjectGetter struct {
	objects map[string]string
	keys    []string
}

func (f *fakeObjectGetter) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.keys = append(f.keys, *in.Key)
	body, ok := f.objects[*in.Key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

// mockLoader is a Loader backed by a function.
type mockLoader struct {
	loadFunc func(ctx context.Context, path string) ([]string, error)
}

func (m *mockLoader) Load(ctx context.Context, path string) ([]string, error) {
	return m.loadFunc(ctx, path)
}

func TestS3Loader_Load(t *testing.T) {
	getter := &fakeObjectGetter{objects: map[string]string{"categories/list.txt": "Phones\nBooks\n"}}
	loader := &s3Loader{client: getter, bucket: "bucket", logger: zerolog.Nop()}

	names, err := loader.Load(context.Background(), "categories/list.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"Phones", "Books"}, names)

	_, err = loader.Load(context.Background(), "categories/missing.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket=bucket")
}

func TestFallbackLoader_S3Success(t *testing.T) {
	remote := &mockLoader{loadFunc: func(ctx context.Context, path string) ([]string, error) {
		assert.Equal(t, "categories/list.txt", path, "S3 key should have prefix")
		return []string{"Phones"}, nil
	}}
	local := &mockLoader{loadFunc: func(ctx context.Context, path string) ([]string, error) {
		t.Error("file loader should not be called when S3 succeeds")
		return nil, errors.New("should not be called")
	}}

	names, err := NewFallbackLoader(remote, local, "categories/", zerolog.Nop()).Load(context.Background(), "list.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"Phones"}, names)
}

func TestFallbackLoader_S3FailsFallsBackToLocal(t *testing.T) {
	remote := &mockLoader{loadFunc: func(ctx context.Context, path string) ([]string, error) {
		return nil, errors.New("S3 connection failed")
	}}
	local := &mockLoader{loadFunc: func(ctx context.Context, path string) ([]string, error) {
		assert.Equal(t, "list.txt", path, "local path should not have prefix")
		return []string{"Books"}, nil
	}}

	names, err := NewFallbackLoader(remote, local, "categories/", zerolog.Nop()).Load(context.Background(), "list.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"Books"}, names)
}

func TestFallbackLoader_LocalOnly(t *testing.T) {
	local := &mockLoader{loadFunc: func(ctx context.Context, path string) ([]string, error) {
		return nil, errors.New("missing")
	}}

	_, err := NewFallbackLoader(nil, local, "categories/", zerolog.Nop()).Load(context.Background(), "list.txt")
	assert.EqualError(t, err, "missing")
}
