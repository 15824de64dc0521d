package objectstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/billing-status-sync/internal/config"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		uri      string
		expected location
	}{
		{"gs://onfly-storage-tables/tables/billing_status_summary", location{SchemeGCS, "onfly-storage-tables", "tables/billing_status_summary"}},
		{"gs://onfly-storage-tables/tables/billing_status_summary/", location{SchemeGCS, "onfly-storage-tables", "tables/billing_status_summary"}},
		{"s3://billing/summary", location{SchemeS3, "billing", "summary"}},
		{"s3://billing", location{SchemeS3, "billing", ""}},
		{"file:///var/data/summary", location{SchemeLocal, "", "/var/data/summary"}},
		{"/var/data/summary/", location{SchemeLocal, "", "/var/data/summary"}},
		{"./data", location{SchemeLocal, "", "./data"}},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			got, err := parseLocation(tt.uri)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseLocation_Invalid(t *testing.T) {
	_, err := parseLocation("")
	assert.ErrorIs(t, err, ErrInvalidLocation)

	_, err = parseLocation("gs:///sem-bucket")
	assert.ErrorIs(t, err, ErrInvalidLocation)

	_, err = parseLocation("http://example.com/x")
	assert.ErrorIs(t, err, ErrUnsupportedScheme)
}

func TestLocation_KeyAndString(t *testing.T) {
	loc := location{Scheme: SchemeGCS, Bucket: "b", Prefix: "tables/x"}
	assert.Equal(t, "tables/x/a.parquet", loc.key("a.parquet"))
	assert.Equal(t, "tables/x/", loc.listPrefix())
	assert.Equal(t, "gs://b/tables/x", loc.String())

	root := location{Scheme: SchemeS3, Bucket: "b"}
	assert.Equal(t, "a.parquet", root.key("a.parquet"))
	assert.Equal(t, "", root.listPrefix())
	assert.Equal(t, "s3://b", root.String())
}

func TestOpen_LocalPath(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{Store: config.Store{URI: "file://" + dir}}

	bucket, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer bucket.Close()

	assert.IsType(t, &LocalBucket{}, bucket)
	assert.Equal(t, dir, bucket.Location())
}

func TestLocalBucket_MissingDirectoryIsEmpty(t *testing.T) {
	bucket := NewLocalBucket(filepath.Join(t.TempDir(), "ainda-nao-existe"))

	names, err := bucket.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLocalBucket_WriteReadListDelete(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "summary")
	bucket := NewLocalBucket(dir)

	require.NoError(t, bucket.Write(ctx, "b.parquet", []byte("segundo")))
	require.NoError(t, bucket.Write(ctx, "a.parquet", []byte("primeiro")))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))

	names, err := bucket.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.parquet", "b.parquet"}, names)

	data, err := bucket.Read(ctx, "a.parquet")
	require.NoError(t, err)
	assert.Equal(t, []byte("primeiro"), data)

	require.NoError(t, bucket.Write(ctx, "a.parquet", []byte("substituído")))
	data, err = bucket.Read(ctx, "a.parquet")
	require.NoError(t, err)
	assert.Equal(t, []byte("substituído"), data)

	require.NoError(t, bucket.Delete(ctx, "b.parquet"))
	require.NoError(t, bucket.Delete(ctx, "b.parquet"))

	names, err = bucket.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.parquet"}, names)

	_, err = bucket.Read(ctx, "b.parquet")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestLocalBucket_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	bucket := NewLocalBucket(t.TempDir())
	err := bucket.Write(ctx, "a.parquet", []byte("x"))
	assert.ErrorIs(t, err, context.Canceled)

	names, err := bucket.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}
