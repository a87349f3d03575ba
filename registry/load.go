package registry

import (
	"context"
	"fmt"
	"os"

	"github.com/shyptr/graphql-validator/schema"
	"gocloud.dev/blob"

	// Imported for the side-effect of registering blob.OpenBucket() providers.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
)

// LoadFile reads a YAML manifest from the local filesystem and compiles
// it.
func LoadFile(path string) (*schema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("registry: read manifest: %w", err)
	}
	return load(data)
}

// LoadBucket reads key from an already-open bucket and compiles it. The
// caller owns the bucket.
func LoadBucket(ctx context.Context, bucket *blob.Bucket, key string) (*schema.Schema, error) {
	data, err := bucket.ReadAll(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("registry: read manifest %q: %w", key, err)
	}
	return load(data)
}

// LoadURL opens the bucket named by a blob URL ("file:///etc/schemas",
// "mem://"), reads key from it, and compiles it. Additional providers
// (s3, gcs) become available by blank-importing their driver packages.
func LoadURL(ctx context.Context, bucketURL, key string) (*schema.Schema, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, fmt.Errorf("registry: open bucket %q: %w", bucketURL, err)
	}
	defer bucket.Close()
	return LoadBucket(ctx, bucket, key)
}

func load(data []byte) (*schema.Schema, error) {
	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("registry: parse manifest: %w", err)
	}
	return Compile(m)
}
