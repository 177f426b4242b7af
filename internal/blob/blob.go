package blob

import (
	"context"
	"io"
	"strings"
)

// Buckets used by the quiz skins.
const (
	BucketBackgrounds = "quiz-backgrounds"
	BucketLogos       = "quiz-logos"
)

// Store abstracts image hosting: named blobs in named buckets with public
// URL resolution. Upload overwrites on conflict.
type Store interface {
	Upload(ctx context.Context, bucket, name string, contentType string, body io.Reader) (string, error)
	PublicURL(bucket, path string) (string, error)
	Delete(ctx context.Context, bucket, path string) error
}

// StripBucket removes a leading bucket-name prefix from a stored path.
// Older records sometimes carry "quiz-logos/foo.png" instead of "foo.png".
func StripBucket(bucket, path string) string {
	return strings.TrimPrefix(path, bucket+"/")
}
