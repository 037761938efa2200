package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
)

var (
	// ErrUnsupportedScheme is returned for references with an unknown URL scheme.
	ErrUnsupportedScheme = errors.New("unsupported source scheme")
	errNoS3Client        = errors.New("s3 source not configured")
)

// Opener abstracts where a dataset is read from.
type Opener interface {
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
}

// Router dispatches a reference to the matching opener by URL scheme.
// Plain paths and file:// URLs are read from the local filesystem.
type Router struct {
	HTTP Opener
	S3   Opener
}

// Open implements Opener.
func (r *Router) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	scheme := schemeOf(ref)
	switch scheme {
	case "", "file":
		return openFile(strings.TrimPrefix(ref, "file://"))
	case "http", "https":
		if r.HTTP == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, scheme)
		}
		return r.HTTP.Open(ctx, ref)
	case "s3":
		if r.S3 == nil {
			return nil, errNoS3Client
		}
		return r.S3.Open(ctx, ref)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, scheme)
	}
}

// NeedsS3 reports whether any ref is an s3:// URL.
func NeedsS3(refs ...string) bool {
	for _, ref := range refs {
		if schemeOf(ref) == "s3" {
			return true
		}
	}
	return false
}

func schemeOf(ref string) string {
	// Windows drive letters and relative paths have no "://" separator.
	if !strings.Contains(ref, "://") {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Scheme)
}

func openFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}
