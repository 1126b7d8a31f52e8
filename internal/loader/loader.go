package loader

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/goliatone/go-formdsl/pkg/schema"
)

// ErrHTTPDisabled is returned for URL sources when no HTTP client was
// configured.
var ErrHTTPDisabled = errors.New("formdsl loader: http support disabled")

// fetcher reads the raw payload stored at location.
type fetcher func(ctx context.Context, location string) ([]byte, error)

// Loader implements schema.Loader. Each source kind resolves to a fetcher;
// kinds without one are rejected before any I/O happens.
type Loader struct {
	fetchers map[schema.SourceKind]fetcher
}

var _ schema.Loader = (*Loader)(nil)

// New registers the fetchers enabled by options. Files are always readable,
// fs.FS entries only with a FileSystem and URLs only with an HTTP client or
// the HTTP fallback.
func New(options schema.LoaderOptions) *Loader {
	l := &Loader{fetchers: map[schema.SourceKind]fetcher{
		schema.SourceKindFile: loadFile,
	}}

	if files := options.FileSystem; files != nil {
		l.fetchers[schema.SourceKindFS] = func(ctx context.Context, name string) ([]byte, error) {
			return loadFromFS(ctx, files, name)
		}
	}
	if client := httpClient(options); client != nil {
		timeout := options.RequestTimeout
		l.fetchers[schema.SourceKindURL] = func(ctx context.Context, url string) ([]byte, error) {
			return loadHTTP(ctx, client, url, timeout)
		}
	}
	return l
}

func httpClient(options schema.LoaderOptions) *http.Client {
	if options.HTTPClient != nil {
		clone := *options.HTTPClient
		if options.RequestTimeout > 0 && clone.Timeout == 0 {
			clone.Timeout = options.RequestTimeout
		}
		return &clone
	}
	if options.AllowHTTPFallback {
		return &http.Client{Timeout: options.RequestTimeout}
	}
	return nil
}

// Load fetches the payload behind src and wraps it in a Document.
func (l *Loader) Load(ctx context.Context, src schema.Source) (schema.Document, error) {
	if src == nil {
		return schema.Document{}, errors.New("formdsl loader: source is nil")
	}

	fetch, ok := l.fetchers[src.Kind()]
	if !ok {
		return schema.Document{}, unsupported(src.Kind())
	}
	data, err := fetch(ctx, src.Location())
	if err != nil {
		return schema.Document{}, &Error{Source: src, Err: err}
	}

	doc, err := schema.NewDocument(src, data)
	if err != nil {
		return schema.Document{}, &Error{Source: src, Err: err}
	}
	return doc, nil
}

func unsupported(kind schema.SourceKind) error {
	switch kind {
	case schema.SourceKindURL:
		return ErrHTTPDisabled
	case schema.SourceKindFS:
		return errors.New("formdsl loader: no fs.FS configured")
	case schema.SourceKindInline:
		return errors.New("formdsl loader: inline sources carry their own payload; build the Document with schema.NewDocument")
	default:
		return fmt.Errorf("formdsl loader: unsupported source kind %q", kind)
	}
}

// Error reports a failed fetch together with the source it was for.
type Error struct {
	Source schema.Source
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("formdsl loader: load %s %q: %v", e.Source.Kind(), e.Source.Location(), e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
