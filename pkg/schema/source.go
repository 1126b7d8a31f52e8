package schema

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Source identifies where a DSL document originated so loaders can operate on
// files, fs.FS entries, or URLs without leaking implementation details.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile   SourceKind = "file"
	SourceKindFS     SourceKind = "fs"
	SourceKindURL    SourceKind = "url"
	SourceKindInline SourceKind = "inline"
)

type source struct {
	kind     SourceKind
	location string
}

func (s source) Kind() SourceKind {
	return s.kind
}

func (s source) Location() string {
	return s.location
}

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return source{kind: SourceKindFile, location: filepath.Clean(path)}
}

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(name string) Source {
	return source{kind: SourceKindFS, location: name}
}

// SourceInline labels documents that were handed over as bytes (stdin, tests).
func SourceInline(name string) Source {
	if name == "" {
		name = "<inline>"
	}
	return source{kind: SourceKindInline, location: name}
}

// ParseSource classifies a command-line style location. http and https URLs
// become URL sources, file:// URLs and bare paths become file sources.
func ParseSource(raw string) (Source, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("schema: empty source location")
	}
	scheme, rest, found := strings.Cut(raw, "://")
	if !found {
		return SourceFromFile(raw), nil
	}
	switch strings.ToLower(scheme) {
	case "file":
		if rest == "" {
			return nil, fmt.Errorf("schema: file URL %q has no path", raw)
		}
		return SourceFromFile(rest), nil
	case "http", "https":
		parsed, err := url.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("schema: invalid URL %q: %w", raw, err)
		}
		if parsed.Host == "" {
			return nil, fmt.Errorf("schema: URL %q has no host", raw)
		}
		return source{kind: SourceKindURL, location: parsed.String()}, nil
	default:
		return nil, fmt.Errorf("schema: unsupported scheme %q", scheme)
	}
}

// SourceFromURL is ParseSource restricted to http and https URLs. It panics
// on anything else so configuration mistakes surface early.
func SourceFromURL(raw string) Source {
	src, err := ParseSource(raw)
	if err != nil {
		panic(err.Error())
	}
	if src.Kind() != SourceKindURL {
		panic(fmt.Sprintf("schema: %q is not an http URL", raw))
	}
	return src
}
