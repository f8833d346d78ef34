package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-chartspec/pkg/schema"
)

// DefaultMaxSize bounds every config document regardless of where it is read
// from.
const DefaultMaxSize int64 = 1 << 20

// Options configures how config sources are resolved. HTTP stays disabled
// unless a client is supplied or AllowHTTP is set.
type Options struct {
	FileSystem     fs.FS
	HTTPClient     *http.Client
	AllowHTTP      bool
	RequestTimeout time.Duration
	// MaxSize caps the payload size in bytes. Zero selects DefaultMaxSize.
	MaxSize int64
}

// Loader reads config documents and decodes them into loosely typed maps.
type Loader struct {
	openers map[schema.SourceKind]opener
	maxSize int64
}

// opener resolves a location into a stream. Callers close the stream.
type opener func(ctx context.Context, location string) (io.ReadCloser, error)

// New constructs a Loader. Only the source kinds enabled by options get an
// opener; the others fail with a descriptive error.
func New(options Options) *Loader {
	l := &Loader{
		openers: map[schema.SourceKind]opener{
			schema.SourceKindFile: openFile,
		},
		maxSize: options.MaxSize,
	}
	if l.maxSize <= 0 {
		l.maxSize = DefaultMaxSize
	}
	if options.FileSystem != nil {
		l.openers[schema.SourceKindFS] = fsOpener(options.FileSystem)
	}
	if client := httpClient(options); client != nil {
		l.openers[schema.SourceKindURL] = httpOpener(client, options.RequestTimeout)
	}
	return l
}

// Load reads the payload behind src, enforcing the size cap, and wraps it in
// a Document.
func (l *Loader) Load(ctx context.Context, src schema.Source) (schema.Document, error) {
	if src == nil {
		return schema.Document{}, errors.New("config loader: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return schema.Document{}, err
	}
	open, ok := l.openers[src.Kind()]
	if !ok {
		return schema.Document{}, disabledKind(src.Kind())
	}

	rc, err := open(ctx, src.Location())
	if err != nil {
		return schema.Document{}, err
	}
	defer func() {
		_ = rc.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(rc, l.maxSize+1))
	if err != nil {
		return schema.Document{}, fmt.Errorf("config loader: read %s: %w", src.Location(), err)
	}
	if int64(len(data)) > l.maxSize {
		return schema.Document{}, fmt.Errorf("config loader: %s exceeds %d bytes", src.Location(), l.maxSize)
	}
	return schema.NewDocument(src, data)
}

// LoadMap loads src and decodes it according to its format.
func (l *Loader) LoadMap(ctx context.Context, src schema.Source) (schema.Document, map[string]any, error) {
	doc, err := l.Load(ctx, src)
	if err != nil {
		return schema.Document{}, nil, err
	}
	values, err := DecodeDocument(doc)
	if err != nil {
		return schema.Document{}, nil, err
	}
	return doc, values, nil
}

func disabledKind(kind schema.SourceKind) error {
	switch kind {
	case schema.SourceKindFS:
		return errors.New("config loader: filesystem is not configured")
	case schema.SourceKindURL:
		return errors.New("config loader: http support disabled")
	default:
		return fmt.Errorf("config loader: unsupported source kind %q", kind)
	}
}
