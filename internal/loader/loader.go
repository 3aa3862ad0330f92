// Package loader reads TEI documents from disk, transparently unpacking
// compressed files, and memoizes the parsed plays per absolute path.
package loader

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"
	"golang.org/x/sync/singleflight"

	"github.com/FocuswithJustin/JuniperStage/core/cache"
	apperrors "github.com/FocuswithJustin/JuniperStage/core/errors"
	"github.com/FocuswithJustin/JuniperStage/core/play"
	"github.com/FocuswithJustin/JuniperStage/core/tei"
	"github.com/FocuswithJustin/JuniperStage/internal/logging"
	"github.com/FocuswithJustin/JuniperStage/internal/validation"
)

// Compression identifies how a document was stored on disk.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionXZ   Compression = "xz"
	CompressionGzip Compression = "gzip"
)

var (
	xzMagic   = []byte{0xFD, '7', 'z', 'X', 'Z', 0x00}
	gzipMagic = []byte{0x1F, 0x8B}
)

// unreadable lists container formats that are recognized but not read.
var unreadable = []struct {
	name   string
	magic  []byte
	suffix string
}{
	{"bzip2", []byte("BZh"), ".bz2"},
	{"zstd", []byte{0x28, 0xB5, 0x2F, 0xFD}, ".zst"},
	{"zip", []byte("PK\x03\x04"), ".zip"},
}

// Source is a document as read from disk, before parsing.
type Source struct {
	Path        string
	Data        []byte // decompressed XML
	StoredSize  int64  // bytes on disk
	Compression Compression
	BLAKE3      string // hex digest of Data
}

// Document is a parsed play plus facts about where it came from.
type Document struct {
	Source
	Play     *play.Play
	LoadedAt time.Time
}

// Read loads path and decompresses it if needed.
func Read(path string) (*Source, error) {
	if err := validation.ValidatePath(path); err != nil {
		return nil, apperrors.NewIO("read", path, err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewIO("read", path, err)
	}

	data, comp, err := Decompress(path, raw)
	if err != nil {
		return nil, apperrors.NewIO("decompress", path, err)
	}

	return &Source{
		Path:        path,
		Data:        data,
		StoredSize:  int64(len(raw)),
		Compression: comp,
		BLAKE3:      Fingerprint(data),
	}, nil
}

// Detect reports the compression of raw, by magic bytes first and then by
// file extension.
func Detect(name string, raw []byte) Compression {
	switch {
	case bytes.HasPrefix(raw, xzMagic):
		return CompressionXZ
	case bytes.HasPrefix(raw, gzipMagic):
		return CompressionGzip
	case strings.HasSuffix(name, ".xz"):
		return CompressionXZ
	case strings.HasSuffix(name, ".gz"):
		return CompressionGzip
	}
	return CompressionNone
}

// Decompress returns the XML held in raw. A bzip2, zstd or zip container
// yields an *errors.UnsupportedError.
func Decompress(name string, raw []byte) ([]byte, Compression, error) {
	comp := Detect(name, raw)
	if comp == CompressionNone {
		for _, u := range unreadable {
			if bytes.HasPrefix(raw, u.magic) || strings.HasSuffix(name, u.suffix) {
				return nil, comp, apperrors.NewUnsupported("compression "+u.name, "use plain XML, xz or gzip")
			}
		}
	}

	var r io.Reader
	switch comp {
	case CompressionXZ:
		xzr, err := xz.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, comp, apperrors.Wrap(err, "xz reader")
		}
		r = xzr
	case CompressionGzip:
		gzr, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, comp, apperrors.Wrap(err, "gzip reader")
		}
		defer gzr.Close()
		r = gzr
	default:
		if len(raw) > validation.MaxDocumentSize {
			return nil, comp, fmt.Errorf("%w: %d bytes", validation.ErrTooLarge, len(raw))
		}
		return raw, comp, nil
	}

	data, err := validation.ReadAll(r, validation.MaxDocumentSize)
	if err != nil {
		return nil, comp, apperrors.Wrapf(err, "%s", comp)
	}
	return data, comp, nil
}

// Fingerprint returns the hex BLAKE3-256 digest of data.
func Fingerprint(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Loader memoizes parsed documents. It is safe for concurrent use;
// concurrent first loads of one path share a single parse.
type Loader struct {
	docs  cache.Cache[string, *Document]
	group singleflight.Group
	now   func() time.Time
	log   *slog.Logger
}

// New returns a Loader keeping at most maxEntries documents.
// maxEntries <= 0 uses cache.DefaultMaxSize.
func New(maxEntries int) *Loader {
	cfg := cache.DefaultConfig[string, *Document]()
	if maxEntries > 0 {
		cfg.MaxSize = maxEntries
	}
	l := &Loader{now: time.Now, log: logging.WithComponent("loader")}
	cfg.OnEvict = func(path string, _ *Document) {
		l.log.Debug("document evicted", "path", path)
	}
	l.docs = cache.NewLRUCache(cfg)
	return l
}

// Load returns the parsed document at path, parsing it on first use.
func (l *Loader) Load(ctx context.Context, path string) (*Document, error) {
	key, err := filepath.Abs(path)
	if err != nil {
		return nil, apperrors.NewIO("resolve", path, err)
	}
	if doc, ok := l.docs.Get(key); ok {
		return doc, nil
	}

	v, err, shared := l.group.Do(key, func() (any, error) {
		if doc, ok := l.docs.Get(key); ok {
			return doc, nil
		}
		doc, err := l.parse(ctx, key)
		if err != nil {
			return nil, err
		}
		l.docs.Put(key, doc)
		return doc, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		l.log.DebugContext(ctx, "document load shared", "path", key)
	}
	return v.(*Document), nil
}

func (l *Loader) parse(ctx context.Context, path string) (*Document, error) {
	start := l.now()
	src, err := Read(path)
	if err != nil {
		return nil, err
	}

	p, err := tei.ParseBytes(src.Data)
	if err != nil {
		var pe *apperrors.ParseError
		if apperrors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}

	doc := &Document{Source: *src, Play: p, LoadedAt: l.now()}
	logging.DocumentLoaded(ctx, path, p.Title(), p.ActCount(), p.TotalSceneCount(),
		doc.LoadedAt.Sub(start), "compression", string(src.Compression), "blake3", src.BLAKE3)
	return doc, nil
}

// Forget drops path from the cache so the next Load parses it again.
func (l *Loader) Forget(path string) {
	if key, err := filepath.Abs(path); err == nil {
		l.docs.Remove(key)
	}
}

// Cached lists the cached document paths, most recently used first.
func (l *Loader) Cached() []string {
	return l.docs.Keys()
}

// Stats returns cache statistics.
func (l *Loader) Stats() cache.Stats {
	return l.docs.Stats()
}
