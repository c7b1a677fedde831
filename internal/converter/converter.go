// Package converter turns office documents and plain text into PDF files
// suitable for in-browser viewing.
package converter

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"go.uber.org/zap"
)

var (
	ErrUnsupportedExtension = errors.New("unsupported extension")
	ErrSourceNotFound       = errors.New("source file not found")
	ErrInvalidOutput        = errors.New("converter produced an invalid pdf")
)

// Converter produces a PDF from a local source file.
// The returned path points to a file inside outDir.
type Converter interface {
	ToPDF(ctx context.Context, srcPath, outDir string) (string, error)
}

// Backend converts a fixed set of extensions.
type Backend interface {
	Name() string
	Extensions() []string
	Convert(ctx context.Context, srcPath, outDir string) (string, error)
}

// Registry dispatches conversions to backends by file extension and
// optionally checks that the result parses as a PDF.
type Registry struct {
	byExt    map[string]Backend
	validate bool
	metrics  *Metrics
	logger   *zap.Logger
}

type Option func(*Registry)

// WithValidation makes the registry count pages of every output with pdfcpu.
func WithValidation(on bool) Option {
	return func(r *Registry) { r.validate = on }
}

func WithMetrics(m *Metrics) Option {
	return func(r *Registry) { r.metrics = m }
}

func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) { r.logger = l }
}

// NewRegistry registers backends; a later backend wins on extension overlap.
func NewRegistry(backends []Backend, opts ...Option) *Registry {
	r := &Registry{byExt: make(map[string]Backend), logger: zap.NewNop()}
	for _, b := range backends {
		for _, ext := range b.Extensions() {
			r.byExt[strings.ToLower(ext)] = b
		}
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ Converter = (*Registry)(nil)

// Supports reports whether ext (with leading dot, any case) has a backend.
func (r *Registry) Supports(ext string) bool {
	_, ok := r.byExt[strings.ToLower(ext)]
	return ok
}

// ToPDF converts srcPath into outDir and returns the produced PDF path.
func (r *Registry) ToPDF(ctx context.Context, srcPath, outDir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(srcPath))
	backend, ok := r.byExt[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedExtension, ext)
	}
	if _, err := os.Stat(srcPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrSourceNotFound, srcPath)
		}
		return "", fmt.Errorf("stat source: %w", err)
	}

	start := time.Now()
	out, err := backend.Convert(ctx, srcPath, outDir)
	if err == nil && r.validate {
		var pages int
		pages, err = pageCount(out)
		if err == nil {
			r.logger.Debug("pdf_validated", zap.String("path", out), zap.Int("pages", pages))
		}
	}
	elapsed := time.Since(start)
	r.metrics.observe(backend.Name(), ext, elapsed, err)

	if err != nil {
		r.logger.Warn("conversion_failed",
			zap.String("backend", backend.Name()),
			zap.String("source", filepath.Base(srcPath)),
			zap.Error(err),
		)
		return "", fmt.Errorf("%s convert: %w", backend.Name(), err)
	}
	r.logger.Info("conversion_done",
		zap.String("backend", backend.Name()),
		zap.String("source", filepath.Base(srcPath)),
		zap.Duration("elapsed", elapsed),
	)
	return out, nil
}

func pageCount(pdfPath string) (int, error) {
	f, err := os.Open(pdfPath)
	if err != nil {
		return 0, fmt.Errorf("open output: %w", err)
	}
	defer f.Close()
	n, err := api.PageCount(f, model.NewDefaultConfiguration())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: no pages", ErrInvalidOutput)
	}
	return n, nil
}

// pdfPathFor returns outDir/<source base name>.pdf.
func pdfPathFor(srcPath, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
	return filepath.Join(outDir, base+".pdf")
}
