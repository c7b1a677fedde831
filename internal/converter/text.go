package converter

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/font/gofont/gomono"
)

const (
	textFont = "GoMono"

	// Longer lines are flushed in pieces so a single huge line never has to
	// sit in memory whole.
	defaultLineChunk = 64 * 1024
)

// Text renders plain text files onto A4 pages in a monospaced font. The font
// is embedded as UTF-8, so text outside Latin-1 keeps its glyphs.
type Text struct {
	lineChunk int
}

func NewText() *Text {
	return &Text{lineChunk: defaultLineChunk}
}

func (t *Text) Name() string { return "text" }

func (t *Text) Extensions() []string {
	return []string{".txt"}
}

func (t *Text) Convert(ctx context.Context, srcPath, outDir string) (string, error) {
	f, err := os.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddUTF8FontFromBytes(textFont, "", gomono.TTF)
	pdf.AddPage()
	pdf.SetFont(textFont, "", 10)

	if err := t.writeLines(ctx, pdf, bufio.NewReader(f)); err != nil {
		return "", err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create outDir: %w", err)
	}
	out := pdfPathFor(srcPath, outDir)
	if err := pdf.OutputFileAndClose(out); err != nil {
		return "", fmt.Errorf("render pdf: %w", err)
	}
	return out, nil
}

func (t *Text) writeLines(ctx context.Context, pdf *gofpdf.Fpdf, r *bufio.Reader) error {
	chunk := t.lineChunk
	if chunk <= 0 {
		chunk = defaultLineChunk
	}

	var line strings.Builder
	flush := func() {
		pdf.MultiCell(0, 5, strings.ReplaceAll(line.String(), "\t", "    "), "", "L", false)
		line.Reset()
	}

	for {
		ch, _, err := r.ReadRune()
		if errors.Is(err, io.EOF) {
			if line.Len() > 0 {
				flush()
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("read source: %w", err)
		}

		switch ch {
		case '\n':
			flush()
			if err := ctx.Err(); err != nil {
				return err
			}
		case '\r':
			// CRLF line endings
		default:
			line.WriteRune(ch)
			if line.Len() >= chunk {
				flush()
				if err := ctx.Err(); err != nil {
					return err
				}
			}
		}
	}
}
