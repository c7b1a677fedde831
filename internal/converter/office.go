package converter

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// Office converts word-processing and presentation formats with headless LibreOffice.
type Office struct {
	bin     string
	timeout time.Duration
}

// NewOffice returns an Office backend invoking bin (usually "soffice").
// A zero timeout disables the per-conversion deadline.
func NewOffice(bin string, timeout time.Duration) *Office {
	if bin == "" {
		bin = "soffice"
	}
	return &Office{bin: bin, timeout: timeout}
}

func (o *Office) Name() string { return "libreoffice" }

func (o *Office) Extensions() []string {
	return []string{".doc", ".docx", ".ppt", ".pptx", ".rtf"}
}

// Ready checks that the soffice binary is on PATH.
func (o *Office) Ready() error {
	if _, err := exec.LookPath(o.bin); err != nil {
		return fmt.Errorf("%s not found in PATH: %w", o.bin, err)
	}
	return nil
}

func (o *Office) Convert(ctx context.Context, srcPath, outDir string) (string, error) {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create outDir: %w", err)
	}

	// A private profile per call lets conversions run in parallel.
	profile := url.URL{Scheme: "file", Path: filepath.ToSlash(filepath.Join(outDir, ".lo-profile"))}
	cmd := exec.CommandContext(ctx, o.bin,
		"-env:UserInstallation="+profile.String(),
		"--headless",
		"--nologo",
		"--nolockcheck",
		"--nodefault",
		"--norestore",
		"--convert-to", "pdf",
		"--outdir", outDir,
		srcPath,
	)

	out, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("soffice timed out after %s", o.timeout)
		}
		return "", fmt.Errorf("soffice convert failed: %w; out=%s", err, string(out))
	}

	pdfPath := pdfPathFor(srcPath, outDir)
	if _, err := os.Stat(pdfPath); err != nil {
		return "", fmt.Errorf("pdf output not found at %s; soffice out=%s", pdfPath, string(out))
	}
	return pdfPath, nil
}
