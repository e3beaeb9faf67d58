package inspect

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/aeyjeyaryan/ultradoc/internal/core/domain"
)

// Inspector reports display-only metadata about a candidate upload: file
// size, and for PDFs the local page count. It never gates the upload; the
// extension allow-set in the upload flow is the only gate.
type Inspector struct{}

func New() *Inspector {
	return &Inspector{}
}

func (Inspector) Inspect(path string) domain.FileInfo {
	info := domain.FileInfo{}

	stat, err := os.Stat(path)
	if err != nil {
		slog.Debug("inspect_stat_failed", "path", path, "error", err)
		return info
	}
	info.SizeBytes = stat.Size()

	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		info.Pages = pdfPageCount(path)
	}

	return info
}

// pdfPageCount recovers from panics: the pdf reader panics on some malformed
// files, and a bad local preview must never break the upload path.
func pdfPageCount(path string) (pages int) {
	defer func() {
		if r := recover(); r != nil {
			slog.Debug("inspect_pdf_panic", "path", path, "panic", r)
			pages = 0
		}
	}()

	file, reader, err := pdf.Open(path)
	if err != nil {
		slog.Debug("inspect_pdf_open_failed", "path", path, "error", err)
		return 0
	}
	defer file.Close()
	return reader.NumPage()
}
