package inspect

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInspectReportsSizeForPlainText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("hello world"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	info := New().Inspect(path)
	if info.SizeBytes != 11 {
		t.Fatalf("expected size 11, got %d", info.SizeBytes)
	}
	if info.Pages != 0 {
		t.Fatalf("expected no page count for non-PDF, got %d", info.Pages)
	}
}

func TestInspectMissingFileIsZeroValue(t *testing.T) {
	info := New().Inspect(filepath.Join(t.TempDir(), "absent.pdf"))
	if info.SizeBytes != 0 || info.Pages != 0 {
		t.Fatalf("expected zero info for missing file, got %+v", info)
	}
}

func TestInspectCorruptPDFNeverBlocks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.pdf")
	if err := os.WriteFile(path, []byte("not really a pdf"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	info := New().Inspect(path)
	if info.SizeBytes != 16 {
		t.Fatalf("expected size reported despite parse failure, got %d", info.SizeBytes)
	}
	if info.Pages != 0 {
		t.Fatalf("expected zero pages for unreadable pdf, got %d", info.Pages)
	}
}
