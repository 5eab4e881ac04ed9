package local

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveOpenRemove(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	n, err := store.Save(ctx, "1700000000_report.pdf", strings.NewReader("hello"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if n != 5 {
		t.Fatalf("expected 5 bytes written, got %d", n)
	}

	rc, err := store.Open(ctx, "1700000000_report.pdf")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("expected hello, got %q", data)
	}

	if err := store.Remove(ctx, "1700000000_report.pdf"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := store.Open(ctx, "1700000000_report.pdf"); err == nil {
		t.Fatalf("expected Open to fail after Remove")
	}
}

func TestSaveRejectsTraversalNames(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	for _, name := range []string{"../escape", "/abs/path", "", "."} {
		if _, err := store.Save(ctx, name, strings.NewReader("x")); err == nil {
			t.Fatalf("expected Save(%q) to fail", name)
		}
	}
}

func TestSaveDiscardsPartialOnReadError(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)
	ctx := context.Background()

	broken := io.MultiReader(strings.NewReader("partial"), errReader{})
	if _, err := store.Save(ctx, "broken.pdf", broken); err == nil {
		t.Fatalf("expected Save to fail")
	}

	if _, err := os.Stat(filepath.Join(dir, "broken.pdf")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected partial file to be removed, stat err: %v", err)
	}
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("stream disconnected") }
