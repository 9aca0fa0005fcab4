package atomicfile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteAndClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xml")
	f, err := New(path)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("final path exists before close")
	}
	if _, err := f.WriteString("payload"); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if got, want := string(b), "payload"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAbort(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.xml")
	f, err := New(path)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if _, err := f.WriteString("partial"); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := f.Abort(); err != nil {
		t.Fatalf("abort failed: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("want empty dir after abort, got %d entries", len(entries))
	}
}
