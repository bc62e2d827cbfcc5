package editor

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	b, err := Load(filepath.Join(t.TempDir(), "new.md"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if b.Text() != "" || b.LineCount() != 1 {
		t.Errorf("expected one empty line, got %q", b.Text())
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.md")

	b := New("")
	b.ReplaceSelection("# Title\n\n$$\n\n$$")
	if err := b.Save(path); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if b.Modified() {
		t.Error("save should clear modified")
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.Text() != b.Text() {
		t.Errorf("round trip: got %q, want %q", loaded.Text(), b.Text())
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %d entries", len(entries))
	}
}

func TestSave_KeepsExistingMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "private.md")
	if err := os.WriteFile(path, []byte("secret"), 0o600); err != nil {
		t.Fatal(err)
	}
	// WriteFile applies the umask; pin the mode we check against.
	if err := os.Chmod(path, 0o600); err != nil {
		t.Fatal(err)
	}

	b, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	b.InsertRune('x')
	if err := b.Save(path); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := info.Mode().Perm(); got != 0o600 {
		t.Errorf("mode after save = %v, want -rw-------", got)
	}
}

func TestSave_NewFileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.md")

	if err := New("x").Save(path); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := info.Mode().Perm(); got != filePermissions {
		t.Errorf("mode = %v, want %v", got, fs.FileMode(filePermissions))
	}
}

func TestReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.md")
	if err := os.WriteFile(path, []byte("on disk"), 0o644); err != nil {
		t.Fatal(err)
	}

	b := New("in memory")
	b.InsertRune('x')

	if err := b.Reload(path); err != nil {
		t.Fatalf("Reload returned error: %v", err)
	}
	if b.Text() != "on disk" || b.Modified() {
		t.Errorf("text %q modified %v", b.Text(), b.Modified())
	}
}

func TestLoad_Unreadable(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(dir); err == nil {
		t.Error("loading a directory should fail")
	}
}
