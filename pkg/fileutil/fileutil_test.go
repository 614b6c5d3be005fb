package fileutil

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestFindFileCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Prologue.TXT"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("different case matches", func(t *testing.T) {
		path, err := FindFileCaseInsensitive(dir, "prologue.txt")
		if err != nil {
			t.Fatalf("FindFileCaseInsensitive failed: %v", err)
		}
		if filepath.Base(path) != "Prologue.TXT" {
			t.Errorf("Expected actual filename Prologue.TXT, got %s", filepath.Base(path))
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := FindFileCaseInsensitive(dir, "chapter2.txt"); err == nil {
			t.Error("Expected error for missing file")
		}
	})
}

func TestRealFS(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Main.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	fsys := NewRealFS(dir)
	if fsys.IsEmbedded() {
		t.Error("RealFS reported IsEmbedded=true")
	}

	data, err := fsys.ReadFile("main.TXT")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("Expected %q, got %q", "hello", string(data))
	}
}

func TestEmbedFS(t *testing.T) {
	mapFS := fstest.MapFS{
		"data/scripts/Main.txt": &fstest.MapFile{Data: []byte("BACKGROUND_CHANGE:Classroom")},
	}

	fsys := NewEmbedFS(mapFS, "data")
	if !fsys.IsEmbedded() {
		t.Error("EmbedFS reported IsEmbedded=false")
	}

	data, err := fsys.ReadFile("scripts/main.txt")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "BACKGROUND_CHANGE:Classroom" {
		t.Errorf("Unexpected content: %q", string(data))
	}
}
