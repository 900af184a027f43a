package util

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateCBZKeepsOrderAndWritesComicInfo(t *testing.T) {
	dir := t.TempDir()

	var files []string
	for _, name := range []string{"page_002.jpg", "page_001.jpg"} {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(name), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		files = append(files, p)
	}

	out := filepath.Join(dir, "ch.cbz")
	err := CreateCBZ(files, out, &ComicInfo{Series: "One Piece", Genre: "Action, Aventure", PageCount: 2})
	if err != nil {
		t.Fatalf("CreateCBZ: %v", err)
	}

	r, err := zip.OpenReader(out)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()

	var names []string
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	if strings.Join(names, ",") != "page_002.jpg,page_001.jpg,ComicInfo.xml" {
		t.Fatalf("unexpected entries %v", names)
	}

	rc, err := r.File[2].Open()
	if err != nil {
		t.Fatalf("open ComicInfo: %v", err)
	}
	defer rc.Close()

	b, _ := io.ReadAll(rc)
	if !strings.Contains(string(b), "<Series>One Piece</Series>") {
		t.Fatalf("ComicInfo missing series: %s", b)
	}
	if !strings.Contains(string(b), "<PageCount>2</PageCount>") {
		t.Fatalf("ComicInfo missing page count: %s", b)
	}
}

func TestCreateCBZMissingFile(t *testing.T) {
	dir := t.TempDir()
	err := CreateCBZ([]string{filepath.Join(dir, "nope.jpg")}, filepath.Join(dir, "x.cbz"), nil)
	if err == nil {
		t.Fatalf("expected error for missing input")
	}
}
