package config

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func useMemFS(t *testing.T) {
	t.Helper()

	prev := fs
	fs = afero.NewMemMapFs()
	t.Cleanup(func() { fs = prev })

	t.Setenv("APPDATA", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
}

func TestLoadMergedWithoutProfile(t *testing.T) {
	useMemFS(t)

	cfg, used, err := LoadMerged(Options{Output: "out", ImageWorkers: 8, Debug: true})
	if err != nil {
		t.Fatalf("LoadMerged: %v", err)
	}
	if !strings.HasPrefix(used, "(default config in memory)") {
		t.Fatalf("unexpected source %q", used)
	}
	if cfg.Output != "out" || cfg.ImageWorkers != 8 || cfg.ChapterWorkers != defaultChapterWorkers || !cfg.Debug {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if !cfg.Cloudflare || !cfg.ComicInfo {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoadMergedIgnoreConfig(t *testing.T) {
	useMemFS(t)

	if _, err := InitDefaultConfig(); err != nil {
		t.Fatalf("InitDefaultConfig: %v", err)
	}

	cfg, used, err := LoadMerged(Options{IgnoreConfig: true, NoComicInfo: true})
	if err != nil {
		t.Fatalf("LoadMerged: %v", err)
	}
	if used != "(ignored config)" || cfg.ComicInfo {
		t.Fatalf("used=%q cfg=%+v", used, cfg)
	}
}

func TestProfileLifecycle(t *testing.T) {
	useMemFS(t)

	path, err := InitDefaultConfig()
	if err != nil {
		t.Fatalf("InitDefaultConfig: %v", err)
	}
	if path != "/xdg/scanfr/configs/Default.yaml" {
		t.Fatalf("unexpected path %q", path)
	}
	if _, err := InitDefaultConfig(); !errors.Is(err, os.ErrExist) {
		t.Fatalf("second init should report ErrExist, got %v", err)
	}

	mirror, err := CreateConfig("mirror")
	if err != nil {
		t.Fatalf("CreateConfig: %v", err)
	}
	if _, err := CreateConfig("mirror"); err == nil {
		t.Fatalf("duplicate CreateConfig should fail")
	}

	if err := afero.WriteFile(fs, mirror, []byte("base_url: https://mirror.example\nimage_workers: 0\ncloudflare: false\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := SwitchConfig("mirror"); err != nil {
		t.Fatalf("SwitchConfig: %v", err)
	}

	cfg, used, err := LoadMerged(Options{})
	if err != nil {
		t.Fatalf("LoadMerged: %v", err)
	}
	if used != mirror {
		t.Fatalf("used %q, want %q", used, mirror)
	}
	if cfg.BaseURL != "https://mirror.example" || cfg.Cloudflare {
		t.Fatalf("profile values not loaded: %+v", cfg)
	}
	if cfg.ImageWorkers != defaultImageWorkers || cfg.Output != "." {
		t.Fatalf("defaults not normalized: %+v", cfg)
	}

	list, err := ListConfigs()
	if err != nil {
		t.Fatalf("ListConfigs: %v", err)
	}
	if len(list) != 2 || list[0].Label != "Default" || list[1].Label != "mirror" || !list[1].Active || list[0].Active {
		t.Fatalf("unexpected list %+v", list)
	}

	if _, err := ResetActive(); err != nil {
		t.Fatalf("ResetActive: %v", err)
	}
	cfg, _, _ = LoadMerged(Options{})
	if cfg.BaseURL != "" || !cfg.Cloudflare {
		t.Fatalf("reset did not restore defaults: %+v", cfg)
	}

	if err := RemoveConfig("Default"); err == nil {
		t.Fatalf("removing Default should fail")
	}
	if err := RemoveConfig("mirror"); err != nil {
		t.Fatalf("RemoveConfig: %v", err)
	}
	if label, _ := CurrentLabel(); label != "Default" {
		t.Fatalf("active label after removal = %q", label)
	}
	if err := SwitchConfig("mirror"); err == nil {
		t.Fatalf("switching to a removed profile should fail")
	}
}

func TestLoadMergedBrokenYAML(t *testing.T) {
	useMemFS(t)

	path, err := InitDefaultConfig()
	if err != nil {
		t.Fatalf("InitDefaultConfig: %v", err)
	}
	if err := afero.WriteFile(fs, path, []byte("output: [unterminated"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, _, err := LoadMerged(Options{}); err == nil {
		t.Fatalf("expected YAML error")
	}
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.BaseURL = "https://mirror.example"
	cfg.Print(&buf)

	got := buf.String()
	for _, want := range []string{" -output: .", " -image_workers: 5", " -base_url: https://mirror.example", " -cloudflare: true"} {
		if !strings.Contains(got, want) {
			t.Fatalf("Print output %q misses %q", got, want)
		}
	}
	if strings.Contains(got, "skip_broken") {
		t.Fatalf("unset flags should be hidden: %q", got)
	}
}

func TestRenameConfigFollowsActiveLabel(t *testing.T) {
	useMemFS(t)

	if _, err := CreateConfig("old"); err != nil {
		t.Fatalf("CreateConfig: %v", err)
	}
	if err := SwitchConfig("old"); err != nil {
		t.Fatalf("SwitchConfig: %v", err)
	}

	if err := RenameConfig("old", "new"); err != nil {
		t.Fatalf("RenameConfig: %v", err)
	}
	if label, _ := CurrentLabel(); label != "new" {
		t.Fatalf("active label = %q, want new", label)
	}
	if _, err := fs.Stat(ConfigPathByLabel("old")); err == nil {
		t.Fatalf("old profile still present")
	}

	if err := RenameConfig("missing", "x"); err == nil {
		t.Fatalf("renaming a missing profile should fail")
	}
	if err := RenameConfig("new", " "); err == nil {
		t.Fatalf("empty label should fail")
	}
}
