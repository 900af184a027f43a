package downloader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/brogergvhs/scanfr/internal/providers"
)

type recordingProgress struct {
	mu    sync.Mutex
	done  int
	total int
	bytes int64
	final bool
}

func (p *recordingProgress) Update(done, total int, bytes int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done, p.total, p.bytes = done, total, bytes
}

func (p *recordingProgress) MarkDone() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.final = true
}

func imageServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Referer") != "https://www.scan-fr.co/manga/one-piece/1090" {
			http.Error(w, "no referer", http.StatusForbidden)
			return
		}
		switch {
		case strings.HasSuffix(r.URL.Path, "/missing.jpg"):
			http.NotFound(w, r)
		case strings.HasSuffix(r.URL.Path, "/html.jpg"):
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html>blocked</html>"))
		default:
			w.Header().Set("Content-Type", "image/jpeg")
			_, _ = w.Write([]byte("img:" + r.URL.Path))
		}
	}))
	t.Cleanup(srv.Close)

	return srv
}

const referer = "https://www.scan-fr.co/manga/one-piece/1090"

func TestDownloadPagesOrdered(t *testing.T) {
	srv := imageServer(t)
	dir := filepath.Join(t.TempDir(), "ch_tmp")

	pages := []providers.Page{
		{Index: 0, ImageURL: srv.URL + "/p/01.jpg"},
		{Index: 1, ImageURL: srv.URL + "/p/02.png?v=3"},
		{Index: 2, ImageURL: srv.URL + "/p/03"},
		{Index: 3, ImageURL: srv.URL + "/p/ad.gif"},
	}

	ph := &recordingProgress{}
	d := New(srv.Client(), false)
	files, bytes, err := d.DownloadPages(context.Background(), pages, dir, referer, 3, ph)
	if err != nil {
		t.Fatalf("DownloadPages: %v", err)
	}

	want := []string{"page_001.jpg", "page_002.png", "page_003.jpg"}
	if len(files) != len(want) {
		t.Fatalf("files = %v", files)
	}
	for i, f := range files {
		if filepath.Base(f) != want[i] {
			t.Fatalf("file %d = %s, want %s", i, filepath.Base(f), want[i])
		}
	}

	b, err := os.ReadFile(files[1])
	if err != nil || string(b) != "img:/p/02.png" {
		t.Fatalf("page 2 content = %q err=%v", b, err)
	}
	if bytes <= 0 {
		t.Fatalf("expected bytes to be counted, got %d", bytes)
	}
	if !ph.final || ph.done != 4 || ph.total != 4 {
		t.Fatalf("progress = %+v", ph)
	}
}

func TestDownloadPagesFailures(t *testing.T) {
	srv := imageServer(t)
	pages := []providers.Page{
		{Index: 0, ImageURL: srv.URL + "/p/01.jpg"},
		{Index: 1, ImageURL: srv.URL + "/p/missing.jpg"},
		{Index: 2, ImageURL: srv.URL + "/p/html.jpg"},
	}

	strict := New(srv.Client(), false)
	strict.Attempts = 1
	files, _, err := strict.DownloadPages(context.Background(), pages, filepath.Join(t.TempDir(), "a"), referer, 2, nil)
	if err == nil {
		t.Fatalf("expected failure without skip-broken")
	}
	if len(files) != 1 {
		t.Fatalf("expected the good page to be kept, got %v", files)
	}

	lenient := New(srv.Client(), true)
	lenient.Attempts = 1
	files, _, err = lenient.DownloadPages(context.Background(), pages, filepath.Join(t.TempDir(), "b"), referer, 2, nil)
	if err != nil {
		t.Fatalf("skip-broken should not fail: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %v", files)
	}
}

func TestDownloadPagesCancelled(t *testing.T) {
	srv := imageServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pages := []providers.Page{{Index: 0, ImageURL: srv.URL + "/p/01.jpg"}}
	_, _, err := New(srv.Client(), true).DownloadPages(ctx, pages, t.TempDir(), referer, 1, nil)
	if err == nil {
		t.Fatalf("expected context error")
	}
}

func TestImageExt(t *testing.T) {
	cases := map[string]string{
		"https://cdn/x/01.JPG":       ".jpg",
		"https://cdn/x/01.webp?x=1":  ".webp",
		"https://cdn/x/01":           ".jpg",
		"https://cdn/x/01.something": ".jpg",
	}
	for in, want := range cases {
		if got := imageExt(in); got != want {
			t.Fatalf("imageExt(%q) = %q, want %q", in, got, want)
		}
	}
}
