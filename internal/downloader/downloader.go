package downloader

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/brogergvhs/scanfr/internal/providers"
)

// Progress receives page counters while a chapter downloads.
type Progress interface {
	Update(done, total int, bytes int64)
	MarkDone()
}

type Downloader struct {
	client     *http.Client
	skipBroken bool

	Attempts int
	Timeout  time.Duration
}

func New(c *http.Client, skipBroken bool) *Downloader {
	return &Downloader{
		client:     c,
		skipBroken: skipBroken,
		Attempts:   3,
		Timeout:    30 * time.Second,
	}
}

type chapterState struct {
	mu          sync.Mutex
	doneImages  int
	totalImages int
	doneBytes   int64
	ph          Progress
}

func (cs *chapterState) pageDone() {
	cs.mu.Lock()
	cs.doneImages++
	cs.ph.Update(cs.doneImages, cs.totalImages, cs.doneBytes)
	cs.mu.Unlock()
}

func (cs *chapterState) addBytes(delta int64) {
	cs.mu.Lock()
	cs.doneBytes += delta
	cs.ph.Update(cs.doneImages, cs.totalImages, cs.doneBytes)
	cs.mu.Unlock()
}

// DownloadPages saves every page into folder as page_NNN.ext and returns the
// written files ordered by page index.
func (d *Downloader) DownloadPages(
	ctx context.Context,
	pages []providers.Page,
	folder string,
	referer string,
	maxParallel int,
	ph Progress,
) ([]string, int64, error) {

	if err := os.MkdirAll(folder, 0755); err != nil {
		return nil, 0, err
	}
	if ph == nil {
		ph = nopProgress{}
	}

	total := len(pages)
	cs := &chapterState{totalImages: total, ph: ph}
	ph.Update(0, total, 0)

	var mu sync.Mutex
	written := make(map[int]string, total)
	var errs []error

	poolErr := runPool(ctx, total, maxParallel, func(i int) {
		defer cs.pageDone()

		p := pages[i]
		if strings.HasSuffix(strings.ToLower(p.ImageURL), ".gif") {
			return
		}

		out := filepath.Join(folder, fmt.Sprintf("page_%03d%s", p.Index+1, imageExt(p.ImageURL)))
		var last int64
		progress := func(done int64) {
			if delta := done - last; delta > 0 {
				last = done
				cs.addBytes(delta)
			}
		}

		if err := d.downloadWithRetry(ctx, p.ImageURL, out, referer, progress); err != nil {
			mu.Lock()
			errs = append(errs, fmt.Errorf("page %d: %w", p.Index+1, err))
			mu.Unlock()
			return
		}

		mu.Lock()
		written[p.Index] = out
		mu.Unlock()
	})
	ph.MarkDone()

	files := orderedFiles(written)
	if poolErr != nil {
		return files, cs.doneBytes, poolErr
	}
	if len(errs) > 0 && !d.skipBroken {
		return files, cs.doneBytes, fmt.Errorf("failed %d/%d pages (use --skip-broken to continue): %w", len(errs), total, errs[0])
	}

	return files, cs.doneBytes, nil
}

func orderedFiles(written map[int]string) []string {
	idx := make([]int, 0, len(written))
	for i := range written {
		idx = append(idx, i)
	}
	sort.Ints(idx)

	files := make([]string, len(idx))
	for n, i := range idx {
		files[n] = written[i]
	}

	return files
}

func imageExt(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ".jpg"
	}

	ext := strings.ToLower(path.Ext(u.Path))
	if ext == "" || len(ext) > 5 {
		return ".jpg"
	}

	return ext
}

func (d *Downloader) downloadWithRetry(
	ctx context.Context,
	url string,
	output string,
	referer string,
	progress func(done int64),
) error {
	attempts := max(1, d.Attempts)

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = d.download(ctx, url, output, referer, progress)
		if err == nil || attempt == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * time.Second):
		}
	}

	return err
}

func (d *Downloader) download(
	ctx context.Context,
	u, output, referer string,
	progress func(done int64),
) error {
	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	if referer != "" {
		req.Header.Set("Referer", referer)
	}
	req.Header.Set("Accept", "image/avif,image/webp,image/apng,image/*,*/*;q=0.8")
	req.Header.Set("Accept-Language", "fr-FR,fr;q=0.9,en;q=0.8")

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		if mt, _, _ := mime.ParseMediaType(ct); !strings.HasPrefix(mt, "image/") {
			return fmt.Errorf("unexpected MIME: %s", ct)
		}
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}

	if _, err := copyWithProgress(f, resp.Body, progress); err != nil {
		_ = f.Close()
		_ = os.Remove(output)
		return err
	}

	return f.Close()
}

type nopProgress struct{}

func (nopProgress) Update(int, int, int64) {}
func (nopProgress) MarkDone()              {}
