package scanfr

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/scanfr/internal/providers"
	"github.com/brogergvhs/scanfr/internal/util"
)

var _ providers.Fetcher = (*Client)(nil)

// Client fetches ScanFR pages and hands them to Source's parsers.
type Client struct {
	src    *Source
	client *http.Client
	log    interface{ Debugf(string, ...any) }

	Attempts int
	Backoff  time.Duration
}

func NewClient(src *Source, c *http.Client, log interface{ Debugf(string, ...any) }) *Client {
	if src == nil {
		src = New("")
	}
	if c == nil {
		c = http.DefaultClient
	}

	return &Client{
		src:      src,
		client:   c,
		log:      log,
		Attempts: 3,
		Backoff:  500 * time.Millisecond,
	}
}

func (c *Client) Source() *Source { return c.src }

func (c *Client) debugf(format string, args ...any) {
	if c.log != nil {
		c.log.Debugf(format, args...)
	}
}

func (c *Client) fetchBody(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	resp, err := util.DoWithRetry(c.client, req, c.Attempts, c.Backoff)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", target, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &providers.HTTPStatusError{URL: target, StatusCode: resp.StatusCode}
	}

	return io.ReadAll(resp.Body)
}

// fetchDOM parses the page and records its URL so relative links resolve
// against the page that was actually served.
func (c *Client) fetchDOM(ctx context.Context, target string) (*goquery.Document, error) {
	body, err := c.fetchBody(ctx, target)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", target, err)
	}
	if u, err := url.Parse(target); err == nil {
		doc.Url = u
	}

	return doc, nil
}

func (c *Client) Popular(ctx context.Context, page int) (providers.MangasPage, error) {
	doc, err := c.fetchDOM(ctx, c.src.PopularRequest(page))
	if err != nil {
		return providers.MangasPage{}, err
	}

	res, err := c.src.ParsePopular(doc)
	c.debugf("popular page %d: %d mangas\n", page, len(res.Mangas))

	return res, err
}

func (c *Client) Latest(ctx context.Context) (providers.MangasPage, error) {
	doc, err := c.fetchDOM(ctx, c.src.LatestRequest())
	if err != nil {
		return providers.MangasPage{}, err
	}

	res, err := c.src.ParseLatest(doc)
	c.debugf("latest: %d mangas\n", len(res.Mangas))

	return res, err
}

func (c *Client) Search(ctx context.Context, query string) (providers.MangasPage, error) {
	body, err := c.fetchBody(ctx, c.src.SearchRequest(query))
	if err != nil {
		return providers.MangasPage{}, err
	}

	res, err := c.src.ParseSearch(body, query)
	c.debugf("search %q: %d suggestions\n", query, len(res.Mangas))

	return res, err
}

// Details fetches the manga page. mangaURL is the site-relative URL from a
// listing or search result.
func (c *Client) Details(ctx context.Context, mangaURL string) (providers.MangaDetail, error) {
	doc, err := c.fetchDOM(ctx, c.src.AbsoluteURL(mangaURL))
	if err != nil {
		return providers.MangaDetail{}, err
	}

	return c.src.ParseDetail(doc), nil
}

// Chapters reads the chapter list, which lives on the manga page itself.
func (c *Client) Chapters(ctx context.Context, mangaURL string) ([]providers.Chapter, error) {
	doc, err := c.fetchDOM(ctx, c.src.AbsoluteURL(mangaURL))
	if err != nil {
		return nil, err
	}

	chs, err := c.src.ParseChapters(doc)
	if err != nil {
		return nil, err
	}
	c.debugf("chapters %s: %d found\n", mangaURL, len(chs))

	return chs, nil
}

func (c *Client) Pages(ctx context.Context, chapterURL string) ([]providers.Page, error) {
	doc, err := c.fetchDOM(ctx, c.src.AbsoluteURL(chapterURL))
	if err != nil {
		return nil, err
	}

	pages := c.src.ParsePages(doc)
	c.debugf("pages %s: %d found\n", chapterURL, len(pages))

	return pages, nil
}
