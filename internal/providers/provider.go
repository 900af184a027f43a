package providers

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// MangaSummary is one entry of a listing or search result.
type MangaSummary struct {
	Title        string
	URL          string // site-relative
	ThumbnailURL string // absolute, empty when the listing has none
}

type MangasPage struct {
	Mangas      []MangaSummary
	HasNextPage bool
}

type Status int

const (
	StatusUnknown Status = iota
	StatusOngoing
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusOngoing:
		return "ongoing"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

type MangaDetail struct {
	ThumbnailURL string
	Description  string
	Author       string
	Genres       []string
	Status       Status
}

// GenreString renders the genres the way the site lists them.
func (d MangaDetail) GenreString() string {
	return strings.Join(d.Genres, ", ")
}

type Chapter struct {
	Name       string
	URL        string
	UploadedAt int64 // epoch millis, 0 when unknown
}

type Page struct {
	Index    int
	ImageURL string
}

// Filter is a search filter exposed by a source. ScanFR exposes none.
type Filter struct {
	Name string
}

// Source is the extraction contract a manga site adapter fulfils. Request
// builders return absolute URLs; parsers never perform I/O.
type Source interface {
	Name() string
	Lang() string
	SupportsLatest() bool

	PopularRequest(page int) string
	LatestRequest() string
	SearchRequest(query string) string

	ParsePopular(doc *goquery.Document) (MangasPage, error)
	ParseLatest(doc *goquery.Document) (MangasPage, error)
	ParseSearch(body []byte, query string) (MangasPage, error)
	ParseDetail(doc *goquery.Document) MangaDetail
	ParseChapters(doc *goquery.Document) ([]Chapter, error)
	ParsePages(doc *goquery.Document) []Page
	ImageURLParse(doc *goquery.Document) (string, error)
	Filters() []Filter
}

// Fetcher is the part of the host that talks to the network.
type Fetcher interface {
	Popular(ctx context.Context, page int) (MangasPage, error)
	Latest(ctx context.Context) (MangasPage, error)
	Search(ctx context.Context, query string) (MangasPage, error)
	Details(ctx context.Context, mangaURL string) (MangaDetail, error)
	Chapters(ctx context.Context, mangaURL string) ([]Chapter, error)
	Pages(ctx context.Context, chapterURL string) ([]Page, error)
}
