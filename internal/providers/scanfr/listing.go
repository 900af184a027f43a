package scanfr

import (
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/scanfr/internal/providers"
	"github.com/samber/lo"
)

type ListingKind int

const (
	KindPopular ListingKind = iota
	KindLatest
	KindSearch
)

func (k ListingKind) String() string {
	switch k {
	case KindPopular:
		return "popular"
	case KindLatest:
		return "latest"
	case KindSearch:
		return "search"
	default:
		return "unknown"
	}
}

type listing struct {
	selector    string
	fromElement func(el *goquery.Selection, base *url.URL) providers.MangaSummary
}

// Search is served by a JSON endpoint, so KindSearch has no entry here.
var listings = map[ListingKind]listing{
	KindPopular: {
		selector:    "div.media",
		fromElement: popularFromElement,
	},
	KindLatest: {
		selector:    ".mangalist .manga-item",
		fromElement: latestFromElement,
	},
}

func popularFromElement(el *goquery.Selection, base *url.URL) providers.MangaSummary {
	link := el.Find("a.chart-title")

	return providers.MangaSummary{
		Title:        text(link.Find("strong")),
		URL:          relative(resolve(base, firstAttr(link, "href"))),
		ThumbnailURL: resolve(base, firstAttr(el.Find("img"), "src")),
	}
}

// Latest cards carry no cover image.
func latestFromElement(el *goquery.Selection, base *url.URL) providers.MangaSummary {
	link := el.Find(".manga-heading a")

	return providers.MangaSummary{
		Title: text(link),
		URL:   relative(resolve(base, firstAttr(link, "href"))),
	}
}

// ParseListing maps every card of the given kind in document order. Neither
// listing paginates, so HasNextPage is always false.
func (s *Source) ParseListing(doc *goquery.Document, kind ListingKind) (providers.MangasPage, error) {
	l, ok := listings[kind]
	if !ok {
		return providers.MangasPage{}, s.unsupported(kind.String() + " listing selector")
	}

	base := s.documentBase(doc)
	cards := doc.Find(l.selector)

	return providers.MangasPage{
		Mangas: lo.Times(cards.Length(), func(i int) providers.MangaSummary {
			return l.fromElement(cards.Eq(i), base)
		}),
		HasNextPage: false,
	}, nil
}

func (s *Source) ParsePopular(doc *goquery.Document) (providers.MangasPage, error) {
	return s.ParseListing(doc, KindPopular)
}

func (s *Source) ParseLatest(doc *goquery.Document) (providers.MangasPage, error) {
	return s.ParseListing(doc, KindLatest)
}

// SearchMangaSelector exists so callers probing for selector based search get
// a clear ErrUnsupported instead of an empty result.
func (s *Source) SearchMangaSelector() (string, error) {
	if l, ok := listings[KindSearch]; ok {
		return l.selector, nil
	}

	return "", s.unsupported("searchMangaSelector")
}

func (s *Source) SearchMangaFromElement(*goquery.Selection) (providers.MangaSummary, error) {
	return providers.MangaSummary{}, s.unsupported("searchMangaFromElement")
}
