package scanfr

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/scanfr/internal/providers"
)

const (
	DefaultBaseURL = "https://www.scan-fr.co"

	sourceName = "ScanFR"
	sourceLang = "fr"
)

var _ providers.Source = (*Source)(nil)

type Source struct {
	// BaseURL overrides DefaultBaseURL, e.g. when the site moves domains.
	BaseURL string
}

func New(baseURL string) *Source {
	return &Source{BaseURL: baseURL}
}

func (s *Source) Name() string         { return sourceName }
func (s *Source) Lang() string         { return sourceLang }
func (s *Source) SupportsLatest() bool { return true }

func (s *Source) baseURL() string {
	u := strings.TrimSpace(s.BaseURL)
	if u == "" {
		return DefaultBaseURL
	}

	return strings.TrimRight(u, "/")
}

// PopularRequest builds the listing URL sorted by views. page is not
// validated.
func (s *Source) PopularRequest(page int) string {
	return fmt.Sprintf("%s/filterList?page=%d&cat=&alpha=&sortBy=views&asc=false&author=&tag=", s.baseURL(), page)
}

// LatestRequest is always the home page; the site has no paged latest list.
func (s *Source) LatestRequest() string {
	return s.baseURL()
}

func (s *Source) SearchRequest(query string) string {
	return s.baseURL() + "/search?query=" + url.QueryEscape(query)
}

// AbsoluteURL turns a site-relative URL produced by the parsers back into
// something fetchable.
func (s *Source) AbsoluteURL(rel string) string {
	base, err := url.Parse(s.baseURL() + "/")
	if err != nil {
		return rel
	}

	return resolve(base, rel)
}

func (s *Source) Filters() []providers.Filter {
	return []providers.Filter{}
}

func (s *Source) unsupported(op string) error {
	return &providers.UnsupportedError{Source: sourceName, Op: op}
}

// documentBase is the URL relative links in doc resolve against.
func (s *Source) documentBase(doc *goquery.Document) *url.URL {
	if doc != nil && doc.Url != nil {
		return doc.Url
	}

	u, err := url.Parse(s.baseURL() + "/")
	if err != nil {
		return nil
	}

	return u
}

func resolve(base *url.URL, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	ref, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if ref.IsAbs() {
		return ref.String()
	}
	if base == nil {
		return ""
	}

	return base.ResolveReference(ref).String()
}

// relative strips scheme and host, keeping path, query and fragment.
func relative(raw string) string {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), " ", "%20")

	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	out := u.EscapedPath()
	if u.RawQuery != "" || u.ForceQuery {
		out += "?" + u.RawQuery
	}
	if u.Fragment != "" {
		out += "#" + u.EscapedFragment()
	}

	return out
}

// firstAttr returns the attribute of the first element in sel carrying it.
func firstAttr(sel *goquery.Selection, name string) string {
	var out string
	sel.EachWithBreak(func(_ int, el *goquery.Selection) bool {
		v, ok := el.Attr(name)
		if !ok {
			return true
		}
		out = v

		return false
	})

	return out
}

func normSpace(s string) string { return strings.Join(strings.Fields(s), " ") }

// text joins the normalized text of every element in sel with a space.
func text(sel *goquery.Selection) string {
	parts := make([]string, 0, sel.Length())
	sel.Each(func(_ int, el *goquery.Selection) {
		if t := normSpace(el.Text()); t != "" {
			parts = append(parts, t)
		}
	})

	return strings.Join(parts, " ")
}
