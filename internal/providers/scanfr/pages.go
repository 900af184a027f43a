package scanfr

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/scanfr/internal/providers"
	"github.com/samber/lo"
)

// ParsePages reads the lazy-loaded reader images. src holds a placeholder,
// the real image lives in data-src.
func (s *Source) ParsePages(doc *goquery.Document) []providers.Page {
	base := s.documentBase(doc)
	imgs := doc.Find("#all .img-responsive")

	return lo.Times(imgs.Length(), func(i int) providers.Page {
		return providers.Page{
			Index:    i,
			ImageURL: resolve(base, firstAttr(imgs.Eq(i), "data-src")),
		}
	})
}

// ImageURLParse is not used: ParsePages already yields final image URLs.
func (s *Source) ImageURLParse(*goquery.Document) (string, error) {
	return "", s.unsupported("imageUrlParse")
}
