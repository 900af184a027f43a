package scanfr

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/scanfr/internal/providers"
)

// ParseDetail never fails: a missing element leaves its field at the zero
// value.
func (s *Source) ParseDetail(doc *goquery.Document) providers.MangaDetail {
	base := s.documentBase(doc)

	genres := doc.Find("a[href*=category]").Map(func(_ int, a *goquery.Selection) string {
		return normSpace(a.Text())
	})
	if genres == nil {
		genres = []string{}
	}

	return providers.MangaDetail{
		ThumbnailURL: resolve(base, firstAttr(doc.Find("img.img-responsive"), "src")),
		Description:  text(doc.Find(".well p")),
		Author:       normSpace(doc.Find("a[href*=author]").First().Text()),
		Genres:       genres,
		Status:       parseStatus(normSpace(doc.Find("span.label").First().Text())),
	}
}

// parseStatus is an exact, case-sensitive match on the site's French labels.
func parseStatus(label string) providers.Status {
	switch label {
	case "En cours":
		return providers.StatusOngoing
	case "Complete":
		return providers.StatusCompleted
	default:
		return providers.StatusUnknown
	}
}
