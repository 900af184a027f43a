package scanfr

import (
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/scanfr/internal/providers"
)

// ChapterListSelector matches the site's current chapter list. The class name
// is a literal the site renames now and then; it is not meant to be clever.
const ChapterListSelector = "ul.chapters888 li"

// dateLayout is "15 Jan. 2023": English month abbreviations followed by a dot.
const dateLayout = "2 Jan. 2006"

// ChapterFromElement keeps the raw anchor href (only stripped of scheme and
// host), unlike the listing parsers which resolve first. Chapter anchors mix
// absolute and relative links and the reader endpoint expects them as-is.
func (s *Source) ChapterFromElement(el *goquery.Selection) (providers.Chapter, error) {
	uploaded, err := ParseDate(text(el.Find("div.date-chapter-title-rtl")))
	if err != nil {
		return providers.Chapter{}, err
	}

	return providers.Chapter{
		Name:       text(el.Find("h5")),
		URL:        relative(firstAttr(el.Find("a"), "href")),
		UploadedAt: uploaded,
	}, nil
}

// ParseChapters returns chapters in document order (newest first on the
// site). A malformed date aborts the whole list.
func (s *Source) ParseChapters(doc *goquery.Document) ([]providers.Chapter, error) {
	items := doc.Find(ChapterListSelector)
	out := make([]providers.Chapter, 0, items.Length())

	var err error
	items.EachWithBreak(func(i int, el *goquery.Selection) bool {
		var ch providers.Chapter
		ch, err = s.ChapterFromElement(el)
		if err != nil {
			err = fmt.Errorf("chapter %d: %w", i, err)
			return false
		}
		out = append(out, ch)

		return true
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// ParseDate converts the chapter date to epoch milliseconds at midnight UTC.
// An empty string yields 0.
func ParseDate(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}

	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return 0, &providers.ParseError{What: "chapter date", Err: err}
	}

	return t.UnixMilli(), nil
}
