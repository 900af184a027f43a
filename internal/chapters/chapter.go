package chapters

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/brogergvhs/scanfr/internal/providers"
	"github.com/gosimple/slug"
	"github.com/samber/lo"
)

// Chapter is a providers.Chapter placed in reading order. Index is 1-based,
// oldest first.
type Chapter struct {
	providers.Chapter
	Index int
	Label string
}

var reNumber = regexp.MustCompile(`\d+(?:[.,]\d+)?`)

// FromSource converts a source chapter list (newest first) into reading order.
func FromSource(list []providers.Chapter) []Chapter {
	out := lo.Reverse(lo.Map(list, func(c providers.Chapter, _ int) Chapter {
		return Chapter{Chapter: c, Label: labelFromName(c.Name)}
	}))
	for i := range out {
		out[i].Index = i + 1
	}

	return out
}

// labelFromName picks the chapter number: the last number before an optional
// " : subtitle" part, e.g. "One Piece 1090 : Le vrai trésor" -> "1090".
func labelFromName(name string) string {
	head, _, _ := strings.Cut(name, " : ")
	nums := reNumber.FindAllString(head, -1)
	if len(nums) == 0 {
		return ""
	}

	return strings.ReplaceAll(nums[len(nums)-1], ",", ".")
}

func (c Chapter) baseName() string {
	name := slug.Make(c.Name)
	if name == "" {
		name = "chapter"
	}

	return fmt.Sprintf("%04d-%s", c.Index, name)
}

func (c Chapter) FolderName() string {
	return c.baseName() + "_tmp"
}

func (c Chapter) OutputCBZ() string {
	return c.baseName() + ".cbz"
}

func (c Chapter) OutputCBZPath(out string) string {
	return filepath.Join(out, c.OutputCBZ())
}

// Uploaded returns the upload time, or the zero time when the site gave none.
func (c Chapter) Uploaded() time.Time {
	if c.UploadedAt == 0 {
		return time.Time{}
	}

	return time.UnixMilli(c.UploadedAt).UTC()
}
