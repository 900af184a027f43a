package chapters

import (
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Filter applies, in priority order, a single chapter (label or index), a
// range of indices, or a comma separated list of indices.
func Filter(all []Chapter, chapter, rng, list string) []Chapter {
	if chapter != "" {
		byLabel := FilterByLabel(all, chapter)
		if len(byLabel) > 0 {
			return byLabel
		}

		if idx, err := atoi(chapter); err == nil && idx > 0 && idx <= len(all) {
			return []Chapter{all[idx-1]}
		}

		return nil
	}

	if rng != "" {
		return FilterRange(all, rng)
	}
	if list != "" {
		return FilterList(all, list)
	}

	return all
}

func FilterByLabel(all []Chapter, label string) []Chapter {
	label = strings.TrimSpace(label)

	return lo.Filter(all, func(c Chapter, _ int) bool {
		return c.Label != "" && c.Label == label
	})
}

func FilterRange(all []Chapter, rng string) []Chapter {
	start, end, ok := strings.Cut(rng, "-")
	if !ok {
		return nil
	}

	s, err1 := atoi(start)
	e, err2 := atoi(end)
	if err1 != nil || err2 != nil {
		return nil
	}
	if s <= 0 || e <= 0 || s > e || e > len(all) {
		return nil
	}

	return all[s-1 : e]
}

func FilterList(all []Chapter, list string) []Chapter {
	var out []Chapter
	for p := range strings.SplitSeq(list, ",") {
		if strings.TrimSpace(p) == "" {
			continue
		}

		idx, err := atoi(p)
		if err != nil || idx <= 0 || idx > len(all) {
			continue
		}

		out = append(out, all[idx-1])
	}

	return out
}

func atoi(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
