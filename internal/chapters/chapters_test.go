package chapters

import (
	"testing"
	"time"

	"github.com/brogergvhs/scanfr/internal/providers"
)

func sample() []Chapter {
	return FromSource([]providers.Chapter{
		{Name: "One Piece 1090 : Le vrai trésor", URL: "/manga/one-piece/1090", UploadedAt: 1673740800000},
		{Name: "One Piece 1089.5", URL: "/manga/one-piece/1089.5"},
		{Name: "One Piece 1089", URL: "/manga/one-piece/1089"},
		{Name: "Prologue", URL: "/manga/one-piece/0"},
	})
}

func TestFromSourceReadingOrder(t *testing.T) {
	all := sample()

	if len(all) != 4 {
		t.Fatalf("expected 4 chapters, got %d", len(all))
	}
	want := []struct {
		idx   int
		label string
		url   string
	}{
		{1, "", "/manga/one-piece/0"},
		{2, "1089", "/manga/one-piece/1089"},
		{3, "1089.5", "/manga/one-piece/1089.5"},
		{4, "1090", "/manga/one-piece/1090"},
	}
	for i, w := range want {
		c := all[i]
		if c.Index != w.idx || c.Label != w.label || c.URL != w.url {
			t.Fatalf("chapter %d = %+v, want %+v", i, c, w)
		}
	}
}

func TestLabelFromName(t *testing.T) {
	cases := map[string]string{
		"One Piece 1090":                  "1090",
		"One Piece 1090 : Le vrai trésor": "1090",
		"Kaiju No. 8 95":                  "95",
		"Chainsaw Man 12,5":               "12.5",
		"Oneshot":                         "",
	}
	for in, want := range cases {
		if got := labelFromName(in); got != want {
			t.Fatalf("labelFromName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFilter(t *testing.T) {
	all := sample()

	if got := Filter(all, "1090", "", ""); len(got) != 1 || got[0].Index != 4 {
		t.Fatalf("by label: %+v", got)
	}
	if got := Filter(all, "2", "", ""); len(got) != 1 || got[0].Label != "1089" {
		t.Fatalf("by index: %+v", got)
	}
	if got := Filter(all, "99", "", ""); got != nil {
		t.Fatalf("unknown chapter should select nothing, got %+v", got)
	}
	if got := Filter(all, "", "2-3", ""); len(got) != 2 || got[0].Index != 2 || got[1].Index != 3 {
		t.Fatalf("range: %+v", got)
	}
	if got := Filter(all, "", "", "4, 1,x,9"); len(got) != 2 || got[0].Index != 4 || got[1].Index != 1 {
		t.Fatalf("list: %+v", got)
	}
	if got := Filter(all, "", "", ""); len(got) != len(all) {
		t.Fatalf("no selection should keep everything, got %d", len(got))
	}
}

func TestFilterRangeRejectsBadInput(t *testing.T) {
	all := sample()
	for _, rng := range []string{"3", "3-2", "0-2", "1-9", "a-b"} {
		if got := FilterRange(all, rng); got != nil {
			t.Fatalf("FilterRange(%q) = %+v, want nil", rng, got)
		}
	}
}

func TestFileNames(t *testing.T) {
	c := sample()[3]

	if got := c.OutputCBZ(); got != "0004-one-piece-1090-le-vrai-tresor.cbz" {
		t.Fatalf("OutputCBZ = %q", got)
	}
	if got := c.FolderName(); got != "0004-one-piece-1090-le-vrai-tresor_tmp" {
		t.Fatalf("FolderName = %q", got)
	}

	empty := Chapter{Index: 7}
	if got := empty.OutputCBZ(); got != "0007-chapter.cbz" {
		t.Fatalf("OutputCBZ for unnamed chapter = %q", got)
	}
}

func TestUploaded(t *testing.T) {
	all := sample()
	if !all[0].Uploaded().IsZero() {
		t.Fatalf("expected zero time for missing date")
	}
	want := time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC)
	if got := all[3].Uploaded(); !got.Equal(want) {
		t.Fatalf("Uploaded = %v, want %v", got, want)
	}
}
