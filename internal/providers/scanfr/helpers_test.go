package scanfr

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func loadDoc(t *testing.T, name, pageURL string) *goquery.Document {
	t.Helper()

	f, err := os.Open(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("open fixture %s: %v", name, err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		t.Fatalf("parse fixture %s: %v", name, err)
	}
	setURL(t, doc, pageURL)

	return doc
}

func docFromString(t *testing.T, html, pageURL string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	setURL(t, doc, pageURL)

	return doc
}

func setURL(t *testing.T, doc *goquery.Document, pageURL string) {
	t.Helper()

	if pageURL == "" {
		return
	}
	u, err := url.Parse(pageURL)
	if err != nil {
		t.Fatalf("bad page url %q: %v", pageURL, err)
	}
	doc.Url = u
}
