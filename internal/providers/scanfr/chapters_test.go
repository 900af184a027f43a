package scanfr

import (
	"errors"
	"testing"
	"time"

	"github.com/brogergvhs/scanfr/internal/providers"
	"github.com/kr/pretty"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseDate(t *testing.T) {
	Convey("Given chapter date strings", t, func() {
		Convey("An empty string is zero", func() {
			got, err := ParseDate("")
			So(err, ShouldBeNil)
			So(got, ShouldEqual, int64(0))
		})

		Convey("Well formed dates map to midnight UTC", func() {
			got, err := ParseDate("15 Jan. 2023")
			So(err, ShouldBeNil)
			So(got, ShouldEqual, int64(1673740800000))

			got, err = ParseDate("31 Dec. 1999")
			So(err, ShouldBeNil)
			So(got, ShouldEqual, int64(946598400000))

			got, err = ParseDate("5 May. 2021")
			So(err, ShouldBeNil)
			So(got, ShouldEqual, time.Date(2021, time.May, 5, 0, 0, 0, 0, time.UTC).UnixMilli())

			got, err = ParseDate("05 Sep. 2020")
			So(err, ShouldBeNil)
			So(got, ShouldEqual, time.Date(2020, time.September, 5, 0, 0, 0, 0, time.UTC).UnixMilli())
		})

		Convey("Malformed dates fail", func() {
			for _, s := range []string{"garbage", "15 Jan 2023", "15 janv. 2023", "2023-01-15", "Jan. 15 2023"} {
				_, err := ParseDate(s)
				So(err, ShouldNotBeNil)

				var pe *providers.ParseError
				So(errors.As(err, &pe), ShouldBeTrue)
			}
		})
	})
}

func TestParseChapters(t *testing.T) {
	Convey("Given a chapter list page", t, func() {
		src := New("")
		doc := loadDoc(t, "chapters.html", "https://www.scan-fr.co/manga/one-piece")

		Convey("When it is parsed", func() {
			chs, err := src.ParseChapters(doc)
			So(err, ShouldBeNil)

			Convey("Then only the versioned list is read, in document order", func() {
				So(chs, ShouldResemble, []providers.Chapter{
					{
						Name:       "One Piece 1090 : Le vrai trésor",
						URL:        "/manga/one-piece/1090",
						UploadedAt: 1673740800000,
					},
					{
						Name:       "One Piece 1089",
						URL:        "/manga/one-piece/1089",
						UploadedAt: 946598400000,
					},
					{
						Name:       "One Piece 1088",
						URL:        "1088",
						UploadedAt: 0,
					},
				})
			})

			Convey("Then parsing again yields the same result", func() {
				again, err := src.ParseChapters(doc)
				So(err, ShouldBeNil)
				So(pretty.Diff(chs, again), ShouldBeEmpty)
			})
		})
	})

	Convey("Given a list with a malformed date", t, func() {
		src := New("")
		doc := docFromString(t, `<ul class="chapters888">
			<li><h5><a href="/a/1">A 1</a></h5><div class="date-chapter-title-rtl">1 Feb. 2022</div></li>
			<li><h5><a href="/a/2">A 2</a></h5><div class="date-chapter-title-rtl">hier</div></li>
		</ul>`, "")

		Convey("Then the whole list fails", func() {
			chs, err := src.ParseChapters(doc)
			So(chs, ShouldBeNil)
			So(err, ShouldNotBeNil)

			var pe *providers.ParseError
			So(errors.As(err, &pe), ShouldBeTrue)
		})
	})

	Convey("Given a page without the chapter list", t, func() {
		src := New("")
		chs, err := src.ParseChapters(docFromString(t, `<ul class="chapters"><li>x</li></ul>`, ""))

		Convey("Then there are no chapters", func() {
			So(err, ShouldBeNil)
			So(chs, ShouldBeEmpty)
		})
	})
}
