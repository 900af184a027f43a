package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/brogergvhs/scanfr/internal/chapters"
	"github.com/brogergvhs/scanfr/internal/providers"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <manga-url>",
	Short: "Show manga details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(baseOptions())
		if err != nil {
			return err
		}

		d, err := s.client.Details(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		s.log.Dump("detail", d)

		printDetail(cmd.OutOrStdout(), d)
		return nil
	},
}

var chaptersCmd = &cobra.Command{
	Use:   "chapters <manga-url>",
	Short: "List chapters in reading order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(baseOptions())
		if err != nil {
			return err
		}

		raw, err := s.client.Chapters(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		return printChapters(cmd.OutOrStdout(), chapters.FromSource(raw))
	},
}

func init() {
	rootCmd.AddCommand(infoCmd, chaptersCmd)
}

func printDetail(out io.Writer, d providers.MangaDetail) {
	_, _ = fmt.Fprintf(out, "Author:      %s\n", d.Author)
	_, _ = fmt.Fprintf(out, "Status:      %s\n", d.Status)
	_, _ = fmt.Fprintf(out, "Genres:      %s\n", d.GenreString())
	_, _ = fmt.Fprintf(out, "Thumbnail:   %s\n", d.ThumbnailURL)
	_, _ = fmt.Fprintf(out, "\n%s\n", d.Description)
}

func printChapters(out io.Writer, list []chapters.Chapter) error {
	w := tabwriter.NewWriter(out, 0, 0, 4, ' ', 0)
	_, _ = fmt.Fprintln(w, "#\tCHAPTER\tUPLOADED\tURL")
	for _, ch := range list {
		uploaded := "-"
		if ch.UploadedAt != 0 {
			uploaded = ch.Uploaded().Format(time.DateOnly)
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", ch.Index, ch.Name, uploaded, ch.URL)
	}

	return w.Flush()
}
