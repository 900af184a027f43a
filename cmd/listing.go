package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/brogergvhs/scanfr/internal/providers"

	"github.com/spf13/cobra"
)

var flagPage int

var popularCmd = &cobra.Command{
	Use:   "popular",
	Short: "List the most viewed manga",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(baseOptions())
		if err != nil {
			return err
		}

		res, err := s.client.Popular(cmd.Context(), flagPage)
		if err != nil {
			return err
		}

		return printMangas(cmd.OutOrStdout(), res)
	},
}

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "List the latest updated manga",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(baseOptions())
		if err != nil {
			return err
		}

		res, err := s.client.Latest(cmd.Context())
		if err != nil {
			return err
		}

		return printMangas(cmd.OutOrStdout(), res)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search manga by title",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(baseOptions())
		if err != nil {
			return err
		}

		res, err := s.client.Search(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		return printMangas(cmd.OutOrStdout(), res)
	},
}

func init() {
	popularCmd.Flags().IntVar(&flagPage, "page", 1, "listing page number")

	rootCmd.AddCommand(popularCmd, latestCmd, searchCmd)
}

func printMangas(out io.Writer, res providers.MangasPage) error {
	if len(res.Mangas) == 0 {
		_, err := fmt.Fprintln(out, "No manga found.")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 4, ' ', 0)
	_, _ = fmt.Fprintln(w, "#\tTITLE\tURL\tTHUMBNAIL")
	for i, m := range res.Mangas {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, m.Title, m.URL, m.ThumbnailURL)
	}

	return w.Flush()
}
