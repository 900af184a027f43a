package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/brogergvhs/scanfr/internal/chapters"
	"github.com/brogergvhs/scanfr/internal/downloader"
	"github.com/brogergvhs/scanfr/internal/providers"
	"github.com/brogergvhs/scanfr/internal/ui"
	"github.com/brogergvhs/scanfr/internal/util"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var (
	// selection
	flagQuery   string
	flagChapter string
	flagRange   string
	flagList    string

	// runtime
	flagOutput         string
	flagImageWorkers   int
	flagChapterWorkers int
	flagKeepFolders    bool
	flagDryRun         bool
	flagSkipBroken     bool
	flagNoComicInfo    bool
)

func init() {
	downloadCmd := &cobra.Command{
		Use:   "download [<manga-url>]",
		Short: "Download manga chapters and produce CBZ files. Uses the defaults from the selected config, overwritten by CLI flags",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDownload,
	}

	// selection
	downloadCmd.Flags().StringVar(&flagQuery, "query", "", "search by title and pick the manga interactively")
	downloadCmd.Flags().StringVar(&flagChapter, "chapter", "", "download single chapter by index or label (e.g. 5 or 28.5)")
	downloadCmd.Flags().StringVar(&flagRange, "range", "", "download range of chapters by index (e.g. 5-12)")
	downloadCmd.Flags().StringVar(&flagList, "list", "", "download specific chapter indices (e.g. 1,3,5)")

	// runtime
	downloadCmd.Flags().StringVar(&flagOutput, "output", "", "output folder for CBZ files")
	downloadCmd.Flags().IntVar(&flagImageWorkers, "image-workers", 0, "parallel image downloads per chapter")
	downloadCmd.Flags().IntVar(&flagChapterWorkers, "chapter-workers", 0, "parallel chapter downloads")
	downloadCmd.Flags().BoolVar(&flagKeepFolders, "keep-folders", false, "keep temporary folders")
	downloadCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "show what would be downloaded, don't download")
	downloadCmd.Flags().BoolVar(&flagSkipBroken, "skip-broken", false, "skip failed images instead of failing the whole chapter")
	downloadCmd.Flags().BoolVar(&flagNoComicInfo, "no-comicinfo", false, "don't embed ComicInfo.xml in CBZ files")

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && flagQuery == "" {
		return errors.New("missing <manga-url> or --query")
	}

	opts := baseOptions()
	opts.Output = flagOutput
	opts.ImageWorkers = flagImageWorkers
	opts.ChapterWorkers = flagChapterWorkers
	opts.KeepFolders = flagKeepFolders
	opts.SkipBroken = flagSkipBroken
	opts.NoComicInfo = flagNoComicInfo

	s, err := newSession(opts)
	if err != nil {
		return err
	}
	cfg := s.cfg
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Config: %s\n", s.usedPath)
	if cfg.Debug {
		cfg.Print(out)
	}

	ctx, cancel := util.SetupInterruptHandler(cmd.Context(), cfg.Output)
	defer cancel()

	mangaURL, title, err := resolveManga(ctx, s, args)
	if err != nil {
		return err
	}

	raw, err := s.client.Chapters(ctx, mangaURL)
	if err != nil {
		return err
	}
	all := chapters.FromSource(raw)

	if flagChapter == "" && flagRange == "" && flagList == "" {
		fmt.Fprintf(out, "Found %d chapters on the site.\n\n", len(all))
	}

	selected := chapters.Filter(all, flagChapter, flagRange, flagList)
	if len(selected) == 0 {
		if flagChapter != "" {
			return fmt.Errorf("chapter '%s' not found", flagChapter)
		}
		return errors.New("no chapters selected")
	}

	if flagDryRun {
		fmt.Fprintf(out, "Dry-run: %d chapters selected.\n\n", len(selected))
		for i, ch := range selected {
			fmt.Fprintf(out, "%3d) %s  [%s]\n    %s\n", i+1, ch.Name, ch.Label, ch.URL)
		}
		return nil
	}

	if err := os.MkdirAll(cfg.Output, 0755); err != nil {
		return fmt.Errorf("cannot create output folder: %w", err)
	}

	var detail *providers.MangaDetail
	if cfg.ComicInfo {
		d, err := s.client.Details(ctx, mangaURL)
		if err != nil {
			s.log.Errorf("Details for %s failed, CBZ files will carry no metadata: %v\n", mangaURL, err)
		} else {
			detail = &d
		}
	}

	job := &chapterJob{
		session: s,
		dl:      downloader.New(s.http, cfg.SkipBroken),
		pm:      ui.NewProgressManager(out),
		stats:   &ui.Stats{},
		title:   title,
		detail:  detail,
	}

	start := time.Now()
	sem := make(chan struct{}, max(1, cfg.ChapterWorkers))
	var wg sync.WaitGroup

	for _, ch := range selected {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			if err := job.run(ctx, ch); err != nil {
				job.stats.Failed.Add(1)
				s.log.Errorf("Chapter %s failed: %v\n", chapterTag(ch), err)
			}
		}()
	}
	wg.Wait()
	job.pm.Close()

	fmt.Fprintln(out)
	job.stats.Print(out, time.Since(start))

	if err := ctx.Err(); err != nil {
		return err
	}
	if n := job.stats.Failed.Load(); n > 0 {
		return fmt.Errorf("%d of %d chapters failed", n, len(selected))
	}

	fmt.Fprintln(out, "\nAll done.")
	return nil
}

// resolveManga returns the site-relative manga URL and, when known, its title.
func resolveManga(ctx context.Context, s *session, args []string) (string, string, error) {
	if len(args) == 1 {
		return args[0], "", nil
	}

	res, err := s.client.Search(ctx, flagQuery)
	if err != nil {
		return "", "", err
	}
	if len(res.Mangas) == 0 {
		return "", "", fmt.Errorf("no manga matches %q", flagQuery)
	}
	if len(res.Mangas) == 1 {
		return res.Mangas[0].URL, res.Mangas[0].Title, nil
	}

	items := make([]string, len(res.Mangas))
	for i, m := range res.Mangas {
		items[i] = m.Title
	}

	prompt := promptui.Select{
		Label: "Select manga",
		Items: items,
		Size:  10,
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return "", "", fmt.Errorf("selection cancelled")
	}

	return res.Mangas[idx].URL, res.Mangas[idx].Title, nil
}

type chapterJob struct {
	*session
	dl     *downloader.Downloader
	pm     *ui.MPBProgressManager
	stats  *ui.Stats
	title  string
	detail *providers.MangaDetail
}

func (j *chapterJob) run(ctx context.Context, ch chapters.Chapter) error {
	pages, err := j.client.Pages(ctx, ch.URL)
	if err != nil {
		return err
	}
	if len(pages) == 0 {
		return errors.New("no pages found")
	}

	handle := j.pm.Register(chapterTag(ch))

	tmpFolder := filepath.Join(j.cfg.Output, ch.FolderName())
	cbzOut := ch.OutputCBZPath(j.cfg.Output)
	referer := j.client.Source().AbsoluteURL(ch.URL)

	files, n, err := j.dl.DownloadPages(ctx, pages, tmpFolder, referer, max(1, j.cfg.ImageWorkers), handle)
	if err != nil {
		handle.Abort()
		_ = os.RemoveAll(tmpFolder)
		return err
	}

	if err := util.CreateCBZ(files, cbzOut, j.comicInfo(ch, len(files))); err != nil {
		handle.Abort()
		_ = os.RemoveAll(tmpFolder)
		return fmt.Errorf("cbz: %w", err)
	}

	if !j.cfg.KeepFolders {
		util.CleanupFolder(tmpFolder)
	}

	handle.MarkDone()
	j.stats.TotalChapters.Add(1)
	j.stats.TotalImages.Add(int64(len(files)))
	j.stats.TotalBytes.Add(n)

	return nil
}

func (j *chapterJob) comicInfo(ch chapters.Chapter, pageCount int) *util.ComicInfo {
	if !j.cfg.ComicInfo {
		return nil
	}

	info := &util.ComicInfo{
		Title:       ch.Name,
		Series:      j.title,
		Number:      ch.Label,
		Web:         j.client.Source().AbsoluteURL(ch.URL),
		PageCount:   pageCount,
		LanguageISO: j.client.Source().Lang(),
	}
	if ch.UploadedAt != 0 {
		t := ch.Uploaded()
		info.Year, info.Month, info.Day = t.Year(), int(t.Month()), t.Day()
	}
	if j.detail != nil {
		info.Summary = j.detail.Description
		info.Writer = j.detail.Author
		info.Genre = j.detail.GenreString()
	}

	return info
}

func chapterTag(ch chapters.Chapter) string {
	if ch.Label != "" {
		return "Ch." + ch.Label
	}
	return fmt.Sprintf("#%d", ch.Index)
}
