package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/brogergvhs/scanfr/internal/config"
	"github.com/brogergvhs/scanfr/internal/providers/scanfr"
	"github.com/brogergvhs/scanfr/internal/ui"
	"github.com/brogergvhs/scanfr/internal/util"
)

// session bundles what every network command needs.
type session struct {
	cfg      *config.Config
	usedPath string
	log      *ui.Logger
	http     *http.Client
	client   *scanfr.Client
}

func baseOptions() config.Options {
	return config.Options{
		IgnoreConfig: flagIgnoreConfig,
		Debug:        flagDebug,
		BaseURL:      flagBaseURL,
		Cookie:       flagCookie,
		CookieFile:   flagCookieFile,
		UserAgent:    flagUserAgent,
	}
}

func newSession(opts config.Options) (*session, error) {
	cfg, used, err := config.LoadMerged(opts)
	if err != nil {
		return nil, err
	}

	log := ui.NewLogger(cfg.Debug)
	log.Debugf("config: %s\n", used)

	src := scanfr.New(cfg.BaseURL)

	hc, err := util.NewHTTPClient(util.HTTPClientOptions{
		Timeout:     30 * time.Second,
		UserAgent:   util.PickUserAgent(cfg.UserAgent),
		Referer:     src.LatestRequest() + "/",
		Cookie:      cfg.Cookie,
		CookieFile:  cfg.CookieFile,
		Cloudflare:  cfg.Cloudflare,
		DebugLogger: log,
	})
	if err != nil {
		return nil, fmt.Errorf("http client: %w", err)
	}

	return &session{
		cfg:      cfg,
		usedPath: used,
		log:      log,
		http:     hc,
		client:   scanfr.NewClient(src, hc, log),
	}, nil
}
