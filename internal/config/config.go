package config

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Output         string `yaml:"output"`
	ImageWorkers   int    `yaml:"image_workers"`
	ChapterWorkers int    `yaml:"chapter_workers"`
	KeepFolders    bool   `yaml:"keep_folders"`
	Debug          bool   `yaml:"debug"`
	ComicInfo      bool   `yaml:"comic_info"`

	BaseURL    string `yaml:"base_url"`
	Cloudflare bool   `yaml:"cloudflare"`
	Cookie     string `yaml:"cookie"`
	CookieFile string `yaml:"cookie_file"`
	UserAgent  string `yaml:"user_agent"`

	SkipBroken bool `yaml:"skip_broken"`
}

// Options carries CLI flag values; zero values mean "not set".
type Options struct {
	IgnoreConfig   bool
	Debug          bool
	Output         string
	ImageWorkers   int
	ChapterWorkers int
	KeepFolders    bool
	BaseURL        string
	Cookie         string
	CookieFile     string
	UserAgent      string
	SkipBroken     bool
	NoComicInfo    bool
}

const (
	defaultImageWorkers   = 5
	defaultChapterWorkers = 2
)

func DefaultConfig() *Config {
	return &Config{
		Output:         ".",
		ImageWorkers:   defaultImageWorkers,
		ChapterWorkers: defaultChapterWorkers,
		ComicInfo:      true,
		Cloudflare:     true,
	}
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return afero.WriteFile(fs, path, data, 0644)
}

func loadYAML(path string) (*Config, error) {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}

	c := DefaultConfig()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}

	return c, nil
}

// LoadMerged loads the active profile (or defaults) and applies CLI options
// on top. The returned string describes where the config came from.
func LoadMerged(opts Options) (*Config, string, error) {
	if opts.IgnoreConfig {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(ignored config)", nil
	}

	activePath, err := ActiveConfigPath()
	if errors.Is(err, ErrNoConfig) || activePath == "" {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(default config in memory)\nRun `scanfr config init` to create an actual config\n", nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := loadYAML(activePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
	}

	mergeConfig(cfg, opts)
	normalizeDefaults(cfg)

	return cfg, activePath, nil
}

func mergeConfig(c *Config, o Options) {
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.ImageWorkers != 0 {
		c.ImageWorkers = o.ImageWorkers
	}
	if o.ChapterWorkers != 0 {
		c.ChapterWorkers = o.ChapterWorkers
	}
	if o.KeepFolders {
		c.KeepFolders = true
	}
	if o.Debug {
		c.Debug = true
	}
	if o.BaseURL != "" {
		c.BaseURL = o.BaseURL
	}
	if o.Cookie != "" {
		c.Cookie = o.Cookie
	}
	if o.CookieFile != "" {
		c.CookieFile = o.CookieFile
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.SkipBroken {
		c.SkipBroken = true
	}
	if o.NoComicInfo {
		c.ComicInfo = false
	}
}

func normalizeDefaults(c *Config) {
	if c.Output == "" {
		c.Output = "."
	}
	if c.ImageWorkers <= 0 {
		c.ImageWorkers = defaultImageWorkers
	}
	if c.ChapterWorkers <= 0 {
		c.ChapterWorkers = defaultChapterWorkers
	}
}

func (c *Config) Print(w io.Writer) {
	p := func(format string, args ...any) { _, _ = fmt.Fprintf(w, format, args...) }

	p(" -output: %s\n", c.Output)
	p(" -image_workers: %d\n", c.ImageWorkers)
	p(" -chapter_workers: %d\n", c.ChapterWorkers)
	p(" -cloudflare: %t\n", c.Cloudflare)
	p(" -comic_info: %t\n", c.ComicInfo)
	if c.BaseURL != "" {
		p(" -base_url: %s\n", c.BaseURL)
	}
	if c.KeepFolders {
		p(" -keep_folders: %t\n", c.KeepFolders)
	}
	if c.Debug {
		p(" -debug: %t\n", c.Debug)
	}
	if c.CookieFile != "" {
		p(" -cookie_file: %s\n", c.CookieFile)
	}
	if c.UserAgent != "" {
		p(" -user_agent: %s\n", c.UserAgent)
	}
	if c.SkipBroken {
		p(" -skip_broken: %t\n", c.SkipBroken)
	}
}
