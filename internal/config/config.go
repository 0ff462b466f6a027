package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/CrazyPigHead/t-reader/internal/providers/generic"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ChapterURL        string `yaml:"chapter_url"`
	CurrChapterNumber int    `yaml:"curr_chapter_number"`
	CurrPageNumber    int    `yaml:"curr_page_number"`
	PageSize          int    `yaml:"page_size"`
	LineBreak         string `yaml:"line_break"`
	WideScript        bool   `yaml:"wide_script"`
	AutoDetectScript  bool   `yaml:"auto_detect_script"`

	Proxy      string `yaml:"proxy"`
	UserAgent  string `yaml:"user_agent"`
	Cookie     string `yaml:"cookie"`
	CookieFile string `yaml:"cookie_file"`
	Cloudflare bool   `yaml:"cloudflare_bypass"`
	Timeout    int    `yaml:"timeout"`

	Debug   bool `yaml:"debug"`
	History bool `yaml:"history"`

	Rule *generic.BookRule `yaml:"rule,omitempty"`
}

type Options struct {
	Profile   string
	Debug     bool
	Proxy     string
	UserAgent string
}

func DefaultConfig() *Config {
	rule := generic.DefaultRule()

	return &Config{
		ChapterURL:        "",
		CurrChapterNumber: 1,
		CurrPageNumber:    1,
		PageSize:          50,
		LineBreak:         " ",
		WideScript:        false,
		AutoDetectScript:  false,
		Proxy:             "",
		UserAgent:         "",
		Cookie:            "",
		CookieFile:        "",
		Cloudflare:        false,
		Timeout:           30,
		Debug:             false,
		History:           true,
		Rule:              &rule,
	}
}

// BookRule returns the configured rule, or the default one when the
// profile has no rule section.
func (c *Config) BookRule() generic.BookRule {
	if c.Rule == nil {
		return generic.DefaultRule()
	}

	return *c.Rule
}

func HistoryPath() string {
	return filepath.Join(ConfigRoot(), "history.db")
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func loadYAML(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Keys missing from the file keep their defaults. A rule section is
	// taken as written.
	c := DefaultConfig()
	c.Rule = nil
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}

	return c, nil
}

// LoadMerged loads the selected profile (the active one unless
// opts.Profile is set) and applies CLI overrides. Without any profile an
// in-memory default is returned with an empty path.
func LoadMerged(opts Options) (*Config, string, error) {
	path, err := profilePath(opts.Profile)
	if err == ErrNoConfig || (err == nil && path == "") {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "", nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := loadYAML(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", path, err)
	}

	mergeConfig(cfg, opts)
	normalizeDefaults(cfg)

	return cfg, path, nil
}

func profilePath(label string) (string, error) {
	if label == "" {
		return ActiveConfigPath()
	}

	return ConfigPathByLabel(label)
}

func mergeConfig(c *Config, o Options) {
	if o.Debug {
		c.Debug = true
	}
	if o.Proxy != "" {
		c.Proxy = o.Proxy
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
}

func normalizeDefaults(c *Config) {
	if c.CurrChapterNumber == 0 {
		c.CurrChapterNumber = 1
	}
	if c.Timeout < 0 {
		c.Timeout = 0
	}
}

func (c *Config) Print() {
	if c.ChapterURL != "" {
		fmt.Printf(" -chapter_url: %s\n", c.ChapterURL)
	}
	fmt.Printf(" -curr_chapter_number: %d\n", c.CurrChapterNumber)
	fmt.Printf(" -curr_page_number: %d\n", c.CurrPageNumber)
	fmt.Printf(" -page_size: %d\n", c.PageSize)
	fmt.Printf(" -line_break: %q\n", c.LineBreak)
	if c.WideScript {
		fmt.Printf(" -wide_script: %t\n", c.WideScript)
	}
	if c.AutoDetectScript {
		fmt.Printf(" -auto_detect_script: %t\n", c.AutoDetectScript)
	}
	if c.Proxy != "" {
		fmt.Printf(" -proxy: %s\n", c.Proxy)
	}
	if c.UserAgent != "" {
		fmt.Printf(" -user_agent: %s\n", c.UserAgent)
	}
	if c.CookieFile != "" {
		fmt.Printf(" -cookie_file: %s\n", c.CookieFile)
	}
	if c.Cloudflare {
		fmt.Printf(" -cloudflare_bypass: %t\n", c.Cloudflare)
	}
	fmt.Printf(" -timeout: %ds\n", c.Timeout)
	if c.Debug {
		fmt.Printf(" -debug: %t\n", c.Debug)
	}
	fmt.Printf(" -history: %t\n", c.History)

	r := c.BookRule()
	fmt.Printf(" -rule.chapter_list: %q\n", r.ChapterList)
	fmt.Printf(" -rule.chapter_name: %q\n", r.ChapterName)
	fmt.Printf(" -rule.chapter_result: %q\n", r.ChapterResult)
	fmt.Printf(" -rule.content: %q\n", r.Content)
}
