package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/CrazyPigHead/t-reader/internal/providers/generic"
)

type setter func(c *Config, v string) error

func intField(dst func(*Config) *int) setter {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("expected an integer, got %q", v)
		}
		*dst(c) = n
		return nil
	}
}

func boolField(dst func(*Config) *bool) setter {
	return func(c *Config, v string) error {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("expected true or false, got %q", v)
		}
		*dst(c) = b
		return nil
	}
}

func stringField(dst func(*Config) *string) setter {
	return func(c *Config, v string) error {
		*dst(c) = v
		return nil
	}
}

func ruleField(dst func(*generic.BookRule) *string) setter {
	return func(c *Config, v string) error {
		if c.Rule == nil {
			r := generic.DefaultRule()
			c.Rule = &r
		}
		*dst(c.Rule) = v
		return nil
	}
}

var setters = map[string]setter{
	"chapter_url": func(c *Config, v string) error {
		v = strings.TrimSpace(v)
		if v != c.ChapterURL {
			c.CurrChapterNumber = 1
			c.CurrPageNumber = 1
		}
		c.ChapterURL = v
		return nil
	},
	"curr_chapter_number": intField(func(c *Config) *int { return &c.CurrChapterNumber }),
	"curr_page_number":    intField(func(c *Config) *int { return &c.CurrPageNumber }),
	"page_size":           intField(func(c *Config) *int { return &c.PageSize }),
	"timeout":             intField(func(c *Config) *int { return &c.Timeout }),
	"line_break":          stringField(func(c *Config) *string { return &c.LineBreak }),
	"proxy":               stringField(func(c *Config) *string { return &c.Proxy }),
	"user_agent":          stringField(func(c *Config) *string { return &c.UserAgent }),
	"cookie":              stringField(func(c *Config) *string { return &c.Cookie }),
	"cookie_file":         stringField(func(c *Config) *string { return &c.CookieFile }),
	"wide_script":         boolField(func(c *Config) *bool { return &c.WideScript }),
	"auto_detect_script":  boolField(func(c *Config) *bool { return &c.AutoDetectScript }),
	"cloudflare_bypass":   boolField(func(c *Config) *bool { return &c.Cloudflare }),
	"debug":               boolField(func(c *Config) *bool { return &c.Debug }),
	"history":             boolField(func(c *Config) *bool { return &c.History }),

	"rule.chapter_list":   ruleField(func(r *generic.BookRule) *string { return &r.ChapterList }),
	"rule.chapter_name":   ruleField(func(r *generic.BookRule) *string { return &r.ChapterName }),
	"rule.chapter_result": ruleField(func(r *generic.BookRule) *string { return &r.ChapterResult }),
	"rule.content":        ruleField(func(r *generic.BookRule) *string { return &r.Content }),
}

// Keys lists the settable keys in order.
func Keys() []string {
	out := make([]string, 0, len(setters))
	for k := range setters {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}

// Set assigns value to key. Changing chapter_url resets the cursor to the
// first page of the first chapter.
func Set(c *Config, key, value string) error {
	fn, ok := setters[key]
	if !ok {
		return fmt.Errorf("unknown key %q", key)
	}

	return fn(c, value)
}

// SetInFile applies Set to the profile file at path.
func SetInFile(path, key, value string) error {
	c, err := loadYAML(path)
	if err != nil {
		return err
	}
	if err := Set(c, key, value); err != nil {
		return err
	}

	return SaveYAML(c, path)
}
