package generic

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/CrazyPigHead/t-reader/internal/providers"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

type Scraper struct {
	fetcher Fetcher
	rule    BookRule
	log     interface{ Debugf(string, ...any) }
}

func NewScraper(f Fetcher, rule BookRule, log interface{ Debugf(string, ...any) }) *Scraper {
	return &Scraper{
		fetcher: f,
		rule:    rule,
		log:     log,
	}
}

func (s *Scraper) Rule() BookRule {
	return s.rule
}

func (s *Scraper) fetchDOM(ctx context.Context, target string) (*goquery.Document, string, error) {
	body, err := s.fetcher.Fetch(ctx, target)
	if err != nil {
		return nil, "", err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, "", fmt.Errorf("parse %s: %w", target, err)
	}

	return doc, body, nil
}

func resolveURL(baseURL, href string) string {
	if href == "" {
		return ""
	}

	u, err := url.Parse(href)
	if err == nil && u.IsAbs() {
		return u.String()
	}
	if err != nil {
		return href
	}

	b, err := url.Parse(baseURL)
	if err != nil {
		return href
	}

	return b.ResolveReference(u).String()
}

// Chapters returns the table of contents in document order. Entries whose
// link is missing keep an empty URL.
func (s *Scraper) Chapters(ctx context.Context, tocURL string) ([]providers.ChapterInfo, error) {
	if strings.TrimSpace(s.rule.ChapterList) == "" {
		return nil, fmt.Errorf("rule has no chapter_list selector")
	}

	doc, _, err := s.fetchDOM(ctx, tocURL)
	if err != nil {
		return nil, err
	}

	nameSel := ParseSelector(s.rule.ChapterName)
	linkSel := ParseSelector(s.rule.ChapterResult)

	out := []providers.ChapterInfo{}
	doc.Find(s.rule.ChapterList).Each(func(_ int, item *goquery.Selection) {
		name, _ := nameSel.Value(item)
		href, _ := linkSel.Value(item)

		out = append(out, providers.ChapterInfo{
			Name: name,
			URL:  resolveURL(tocURL, strings.TrimSpace(href)),
		})
	})

	if s.log != nil {
		s.log.Debugf("%s: %d chapters\n", tocURL, len(out))
	}

	return out, nil
}

// Content returns the raw chapter text. A selector that matches nothing
// yields an empty string rather than an error.
func (s *Scraper) Content(ctx context.Context, chapterURL string) (string, error) {
	doc, body, err := s.fetchDOM(ctx, chapterURL)
	if err != nil {
		return "", err
	}

	sel := ParseSelector(s.rule.Content)
	if sel.IsZero() {
		return readableText(chapterURL, body)
	}

	text, ok := sel.Value(doc.Selection)
	if !ok && s.log != nil {
		s.log.Debugf("%s: content selector %q matched nothing\n", chapterURL, s.rule.Content)
	}

	return text, nil
}

func readableText(rawURL, body string) (string, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(body), parsedURL)
	if err != nil {
		return "", fmt.Errorf("readability %s: %w", rawURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(doc.Text()), nil
}
