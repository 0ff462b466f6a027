package generic

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// BookRule names the selectors used to pull a table of contents and chapter
// text out of a site's markup. An empty selector disables that feature.
type BookRule struct {
	ChapterList   string `yaml:"chapter_list"`
	ChapterName   string `yaml:"chapter_name"`
	ChapterResult string `yaml:"chapter_result"`
	Content       string `yaml:"content"`
}

func DefaultRule() BookRule {
	return BookRule{
		ChapterList:   ".book-list > ul > li",
		ChapterName:   "text",
		ChapterResult: "a@href",
		Content:       "#nr1@text",
	}
}

const (
	attrText = "text"
	attrHTML = "html"
)

// Selector is a parsed rule of the form "query@attr". The query may be
// omitted ("text", "@href") to read the matched node itself, and the attr
// defaults to text.
type Selector struct {
	Query string
	Attr  string
}

func ParseSelector(rule string) Selector {
	rule = strings.TrimSpace(rule)
	if rule == "" {
		return Selector{}
	}

	if i := strings.LastIndex(rule, "@"); i >= 0 {
		attr := strings.TrimSpace(rule[i+1:])
		if attr == "" {
			attr = attrText
		}
		return Selector{Query: strings.TrimSpace(rule[:i]), Attr: attr}
	}

	if rule == attrText || rule == attrHTML {
		return Selector{Attr: rule}
	}

	return Selector{Query: rule, Attr: attrText}
}

func (s Selector) IsZero() bool {
	return s.Query == "" && s.Attr == ""
}

// Value extracts the selector's value relative to sel. The second result is
// false when nothing matched or the attribute is absent.
func (s Selector) Value(sel *goquery.Selection) (string, bool) {
	if s.IsZero() {
		return "", false
	}

	target := sel
	if s.Query != "" {
		target = sel.Find(s.Query).First()
	}
	if target.Length() == 0 {
		return "", false
	}

	switch s.Attr {
	case attrText:
		return strings.TrimSpace(target.Text()), true
	case attrHTML:
		h, err := target.Html()
		if err != nil {
			return "", false
		}
		return strings.TrimSpace(h), true
	default:
		return target.Attr(s.Attr)
	}
}
