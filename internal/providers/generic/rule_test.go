package generic

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func TestParseSelector(t *testing.T) {
	tests := []struct {
		rule string
		want Selector
	}{
		{"", Selector{}},
		{"text", Selector{Attr: "text"}},
		{"html", Selector{Attr: "html"}},
		{"a@href", Selector{Query: "a", Attr: "href"}},
		{"#nr1@html", Selector{Query: "#nr1", Attr: "html"}},
		{"#nr1", Selector{Query: "#nr1", Attr: "text"}},
		{"@href", Selector{Attr: "href"}},
		{" .title @ text ", Selector{Query: ".title", Attr: "text"}},
	}

	for _, tt := range tests {
		t.Run(tt.rule, func(t *testing.T) {
			if got := ParseSelector(tt.rule); got != tt.want {
				t.Errorf("ParseSelector(%q) = %+v, want %+v", tt.rule, got, tt.want)
			}
		})
	}
}

func TestSelectorValue(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<div id="box"> <b>bold</b> <a href="/x">link</a> </div>`))
	if err != nil {
		t.Fatal(err)
	}
	box := doc.Find("#box")

	tests := []struct {
		rule   string
		want   string
		wantOK bool
	}{
		{"text", "bold link", true},
		{"a@href", "/x", true},
		{"b@html", "bold", true},
		{"a@title", "", false},
		{"i", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.rule, func(t *testing.T) {
			got, ok := ParseSelector(tt.rule).Value(box)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Value() = (%q, %t), want (%q, %t)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
