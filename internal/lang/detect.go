// Package lang decides whether chapter text is written in a wide script,
// meaning one that fits roughly twice as many characters on a line as
// Chinese or Japanese.
package lang

import (
	"sync"
	"unicode"

	"github.com/pemistahl/lingua-go"
)

const sampleSize = 400

var narrow = map[lingua.Language]bool{
	lingua.Chinese:  true,
	lingua.Japanese: true,
	lingua.Korean:   true,
}

type Detector struct {
	once     sync.Once
	detector lingua.LanguageDetector
}

func NewDetector() *Detector {
	return &Detector{}
}

func (d *Detector) build() {
	d.detector = lingua.NewLanguageDetectorBuilder().
		FromLanguages(
			lingua.Chinese, lingua.Japanese, lingua.Korean,
			lingua.English, lingua.French, lingua.German,
			lingua.Spanish, lingua.Portuguese, lingua.Russian,
		).
		Build()
}

// IsWide reports whether text is in a wide script. Text the detector cannot
// classify falls back to a count of Han, Hiragana, Katakana and Hangul runes.
func (d *Detector) IsWide(text string) bool {
	sample := Sample(text, sampleSize)
	if sample == "" {
		return false
	}

	d.once.Do(d.build)

	if language, ok := d.detector.DetectLanguageOf(sample); ok {
		return !narrow[language]
	}

	return !MostlyLogographic(sample)
}

func Sample(text string, n int) string {
	r := []rune(text)
	if len(r) > n {
		r = r[:n]
	}

	return string(r)
}

// MostlyLogographic reports whether at least half of the letters in s are CJK.
func MostlyLogographic(s string) bool {
	var cjk, letters int
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul) {
			cjk++
		}
	}

	return letters > 0 && cjk*2 >= letters
}
