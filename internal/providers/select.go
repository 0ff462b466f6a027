package providers

import (
	"strconv"
	"strings"
)

// Numbered pairs a chapter with its 1-based position in the full list.
type Numbered struct {
	Number int
	ChapterInfo
}

func Number(all []ChapterInfo) []Numbered {
	out := make([]Numbered, len(all))
	for i, c := range all {
		out[i] = Numbered{Number: i + 1, ChapterInfo: c}
	}

	return out
}

func Filter(all []Numbered, rng, list string) []Numbered {
	if rng != "" {
		return FilterRange(all, rng)
	}
	if list != "" {
		return FilterList(all, list)
	}

	return all
}

func FilterRange(all []Numbered, rng string) []Numbered {
	parts := strings.Split(rng, "-")
	if len(parts) != 2 {
		return nil
	}

	start, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	end, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))

	if err1 != nil || err2 != nil {
		return nil
	}
	if start <= 0 || end <= 0 || start > end || end > len(all) {
		return nil
	}

	return all[start-1 : end]
}

func FilterList(all []Numbered, list string) []Numbered {
	var out []Numbered
	parts := strings.SplitSeq(list, ",")

	for p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		idx, err := strconv.Atoi(p)
		if err != nil || idx <= 0 || idx > len(all) {
			continue
		}

		out = append(out, all[idx-1])
	}

	return out
}
