package ui

import (
	"io"
	"os"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// ShowReadingProgress renders a single completed bar of chapter current out
// of total and waits for it to flush.
func ShowReadingProgress(out io.Writer, title string, current, total int) {
	if out == nil {
		out = os.Stdout
	}

	p := mpb.New(
		mpb.WithWidth(52),
		mpb.WithOutput(out),
		mpb.WithRefreshRate(120*time.Millisecond),
	)

	bar := p.New(
		int64(total),
		mpb.BarStyle().Rbound("]"),

		mpb.PrependDecorators(
			decor.Name(title+"  "),
		),

		mpb.AppendDecorators(
			decor.Percentage(decor.WCSyncWidth),
			decor.CountersNoUnit(" | %d/%d chapters", decor.WCSyncWidth),
		),
	)

	bar.SetCurrent(int64(min(max(current, 0), total)))
	bar.SetTotal(int64(total), true)
	p.Wait()
}
