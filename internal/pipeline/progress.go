package pipeline

import (
	"fmt"
	"time"
)

// reportProgress emits one status line at the start of each item, built
// from the items completed so far. On a TTY the line overdraws in place
// with a carriage return; otherwise each line stands alone so logs stay
// readable.
func (p *Pipeline) reportProgress(done, total int, started time.Time, denuvo int, nextID string) {
	if p.opts.Progress == nil {
		return
	}

	percent := float64(done) / float64(total) * 100

	remaining := "--:--:--"
	if done > 0 {
		elapsed := p.opts.clock().Sub(started)
		perItem := elapsed / time.Duration(done)
		remaining = formatHHMMSS(perItem * time.Duration(total-done))
	}

	line := fmt.Sprintf("[%5.1f%%] %d/%d  %s remaining  %d denuvo  processing %s",
		percent, done, total, remaining, denuvo, nextID)

	if p.opts.IsTTY {
		fmt.Fprintf(p.opts.Progress, "\r\033[K%s", line)
		return
	}
	fmt.Fprintln(p.opts.Progress, line)
}

// finishProgress terminates the in-place progress line on a TTY.
func (p *Pipeline) finishProgress() {
	if p.opts.Progress == nil || !p.opts.IsTTY {
		return
	}
	fmt.Fprintln(p.opts.Progress)
}

// formatHHMMSS renders a duration as zero-padded HH:MM:SS, the form used
// in the pre-run estimate and the progress line.
func formatHHMMSS(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total%3600/60, total%60)
}
