package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"

	"github.com/ziadkadry99/interview-assistant/internal/api"
)

// UploadProgress returns an api.ProgressFunc that draws a byte progress bar
// on w when it is a terminal, and prints plain start and finish lines when
// it is not or when running under CI.
func UploadProgress(w io.Writer) api.ProgressFunc {
	if !IsTerminal(w) || os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return func(description string, size int64) io.Writer {
			return &lineProgress{w: w, description: description, size: size}
		}
	}
	return func(description string, size int64) io.Writer {
		return &barProgress{bar: progressbar.NewOptions64(size,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription(description),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowBytes(true),
			progressbar.OptionClearOnFinish(),
		)}
	}
}

// barProgress closes the bar when the upload body has been sent.
type barProgress struct {
	bar *progressbar.ProgressBar
}

func (b *barProgress) Write(p []byte) (int, error) { return b.bar.Write(p) }

func (b *barProgress) Close() error { return b.bar.Finish() }

// lineProgress prints one line when the upload starts and one when it ends.
type lineProgress struct {
	w           io.Writer
	description string
	size        int64
	sent        int64
}

func (l *lineProgress) Write(p []byte) (int, error) {
	if l.sent == 0 && len(p) > 0 {
		fmt.Fprintf(l.w, "%s (%d bytes)\n", l.description, l.size)
	}
	l.sent += int64(len(p))
	return len(p), nil
}

func (l *lineProgress) Close() error {
	fmt.Fprintf(l.w, "%s: sent %d/%d bytes\n", l.description, l.sent, l.size)
	return nil
}
