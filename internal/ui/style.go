// Package ui prints command output to the terminal: styled status lines,
// prompts, upload progress and navigation hints.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	assistantStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)
)

// Printer writes styled lines. Styling is dropped when the destination is
// not a terminal.
type Printer struct {
	Out io.Writer
	Err io.Writer
}

// Success prints a success status.
func (p *Printer) Success(msg string) {
	p.line(p.Out, successStyle, "✓", "", msg)
}

// Error prints an error status.
func (p *Printer) Error(msg string) {
	p.line(p.Err, errorStyle, "✗", "", msg)
}

// Warning prints a warning.
func (p *Printer) Warning(msg string) {
	p.line(p.Err, warningStyle, "⚠", "WARNING: ", msg)
}

// Info prints an informational status.
func (p *Printer) Info(msg string) {
	p.line(p.Out, infoStyle, "ℹ", "", msg)
}

// Title prints a heading.
func (p *Printer) Title(msg string) {
	if IsTerminal(p.Out) {
		fmt.Fprintln(p.Out, titleStyle.Render(msg))
		return
	}
	fmt.Fprintln(p.Out, msg)
}

// View prints a rendered page body as-is.
func (p *Printer) View(body string) {
	if body != "" {
		fmt.Fprint(p.Out, body)
	}
}

// Speaker prints a chat message header.
func (p *Printer) Speaker(header string, user bool) {
	if !IsTerminal(p.Out) {
		fmt.Fprintln(p.Out, header)
		return
	}
	style := assistantStyle
	if user {
		style = userStyle
	}
	fmt.Fprintln(p.Out, style.Render(header))
}

func (p *Printer) line(w io.Writer, style lipgloss.Style, icon, plainPrefix, msg string) {
	if IsTerminal(w) {
		fmt.Fprintf(w, "%s %s\n", style.Render(icon), msg)
		return
	}
	fmt.Fprintf(w, "%s%s\n", plainPrefix, msg)
}

// IsTerminal reports whether w is a character device.
func IsTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
	return false
}
