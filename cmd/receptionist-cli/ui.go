package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// UI prints human-oriented output. In JSON mode every method is silent so
// that stdout carries only the JSON documents.
type UI struct {
	out      io.Writer
	errOut   io.Writer
	noColor  bool
	jsonMode bool
}

// NewUI creates a UI writing to stdout and stderr.
func NewUI(jsonMode, noColor bool) *UI {
	return &UI{out: os.Stdout, errOut: os.Stderr, noColor: noColor, jsonMode: jsonMode}
}

func (ui *UI) print(w io.Writer, attr color.Attribute, symbol, format string, args ...interface{}) {
	if ui.jsonMode {
		return
	}
	line := fmt.Sprintf("%s %s\n", symbol, fmt.Sprintf(format, args...))
	if ui.noColor {
		fmt.Fprint(w, line)
		return
	}
	color.New(attr).Fprint(w, line)
}

// Success prints a success message.
func (ui *UI) Success(format string, args ...interface{}) {
	ui.print(ui.out, color.FgGreen, "✓", format, args...)
}

// Error prints an error message to stderr.
func (ui *UI) Error(format string, args ...interface{}) {
	ui.print(ui.errOut, color.FgRed, "✗", format, args...)
}

// Warning prints a warning message.
func (ui *UI) Warning(format string, args ...interface{}) {
	ui.print(ui.out, color.FgYellow, "⚠", format, args...)
}

// Info prints an info message.
func (ui *UI) Info(format string, args ...interface{}) {
	ui.print(ui.out, color.FgCyan, "ℹ", format, args...)
}

// Bot prints a reply from the receptionist, one prefixed line per line of text.
func (ui *UI) Bot(text string) {
	if ui.jsonMode {
		return
	}
	for _, line := range strings.Split(text, "\n") {
		if ui.noColor {
			fmt.Fprintf(ui.out, "monika> %s\n", line)
			continue
		}
		color.New(color.FgMagenta, color.Bold).Fprint(ui.out, "monika> ")
		fmt.Fprintln(ui.out, line)
	}
}

// Prompt prints the input prompt without a trailing newline.
func (ui *UI) Prompt() {
	if ui.jsonMode {
		return
	}
	if ui.noColor {
		fmt.Fprint(ui.out, "you> ")
		return
	}
	color.New(color.FgBlue, color.Bold).Fprint(ui.out, "you> ")
}

// KeyValue prints an aligned key/value pair.
func (ui *UI) KeyValue(key, value string) {
	if ui.jsonMode {
		return
	}
	if ui.noColor {
		fmt.Fprintf(ui.out, "  %-14s %s\n", key+":", value)
		return
	}
	fmt.Fprintf(ui.out, "  %s %s\n", color.New(color.FgHiBlack).Sprintf("%-14s", key+":"), value)
}

// Table prints rows under headers with box drawing borders, or ASCII
// borders when color is off.
func (ui *UI) Table(headers []string, rows [][]string) {
	if ui.jsonMode || len(headers) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len([]rune(h))
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len([]rune(cell)) > widths[i] {
				widths[i] = len([]rune(cell))
			}
		}
	}

	b := boxRunes
	if ui.noColor {
		b = asciiRunes
	}
	border := func(left, mid, right string) string {
		parts := make([]string, len(widths))
		for i, w := range widths {
			parts[i] = strings.Repeat(b.horizontal, w+2)
		}
		return left + strings.Join(parts, mid) + right + "\n"
	}
	line := func(cells []string) string {
		parts := make([]string, len(widths))
		for i, w := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = " " + cell + strings.Repeat(" ", w-len([]rune(cell))) + " "
		}
		return b.vertical + strings.Join(parts, b.vertical) + b.vertical + "\n"
	}

	frame := func(s string) {
		if ui.noColor {
			fmt.Fprint(ui.out, s)
			return
		}
		color.New(color.FgCyan, color.Bold).Fprint(ui.out, s)
	}

	frame(border(b.topLeft, b.topMid, b.topRight))
	frame(line(headers))
	frame(border(b.midLeft, b.cross, b.midRight))
	for _, row := range rows {
		fmt.Fprint(ui.out, line(row))
	}
	frame(border(b.bottomLeft, b.bottomMid, b.bottomRight))
}

type tableRunes struct {
	horizontal, vertical               string
	topLeft, topMid, topRight          string
	midLeft, cross, midRight           string
	bottomLeft, bottomMid, bottomRight string
}

var (
	boxRunes   = tableRunes{"─", "│", "┌", "┬", "┐", "├", "┼", "┤", "└", "┴", "┘"}
	asciiRunes = tableRunes{"-", "|", "+", "+", "+", "+", "+", "+", "+", "+", "+"}
)

// ProgressBar wraps a progressbar for counted work.
type ProgressBar struct {
	bar *progressbar.ProgressBar
}

// NewProgressBar creates a bar on stderr. It renders nothing in JSON mode.
func (ui *UI) NewProgressBar(total int, description string) *ProgressBar {
	w := ui.errOut
	if ui.jsonMode {
		w = io.Discard
	}
	bar := progressbar.NewOptions(
		total,
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("turns"),
		progressbar.OptionShowIts(),
		progressbar.OptionEnableColorCodes(!ui.noColor),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w)
		}),
	)
	return &ProgressBar{bar: bar}
}

// Add advances the bar by n.
func (p *ProgressBar) Add(n int) {
	_ = p.bar.Add(n)
}

// Finish completes the bar.
func (p *ProgressBar) Finish() {
	_ = p.bar.Finish()
}

// Spinner shows indeterminate progress while the bot is "typing".
type Spinner struct {
	spinner *spinner.Spinner
	enabled bool
}

// NewSpinner creates a spinner on stderr. It is inert in JSON mode or when
// output is not a terminal.
func (ui *UI) NewSpinner(message string) *Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message
	s.Writer = ui.errOut
	if !ui.noColor {
		_ = s.Color("magenta")
	}
	return &Spinner{spinner: s, enabled: !ui.jsonMode && IsTerminal()}
}

// Wait spins for d and then clears the line.
func (s *Spinner) Wait(d time.Duration) {
	if !s.enabled || d <= 0 {
		time.Sleep(d)
		return
	}
	s.spinner.Start()
	time.Sleep(d)
	s.spinner.Stop()
}

// IsTerminal reports whether stdout is an interactive terminal.
func IsTerminal() bool {
	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
