// Package output renders non-interactive command output with lipgloss.
//
// A [Printer] writes step banners, outcome lines and the users table to an
// io.Writer. Commands receive the printer through the CLI App so tests can
// capture output with [NewPrinterWithWriter].
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"

	"ctpostman/internal/api"
	"ctpostman/internal/method"
	"ctpostman/internal/router"
	"ctpostman/internal/step"
)

var (
	primaryColor = lipgloss.Color("#A78BFA")
	successColor = lipgloss.Color("#10B981")
	errorColor   = lipgloss.Color("#F87171")
	mutedColor   = lipgloss.Color("#9CA3AF")
)

// Printer writes styled output.
type Printer struct {
	out      io.Writer
	renderer *lipgloss.Renderer

	header  lipgloss.Style
	banner  lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	muted   lipgloss.Style
}

// NewPrinter creates a [Printer] on stdout.
func NewPrinter() *Printer {
	return NewPrinterWithWriter(os.Stdout)
}

// NewPrinterWithWriter creates a [Printer] on w.
//
// Color is detected from w; a bytes.Buffer therefore gets plain text.
func NewPrinterWithWriter(w io.Writer) *Printer {
	p := &Printer{out: w, renderer: lipgloss.NewRenderer(w)}
	p.restyle()
	return p
}

// SetColor forces color on or off regardless of what the writer supports.
func (p *Printer) SetColor(enabled bool) {
	if enabled {
		p.renderer.SetColorProfile(termenv.TrueColor)
	} else {
		p.renderer.SetColorProfile(termenv.Ascii)
	}
	p.restyle()
}

func (p *Printer) restyle() {
	r := p.renderer
	p.header = r.NewStyle().Bold(true).Foreground(primaryColor).
		Border(lipgloss.DoubleBorder()).BorderForeground(primaryColor).Padding(0, 2)
	p.banner = r.NewStyle().Bold(true).
		Border(lipgloss.RoundedBorder()).BorderForeground(mutedColor).Padding(0, 1)
	p.success = r.NewStyle().Foreground(successColor)
	p.failure = r.NewStyle().Foreground(errorColor).Bold(true)
	p.muted = r.NewStyle().Foreground(mutedColor)
}

// WizardHeader prints the banner shown before a non-interactive run.
func (p *Printer) WizardHeader(rules []router.Rule) {
	parts := make([]string, 0, len(rules))
	for _, r := range rules {
		parts = append(parts, fmt.Sprintf("%s %s", r.Step.Title(), r.Method))
	}
	body := "Verification Wizard\nSteps: " + strings.Join(parts, " → ")
	fmt.Fprintln(p.out, p.header.Render(body))
}

// StepStart prints the banner of step s at position index of total.
func (p *Printer) StepStart(index, total int, s step.Step, m method.Method) {
	fmt.Fprintln(p.out, p.banner.Render(fmt.Sprintf("[%d/%d] %s  %s", index, total, s.Title(), m)))
}

// StepSuccess prints the outcome of a completed step.
func (p *Printer) StepSuccess(s step.Step, message string) {
	line := "✓ " + s.Title()
	if message != "" {
		line += ": " + message
	}
	fmt.Fprintln(p.out, p.success.Render(line))
}

// StepFailure prints a step-scoped error message.
func (p *Printer) StepFailure(s step.Step, message string) {
	fmt.Fprintln(p.out, p.failure.Render(fmt.Sprintf("✗ %s: %s", s.Title(), message)))
}

// Echo prints a value carried forward from a step result.
func (p *Printer) Echo(label, value string) {
	fmt.Fprintln(p.out, p.muted.Render(fmt.Sprintf("  %s: %s", label, value)))
}

// WizardComplete prints the closing banner.
func (p *Printer) WizardComplete() {
	fmt.Fprintln(p.out, p.header.Render("✓ WIZARD COMPLETE"))
}

// Users prints the users listing as a table, preceded by its message.
func (p *Printer) Users(listing api.Listing) {
	if listing.Message != "" {
		fmt.Fprintln(p.out, p.success.Render(listing.Message))
	}
	if len(listing.Users) == 0 {
		fmt.Fprintln(p.out, p.muted.Render("No users."))
		return
	}

	rows := make([][]string, 0, len(listing.Users))
	for _, u := range listing.Users {
		rows = append(rows, []string{u.ID, u.Username, u.Code, u.Number5})
	}

	headerStyle := p.renderer.NewStyle().Bold(true).Foreground(primaryColor).Padding(0, 1)
	cellStyle := p.renderer.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.renderer.NewStyle().Foreground(mutedColor)).
		Headers("ID", "USERNAME", "CODE", "NUMBER5").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	fmt.Fprintln(p.out, t.Render())
}

// Routes prints the routing table.
func (p *Printer) Routes(rules []router.Rule) {
	rows := make([][]string, 0, len(rules))
	for i, r := range rules {
		required := make([]string, 0, len(r.Required))
		for _, f := range r.Required {
			required = append(required, string(f))
		}
		echo := "-"
		if r.HasEcho() {
			echo = string(r.Echo)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			r.Step.Title(),
			string(r.Method),
			strings.Join(required, ", "),
			echo,
			r.Next.Title(),
		})
	}

	cellStyle := p.renderer.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "STEP", "METHOD", "REQUIRED", "ECHO", "NEXT").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			return cellStyle
		})
	fmt.Fprintln(p.out, t.Render())
}

// Success prints a one-line success message.
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.out, p.success.Render(fmt.Sprintf(format, args...)))
}

// Error prints a one-line error message.
func (p *Printer) Error(format string, args ...any) {
	fmt.Fprintln(p.out, p.failure.Render(fmt.Sprintf(format, args...)))
}

// Info prints a muted line.
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintln(p.out, p.muted.Render(fmt.Sprintf(format, args...)))
}

// Raw writes text without styling.
func (p *Printer) Raw(text string) {
	fmt.Fprint(p.out, text)
}
