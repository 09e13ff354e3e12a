package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")).Bold(true)
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// printer writes user-facing messages. Logs go through zerolog instead.
type printer struct {
	out   io.Writer
	err   io.Writer
	quiet bool
	color bool
}

func newPrinter(out, errOut io.Writer, quiet, color bool) *printer {
	return &printer{out: out, err: errOut, quiet: quiet, color: color && isTerminal(out)}
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p *printer) style(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

// info prints an informational message
func (p *printer) info(msg string) {
	if p.quiet {
		return
	}
	fmt.Fprintln(p.out, msg)
}

// success prints a success message
func (p *printer) success(msg string) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, "%s %s\n", p.style(successStyle, "✓"), msg)
}

// warning prints a warning message
func (p *printer) warning(msg string) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.err, "%s %s\n", p.style(warningStyle, "⚠"), msg)
}

// failure prints an error message, even in quiet mode.
func (p *printer) failure(msg string) {
	fmt.Fprintf(p.err, "%s %s\n", p.style(errorStyle, "✗"), msg)
}

// header prints a section header
func (p *printer) header(title string) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, "\n%s\n", p.style(headerStyle, "=== "+title+" ==="))
}

// item prints an indented path with an optional muted note.
func (p *printer) item(path, note string) {
	if p.quiet {
		return
	}
	if note == "" {
		fmt.Fprintf(p.out, "  %s\n", p.style(pathStyle, path))
		return
	}
	fmt.Fprintf(p.out, "  %s %s\n", p.style(pathStyle, path), p.style(mutedStyle, "("+note+")"))
}

// formatBytes formats bytes as human-readable string
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
