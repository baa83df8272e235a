package main

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"parmend/pkg/parmend/progress"
	"parmend/pkg/parmend/repair"
)

// Color constants using the ANSI 256-color palette.
const (
	colorPrimary = lipgloss.Color("39")
	colorSuccess = lipgloss.Color("42")
	colorWarning = lipgloss.Color("214")
	colorDanger  = lipgloss.Color("196")
	colorMuted   = lipgloss.Color("245")
)

var (
	phaseStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning)
	dangerStyle  = lipgloss.NewStyle().Foreground(colorDanger)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
)

// renderer draws in-place progress lines. The handler runs on whatever
// thread the engine writes from, so it must be locked and must stay cheap.
type renderer struct {
	mu    sync.Mutex
	out   io.Writer
	dirty bool
}

func newRenderer(out io.Writer) *renderer {
	return &renderer{out: out}
}

// handle is the progress sink handed to the invoker.
func (r *renderer) handle(ev progress.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	percent := float64(ev.Current) / 10
	fmt.Fprintf(r.out, "\r%s %5.1f%%", phaseStyle.Render(fmt.Sprintf("%-10s", ev.Phase.String())), percent)
	r.dirty = true
}

// done terminates the in-place line once the engine returns.
func (r *renderer) done() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.dirty {
		fmt.Fprint(r.out, "\n")
		r.dirty = false
	}
}

// formatSummary renders the end-of-run verdict and diagnostic counts.
func formatSummary(sum repair.Summary, repairRequested bool) string {
	var verdict string
	switch {
	case sum.Outcome.Ok(repairRequested):
		verdict = successStyle.Render("✓ " + sum.Outcome.String())
	case sum.Outcome == repair.OutcomeRepairPossible || sum.Outcome == repair.OutcomeRepairNotPossible:
		verdict = warningStyle.Render("⚠ " + sum.Outcome.String())
	default:
		verdict = dangerStyle.Render("✗ " + sum.Outcome.String())
	}

	var parts []string
	if sum.Matched > 0 {
		parts = append(parts, fmt.Sprintf("%d found by content", sum.Matched))
	}
	if sum.Renamed > 0 {
		parts = append(parts, fmt.Sprintf("%d renamed", sum.Renamed))
	}
	if sum.Damaged > 0 {
		parts = append(parts, fmt.Sprintf("%d damaged", sum.Damaged))
	}
	if sum.Missing > 0 {
		parts = append(parts, fmt.Sprintf("%d missing", sum.Missing))
	}

	line := verdict
	if len(parts) > 0 {
		line += " " + mutedStyle.Render("("+strings.Join(parts, ", ")+")")
	}
	return line
}

// formatBudget renders the calibrated resource budget.
func formatBudget(sum repair.Summary) string {
	return mutedStyle.Render(fmt.Sprintf("budget: %s memory, %d threads",
		humanize.IBytes(uint64(sum.Budget.MemoryLimit)), sum.Budget.Threads))
}
