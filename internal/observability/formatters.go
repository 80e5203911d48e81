// Package observability provides logging, metrics and formatted output for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/majel/internal/scoring"
	"github.com/jonathan/majel/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRecommendations outputs the top ranked trios with their scores and leading reasons.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintRecommendations(intent types.IntentKey, results []types.RecommendationResult) {
	if len(results) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "NO CREWS FOUND FOR "+strings.ToUpper(string(intent)))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Intent: %s\n", intent))
	sb.WriteString(fmt.Sprintf("Trios:  %d\n\n", len(results)))

	count := min(len(results), maxItemsToShow)
	for i := 0; i < count; i++ {
		r := results[i]
		sb.WriteString(fmt.Sprintf("#%d  %s / %s / %s\n", i+1, r.CaptainID, r.Bridge1ID, r.Bridge2ID))
		sb.WriteString(fmt.Sprintf("    Score: %.2f  Confidence: %s", r.TotalScore, r.Confidence))
		if r.SynergyMultiplier > 1 {
			sb.WriteString(fmt.Sprintf("  Synergy: x%.2f", r.SynergyMultiplier))
		}
		sb.WriteString("\n")
		for j, reason := range r.Reasons {
			if j >= 2 {
				sb.WriteString(fmt.Sprintf("    ... and %d more reasons\n", len(r.Reasons)-2))
				break
			}
			sb.WriteString(fmt.Sprintf("    • %s\n", reason))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(results) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more trios", len(results)-maxItemsToShow))
	}

	p.printBox("RECOMMENDED CREWS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBreakdown outputs how one officer scored in one seat.
func (p *Printer) PrintBreakdown(b *scoring.Breakdown) {
	if b == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Officer:   %s\n", b.OfficerID))
	sb.WriteString(fmt.Sprintf("Seat:      %s\n", b.Slot))
	sb.WriteString(fmt.Sprintf("Effect:    %.2f\n", b.EffectScore))
	sb.WriteString(fmt.Sprintf("Readiness: %.2f\n", b.Readiness))
	if b.Slot == types.SlotCaptain {
		viable := "no"
		if b.ViableCaptain {
			viable = "yes"
		}
		sb.WriteString(fmt.Sprintf("Captain:   %+.0f (viable: %s)\n", b.CaptainBonus, viable))
	}
	sb.WriteString(fmt.Sprintf("Total:     %.2f\n", b.Total()))
	if b.Locked {
		sb.WriteString("Reserved:  locked\n")
	} else if b.ReservedFor != "" {
		sb.WriteString(fmt.Sprintf("Reserved:  %s\n", b.ReservedFor))
	}

	if len(b.Contributions) > 0 {
		sb.WriteString("\nContributions:\n")
		count := min(len(b.Contributions), maxItemsToShow)
		for i := 0; i < count; i++ {
			c := b.Contributions[i]
			var marks []string
			if !c.Known {
				marks = append(marks, "est")
			}
			if c.Conditional {
				marks = append(marks, "cond")
			}
			if !c.Recognized {
				marks = append(marks, "?")
			}
			line := fmt.Sprintf("  • %s %+.2f", c.EffectKey, c.Value)
			if len(marks) > 0 {
				line += fmt.Sprintf(" [%s]", strings.Join(marks, " "))
			}
			sb.WriteString(line + "\n")
		}
		if len(b.Contributions) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(b.Contributions)-maxItemsToShow))
		}
	}

	p.printBox("SLOT SCORE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintIntents lists the intents a bundle defines and how many effects each weighs.
func (p *Printer) PrintIntents(bundle *types.EffectBundle) {
	keys := bundle.IntentKeys()
	if len(keys) == 0 {
		return
	}

	var sb strings.Builder
	for _, key := range keys {
		def, _ := bundle.Intent(key)
		sb.WriteString(fmt.Sprintf("%-16s %-8s %d weighted effects\n", key, scoring.CategoryFor(def), len(bundle.WeightedKeys(key))))
	}
	p.printBox("INTENTS", strings.TrimSuffix(sb.String(), "\n"))
}
