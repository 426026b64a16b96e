// ABOUTME: Rendering for the progress view
// ABOUTME: Lays out the live generation statistics and final result screen

package tui

import (
	"fmt"
	"strings"
	"time"
)

// View renders either the live statistics (while the GA runs) or the final
// result (once it has terminated).
func (m model) View() string {
	if m.done {
		return m.renderResult()
	}
	return m.renderProgress()
}

func (m model) renderProgress() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\n", titleStyle.Render(fmt.Sprintf("eax-ga: %s  (population %d, timeout %s)",
		m.opts.InstanceName, m.opts.PopulationSize, m.opts.Timeout)))

	if !m.haveAny {
		b.WriteString("starting...\n")
		return b.String()
	}

	fmt.Fprintf(&b, "%s %d    %s %d\n", labelStyle.Render("generation"), m.latest.Generation, labelStyle.Render("stage"), m.latest.Stage)
	fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("best length"), m.latest.BestLength)
	fmt.Fprintf(&b, "%s %.2f\n", labelStyle.Render("mean length"), m.latest.MeanLength)
	fmt.Fprintf(&b, "%s %d generations\n", labelStyle.Render("stagnant for"), m.latest.Stagnation)
	fmt.Fprintf(&b, "%s %s\n\n", labelStyle.Render("elapsed"), m.latest.Elapsed.Round(time.Second))

	b.WriteString(renderHistory(m.history))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("q: quit"))

	return b.String()
}

func (m model) renderResult() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("error: %v\n", m.err)) + "\n" + helpStyle.Render("q: quit")
	}

	return fmt.Sprintf("%s\n\nbest length %d after %d generations\n\n%s",
		titleStyle.Render(m.result.Reason), m.result.BestLength, m.result.Generation, helpStyle.Render("q: quit"))
}

// renderHistory lays out the trailing best-length samples as a plain
// numeric line rather than a sparkline, one value per generation update.
func renderHistory(history []int64) string {
	if len(history) == 0 {
		return ""
	}

	parts := make([]string, len(history))
	for i, v := range history {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return labelStyle.Render("recent best: ") + strings.Join(parts, " ")
}
