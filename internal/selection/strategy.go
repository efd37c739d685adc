package selection

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"chaptercut/internal/logging"
	"chaptercut/internal/services"
	"chaptercut/internal/timestamps"
)

// Strategy chooses one of several validated candidates and returns its index.
type Strategy interface {
	Choose(ctx context.Context, candidates []timestamps.Candidate) (int, error)
}

// AutoStrategy picks the highest score; ties go to the earliest candidate.
type AutoStrategy struct{}

func (AutoStrategy) Choose(_ context.Context, candidates []timestamps.Candidate) (int, error) {
	if len(candidates) == 0 {
		return 0, services.Wrap(services.ErrValidation, "selection", "auto", "no candidates", nil)
	}
	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		sa, sb := candidates[a].Score, candidates[b].Score
		switch {
		case sa > sb:
			return -1
		case sa < sb:
			return 1
		default:
			return 0
		}
	})
	return order[0], nil
}

// PromptStrategy lists candidates on Out and reads a 1-based choice from In.
// Invalid input is reported and the prompt repeats; only end of input ends
// the loop with an error.
type PromptStrategy struct {
	In     io.Reader
	Out    io.Writer
	Logger *slog.Logger
}

const excerptRunes = 60

func (p PromptStrategy) Choose(ctx context.Context, candidates []timestamps.Candidate) (int, error) {
	logger := logging.NewComponentLogger(p.Logger, "selection")
	fmt.Fprintln(p.Out, renderCandidates(candidates))

	scanner := bufio.NewScanner(p.In)
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		fmt.Fprintf(p.Out, "Select timestamps [1-%d]: ", len(candidates))
		if !scanner.Scan() {
			err := scanner.Err()
			if err == nil {
				err = io.EOF
			}
			return 0, services.Wrap(services.ErrSelection, "selection", "prompt", "input closed", err)
		}
		answer := strings.TrimSpace(scanner.Text())
		n, err := strconv.Atoi(answer)
		if err != nil || n < 1 || n > len(candidates) {
			selErr := services.Wrap(services.ErrSelection, "selection", "prompt", fmt.Sprintf("invalid choice %q", answer), nil)
			logger.Debug("selection re-prompt", logging.Error(selErr))
			fmt.Fprintf(p.Out, "Invalid choice %q. Enter a number between 1 and %d.\n", answer, len(candidates))
			continue
		}
		return n - 1, nil
	}
}

func renderCandidates(candidates []timestamps.Candidate) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Source", "Style", "Markers", "Score", "Excerpt"})
	for i, c := range candidates {
		tw.AppendRow(table.Row{
			i + 1,
			c.Block.Label(),
			string(c.Style),
			len(c.Markers),
			fmt.Sprintf("%.1f%%", c.Score*100),
			excerpt(c.Block.Text),
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	return tw.Render()
}

func excerpt(raw string) string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
		if len(lines) == 3 {
			break
		}
	}
	joined := []rune(strings.Join(lines, " / "))
	if len(joined) > excerptRunes {
		return string(joined[:excerptRunes-1]) + "…"
	}
	return string(joined)
}
