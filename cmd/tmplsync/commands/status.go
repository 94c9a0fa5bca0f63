package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.trai.ch/tmplsync/internal/core/domain"
	"go.trai.ch/tmplsync/internal/ui/style"
	"go.trai.ch/zerr"
)

const columnGap = 2

func (c *CLI) newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show recent sync passes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, _ := cmd.Flags().GetInt("limit")
			kind, _ := cmd.Flags().GetString("kind")

			switch domain.PassKind(kind) {
			case "", domain.PassCatalog, domain.PassPurchase:
			default:
				return zerr.With(zerr.New("unknown pass kind"), "kind", kind)
			}

			records, err := c.app.History(domain.PassKind(kind), n)
			if err != nil {
				return err
			}
			RenderHistory(cmd.OutOrStdout(), records)
			return nil
		},
	}
	cmd.Flags().IntP("limit", "n", 10, "Number of passes to show")
	cmd.Flags().StringP("kind", "k", "", "Only show passes of this kind (catalog or purchase)")
	return cmd
}

// RenderHistory writes records as an aligned table, newest first.
func RenderHistory(w io.Writer, records []domain.PassRecord) {
	if len(records) == 0 {
		_, _ = fmt.Fprintln(w, "no sync passes recorded")
		return
	}

	r := lipgloss.NewRenderer(w)
	header := r.NewStyle().Bold(true).Foreground(style.Iris)
	muted := r.NewStyle().Foreground(style.Slate)
	plain := r.NewStyle()

	rows := [][]string{{"STARTED", "KIND", "OUTCOME", "CHANGES", "DURATION", "DETAIL"}}
	for _, rec := range records {
		detail := rec.ManifestDigest
		if rec.Error != "" {
			detail = rec.Error
		}
		rows = append(rows, []string{
			rec.StartedAt.UTC().Format(time.DateTime),
			string(rec.Kind),
			string(rec.Outcome),
			fmt.Sprintf("+%d -%d", rec.Downloads, rec.Deletions),
			rec.Duration().Round(time.Millisecond).String(),
			detail,
		})
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell)+columnGap)
		}
	}

	for i, row := range rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			s := plain
			switch {
			case i == 0:
				s = header
			case j == 0:
				s = muted
			case j == 2:
				s = r.NewStyle().Foreground(outcomeColor(domain.PassOutcome(cell)))
			}
			if j < len(row)-1 {
				s = s.Width(widths[j])
			}
			cells[j] = s.Render(cell)
		}
		_, _ = fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
}

func outcomeColor(o domain.PassOutcome) lipgloss.Color {
	switch o {
	case domain.OutcomeOK, domain.OutcomeUnchanged:
		return style.Green
	case domain.OutcomeSkipped:
		return style.Yellow
	default:
		return style.Red
	}
}
