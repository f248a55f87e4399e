package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"retailstore/domain"
)

var (
	accent = lipgloss.Color("#D97706") // amber
	dim    = lipgloss.Color("#6B7280") // muted gray
	danger = lipgloss.Color("#EF4444") // red

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	soldOut     = numberStyle.Foreground(danger)
	emptyStyle  = lipgloss.NewStyle().Foreground(dim)
)

func writeSummaries(w io.Writer, format string, rows []domain.ProductSummary) error {
	switch format {
	case "json":
		b, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(rows); err != nil {
			return err
		}
		return enc.Close()
	case "table", "":
		_, err := fmt.Fprintln(w, renderTable(rows))
		return err
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

func renderTable(rows []domain.ProductSummary) string {
	if len(rows) == 0 {
		return emptyStyle.Render("no products in stock")
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(dim)).
		Headers("NAME", "TYPE", "AMOUNT", "UNIT PRICE").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 2 && row >= 0 && row < len(rows) && rows[row].Quantity == 0:
				return soldOut
			case col >= 2:
				return numberStyle
			default:
				return cellStyle
			}
		})
	for _, r := range rows {
		t.Row(r.Name, r.Type, strconv.Itoa(r.Quantity), fmt.Sprintf("%.2f", r.UnitPrice))
	}
	return t.Render()
}
