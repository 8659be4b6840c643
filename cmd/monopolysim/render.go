package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"

	"github.com/lox/monopolysim/internal/board"
	"github.com/lox/monopolysim/internal/simulator"
	"github.com/lox/monopolysim/internal/statistics"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// disableColor renders every style as plain ASCII.
func disableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// newTable builds a table whose columns listed in numeric are right aligned.
func newTable(headers []string, numeric ...int) *table.Table {
	right := make(map[int]bool, len(numeric))
	for _, col := range numeric {
		right[col] = true
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case right[col]:
				return numberStyle
			default:
				return cellStyle
			}
		})
}

func share(count, total int) string {
	if total == 0 {
		return "0.00%"
	}
	return fmt.Sprintf("%.2f%%", 100*float64(count)/float64(total))
}

func renderBoard(w io.Writer, b *board.Board) {
	t := newTable([]string{"#", "Space", "Price"}, 0, 2)
	for i, space := range b.Spaces() {
		price := "-"
		if space.Price != nil {
			price = "$" + strconv.Itoa(*space.Price)
		}
		t.Row(strconv.Itoa(i), space.Name, price)
	}
	fmt.Fprintln(w, titleStyle.Render(" Board "))
	fmt.Fprintln(w, t.Render())
}

func renderLandings(w io.Writer, b *board.Board, stats *statistics.Collector) {
	total := stats.TotalLandings()
	t := newTable([]string{"Space", "Landings", "Share"}, 1, 2)
	for _, lc := range stats.LandingsInOrder(b.Names()) {
		t.Row(lc.Name, strconv.Itoa(lc.Count), share(lc.Count, total))
	}
	fmt.Fprintln(w, titleStyle.Render(" Landings "))
	fmt.Fprintln(w, t.Render())
}

func renderDice(w io.Writer, stats *statistics.Collector) {
	total := stats.TotalRolls()
	t := newTable([]string{"Dice", "Sum", "Rolls", "Share"}, 1, 2, 3)
	for _, dc := range stats.SortedDice() {
		t.Row(dc.Pair.String(), strconv.Itoa(dc.Pair.Sum()), strconv.Itoa(dc.Count), share(dc.Count, total))
	}
	fmt.Fprintln(w, titleStyle.Render(" Dice "))
	fmt.Fprintln(w, t.Render())
}

func renderSummary(w io.Writer, report *simulator.Report, rounds int, players []string) {
	total := report.Total
	t := newTable([]string{"Metric", "Value"}, 1)
	t.Row("Runs", strconv.Itoa(len(report.Runs)))
	t.Row("Rounds per run", strconv.Itoa(rounds))
	t.Row("Players", strconv.Itoa(len(players)))
	t.Row("Rolls", strconv.Itoa(total.TotalRolls()))
	t.Row("Landings", strconv.Itoa(total.TotalLandings()))
	t.Row("Doubles", fmt.Sprintf("%.2f%%", 100*total.DoublesRatio()))
	t.Row("Elapsed", report.Elapsed.String())
	fmt.Fprintln(w, titleStyle.Render(" Summary "))
	fmt.Fprintln(w, t.Render())
}

func renderReport(w io.Writer, report *simulator.Report, rounds int, players []string) {
	renderSummary(w, report, rounds, players)
	fmt.Fprintln(w)
	renderLandings(w, report.Board, report.Total)
	fmt.Fprintln(w)
	renderDice(w, report.Total)
}
