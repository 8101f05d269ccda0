package formatter

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/jwhalen/go-docket-metrics/internal/util"
)

// TableFormatter renders the condensed interactive view: the key milestone
// columns only. The full record is for csv/json export; forty columns do not
// fit a terminal.
type TableFormatter struct {
	headers   []string
	termWidth int
}

func NewTableFormatter() *TableFormatter {
	width := 0
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
	}
	return &TableFormatter{
		headers: []string{
			"Case", "Group", "Complaint", "Screening", "UA", "LTP",
			"Reopens", "Elapsed",
		},
		termWidth: width,
	}
}

func (f *TableFormatter) Format(data []CaseRow) error {
	widths := f.calculateColumnWidths(data)

	f.printBorder(widths, "top")
	f.printRow(f.headers, widths)
	f.printBorder(widths, "middle")

	resolved := 0
	for _, row := range data {
		values := f.rowValues(row)
		f.printRow(values, widths)
		if row.Milestones.UADate != nil {
			resolved++
		}
	}

	f.printBorder(widths, "bottom")
	fmt.Printf("%d cases, %d with an advisement date\n", len(data), resolved)
	return nil
}

func (f *TableFormatter) rowValues(row CaseRow) []string {
	ms := row.Milestones
	group := ms.CaseGroup
	if group == "" {
		group = ms.CaseType
	}
	return []string{
		strconv.Itoa(ms.CaseID),
		f.truncateGroup(group),
		util.FormatCivilDate(ms.ComplaintDate),
		util.FormatCivilDate(ms.ScreeningDate),
		util.FormatCivilDate(ms.UADate),
		util.FormatCivilDate(ms.LTPDate),
		strconv.Itoa(ms.CaseReopenCount),
		formatIntPtr(ms.TotalElapsedDays),
	}
}

// truncateGroup keeps the group column from blowing out narrow terminals.
// Dates are fixed-width, so the group label absorbs all the variance.
func (f *TableFormatter) truncateGroup(group string) string {
	max := 24
	if f.termWidth > 0 && f.termWidth < 110 {
		max = 12
	}
	return runewidth.Truncate(group, max, "…")
}

func (f *TableFormatter) calculateColumnWidths(data []CaseRow) []int {
	widths := make([]int, len(f.headers))
	for i, header := range f.headers {
		widths[i] = runewidth.StringWidth(header)
	}
	for _, row := range data {
		for i, value := range f.rowValues(row) {
			if w := runewidth.StringWidth(value); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func (f *TableFormatter) printBorder(widths []int, borderType string) {
	var left, middle, right string

	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	fmt.Print(left)
	for i, width := range widths {
		fmt.Print(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			fmt.Print(middle)
		}
	}
	fmt.Println(right)
}

func (f *TableFormatter) printRow(values []string, widths []int) {
	fmt.Print("│")
	for i, value := range values {
		pad := strings.Repeat(" ", widths[i]-runewidth.StringWidth(value))
		if i <= 1 {
			// case id and group are left-aligned
			fmt.Printf(" %s │", value+pad)
		} else {
			fmt.Printf(" %s │", pad+value)
		}
	}
	fmt.Println()
}
