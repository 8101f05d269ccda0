package formatter

import (
	"fmt"
	"io"
	"os"
	"sort"
)

// SummaryFormatter prints aggregate statistics for a batch: case counts by
// group, advisement coverage, and elapsed-time distribution.
type SummaryFormatter struct {
	out io.Writer
}

func NewSummaryFormatter() *SummaryFormatter {
	return &SummaryFormatter{out: os.Stdout}
}

func (f *SummaryFormatter) Format(data []CaseRow) error {
	withUA := 0
	fullFee := 0
	dismissedEarly := 0
	groupCounts := make(map[string]int)
	var elapsed []int

	for _, row := range data {
		ms := row.Milestones
		group := ms.CaseGroup
		if group == "" {
			group = "Ungrouped"
		}
		groupCounts[group]++

		if ms.UADate != nil {
			withUA++
		}
		if ms.FullFeePaid {
			fullFee++
		}
		if ms.DismissalDatePriorToScreening != nil {
			dismissedEarly++
		}
		if ms.TotalElapsedDays != nil {
			elapsed = append(elapsed, *ms.TotalElapsedDays)
		}
	}

	fmt.Fprintln(f.out, "Case Milestone Summary")
	fmt.Fprintln(f.out, "======================")
	fmt.Fprintf(f.out, "Cases:                 %d\n", len(data))
	fmt.Fprintf(f.out, "With advisement date:  %d\n", withUA)
	fmt.Fprintf(f.out, "Full fee paid:         %d\n", fullFee)
	fmt.Fprintf(f.out, "Dismissed pre-screen:  %d\n", dismissedEarly)

	if len(elapsed) > 0 {
		sort.Ints(elapsed)
		total := 0
		for _, d := range elapsed {
			total += d
		}
		fmt.Fprintln(f.out)
		fmt.Fprintln(f.out, "Total elapsed days")
		fmt.Fprintf(f.out, "  mean:   %.1f\n", float64(total)/float64(len(elapsed)))
		fmt.Fprintf(f.out, "  median: %d\n", elapsed[len(elapsed)/2])
		fmt.Fprintf(f.out, "  min:    %d\n", elapsed[0])
		fmt.Fprintf(f.out, "  max:    %d\n", elapsed[len(elapsed)-1])
	}

	if len(groupCounts) > 0 {
		groups := make([]string, 0, len(groupCounts))
		for g := range groupCounts {
			groups = append(groups, g)
		}
		sort.Strings(groups)

		fmt.Fprintln(f.out)
		fmt.Fprintln(f.out, "By group")
		for _, g := range groups {
			fmt.Fprintf(f.out, "  %-28s %d\n", g, groupCounts[g])
		}
	}
	return nil
}
