package formatter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwhalen/go-docket-metrics/internal/core/model"
)

func day(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func intPtr(n int) *int {
	return &n
}

func sampleRows() []CaseRow {
	return []CaseRow{
		{
			Milestones: model.CaseMilestones{
				CaseID:                43516,
				CaseType:              "Prisoner Petitions",
				CaseNumber:            "3:19-cv-00221",
				Judge:                 "jdp",
				NatureOfSuit:          550,
				CaseGroup:             "Prisoner Petitions",
				ComplaintDate:         day("2019-03-20"),
				AmendedComplaintDate:  day("2022-02-23"),
				AmendedComplaintCount: 2,
				UADate:                day("2022-02-23"),
				LTPDate:               day("2022-03-01"),
				TotalElapsedDays:      intPtr(1071),
			},
			Deadlines: &model.CaseDeadlines{
				CaseID:              43516,
				DispositiveDeadline: day("2022-10-01"),
				TrialDate:           day("2023-03-13"),
			},
		},
		{
			Milestones: model.CaseMilestones{
				CaseID:        41669,
				CaseType:      "Civil Rights",
				ComplaintDate: day("2021-01-04"),
				FullFeePaid:   true,
			},
		},
	}
}

func TestCSVFormatterOutput(t *testing.T) {
	var buf bytes.Buffer
	f := &CSVFormatter{out: &buf}
	require.NoError(t, f.Format(sampleRows()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus two data rows")

	header := records[0]
	assert.Equal(t, fullHeaders, header)
	for _, rec := range records[1:] {
		assert.Len(t, rec, len(fullHeaders))
	}

	first := records[1]
	assert.Equal(t, "43516", first[0])
	assert.Equal(t, "2019-03-20", first[indexOf(t, header, "complaint_date")])
	assert.Equal(t, "2022-02-23", first[indexOf(t, header, "ua_date")])
	assert.Equal(t, "2022-03-01", first[indexOf(t, header, "ltp_date")])
	assert.Equal(t, "1071", first[indexOf(t, header, "total_elapsed_days")])
	assert.Equal(t, "2022-10-01", first[indexOf(t, header, "dispositive_deadline")])

	second := records[2]
	assert.Equal(t, "41669", second[0])
	assert.Equal(t, "", second[indexOf(t, header, "ua_date")], "unset dates render empty")
	assert.Equal(t, "", second[indexOf(t, header, "total_elapsed_days")])
	assert.Equal(t, "true", second[indexOf(t, header, "full_fee_paid")])
	assert.Equal(t, "", second[indexOf(t, header, "trial_date")], "no deadlines record")
}

func TestJSONFormatterOutput(t *testing.T) {
	var buf bytes.Buffer
	f := &JSONFormatter{out: &buf}
	require.NoError(t, f.Format(sampleRows()))

	out := buf.String()
	assert.Contains(t, out, `"caseid": 43516`)
	assert.Contains(t, out, `"ua_date"`)
	assert.Contains(t, out, `"deadlines"`)
}

func TestSummaryFormatterOutput(t *testing.T) {
	var buf bytes.Buffer
	f := &SummaryFormatter{out: &buf}
	require.NoError(t, f.Format(sampleRows()))

	out := buf.String()
	assert.Contains(t, out, "Cases:                 2")
	assert.Contains(t, out, "With advisement date:  1")
	assert.Contains(t, out, "Full fee paid:         1")
	assert.Contains(t, out, "Prisoner Petitions")
	assert.Contains(t, out, "Ungrouped")
	assert.Contains(t, out, "median: 1071")
}

func TestSummaryFormatterEmpty(t *testing.T) {
	var buf bytes.Buffer
	f := &SummaryFormatter{out: &buf}
	require.NoError(t, f.Format(nil))
	assert.Contains(t, buf.String(), "Cases:                 0")
}

func TestTableFormatterRowValues(t *testing.T) {
	f := NewTableFormatter()
	rows := sampleRows()

	values := f.rowValues(rows[0])
	require.Len(t, values, len(f.headers))
	assert.Equal(t, "43516", values[0])
	assert.Equal(t, "2019-03-20", values[2])
	assert.Equal(t, "1071", values[7])

	// the second case carries no group, so the type label stands in
	values = f.rowValues(rows[1])
	assert.Equal(t, "Civil Rights", values[1])
}

func indexOf(t *testing.T, headers []string, name string) int {
	t.Helper()
	for i, h := range headers {
		if h == name {
			return i
		}
	}
	t.Fatalf("column %q not found", name)
	return -1
}

func TestRecordLengthMatchesHeaders(t *testing.T) {
	for _, row := range sampleRows() {
		assert.Len(t, row.record(), len(fullHeaders))
	}
	assert.False(t, strings.Contains(strings.Join(fullHeaders, ","), " "),
		"headers are machine-readable identifiers")
}
