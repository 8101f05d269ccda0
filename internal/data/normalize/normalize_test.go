package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwhalen/go-docket-metrics/internal/core/model"
)

func intPtr(n int) *int {
	return &n
}

func TestEntriesMergesTextBySeqNo(t *testing.T) {
	rows := []model.RawDocketRow{
		{CaseID: 41091, SeqNo: 3, DocumentNum: intPtr(1), PartyType: "motion", PartySubType: "cmp", FiledDate: "2021-01-04", Text: "COMPLAINT against"},
		{CaseID: 41091, SeqNo: 3, DocumentNum: intPtr(1), PartyType: "motion", PartySubType: "cmp", FiledDate: "2021-01-04", Text: "Warden of FCI"},
		{CaseID: 41091, SeqNo: 3, DocumentNum: intPtr(1), PartyType: "motion", PartySubType: "cmp", FiledDate: "2021-01-04", Text: "Oxford, filed by plaintiff"},
		{CaseID: 41091, SeqNo: 5, DocumentNum: intPtr(2), PartyType: "motion", PartySubType: "ifp", FiledDate: "2021-01-04", Text: "MOTION for leave"},
	}

	entries := Entries(rows)
	require.Len(t, entries, 2, "one row per sequence number")

	assert.Equal(t, 3, entries[0].SeqNo)
	assert.Equal(t, "complaint against warden of fci oxford, filed by plaintiff", entries[0].Text,
		"fragments joined with spaces in original order, lower-cased")
	assert.Equal(t, "cmp", entries[0].PartySubType)
	assert.Equal(t, 1, entries[0].DocumentNum)

	assert.Equal(t, 5, entries[1].SeqNo)
	assert.Equal(t, "motion for leave", entries[1].Text)
}

func TestEntriesPreservesFirstOccurrenceOrder(t *testing.T) {
	rows := []model.RawDocketRow{
		{CaseID: 1, SeqNo: 9, Text: "c"},
		{CaseID: 1, SeqNo: 2, Text: "a"},
		{CaseID: 1, SeqNo: 9, Text: "d"},
		{CaseID: 1, SeqNo: 4, Text: "b"},
	}

	entries := Entries(rows)
	require.Len(t, entries, 3)
	assert.Equal(t, []int{9, 2, 4}, []int{entries[0].SeqNo, entries[1].SeqNo, entries[2].SeqNo})
	assert.Equal(t, "c d", entries[0].Text)
}

func TestEntriesCoercesNullableNumerics(t *testing.T) {
	rows := []model.RawDocketRow{
		{CaseID: 1, SeqNo: 1, DocumentNum: nil, RelatedSeqPtr: nil, Text: "x"},
		{CaseID: 1, SeqNo: 2, DocumentNum: intPtr(7), RelatedSeqPtr: intPtr(12), Text: "y"},
	}

	entries := Entries(rows)
	require.Len(t, entries, 2)
	assert.Equal(t, 0, entries[0].DocumentNum)
	assert.Equal(t, 0, entries[0].RelatedSeqPtr)
	assert.Equal(t, 7, entries[1].DocumentNum)
	assert.Equal(t, 12, entries[1].RelatedSeqPtr)
}

func TestEntriesEmptyInput(t *testing.T) {
	assert.Nil(t, Entries(nil))
}

func TestByCase(t *testing.T) {
	rows := []model.RawDocketRow{
		{CaseID: 43516, SeqNo: 1, Text: "a"},
		{CaseID: 41091, SeqNo: 1, Text: "b"},
		{CaseID: 43516, SeqNo: 2, Text: "c"},
	}

	timelines, caseIDs := ByCase(rows)
	assert.Equal(t, []int{41091, 43516}, caseIDs, "case ids sorted")
	assert.Len(t, timelines[43516], 2)
	assert.Len(t, timelines[41091], 1)
}

func TestValidateEntrySchema(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{
			name: "complete_schema",
			payload: `[{"de_caseid": 1, "de_seqno": 1, "de_document_num": 1,
				"dp_type": "motion", "dp_sub_type": "cmp",
				"de_date_filed": "2021-01-04", "dt_text": "complaint"}]`,
			wantErr: false,
		},
		{
			name:    "empty_array_passes",
			payload: `[]`,
			wantErr: false,
		},
		{
			name:    "missing_columns",
			payload: `[{"de_caseid": 1, "de_seqno": 1}]`,
			wantErr: true,
		},
		{
			name:    "not_an_array",
			payload: `{"de_caseid": 1}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEntrySchema([]byte(tt.payload))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEntrySchemaNamesMissingColumns(t *testing.T) {
	err := ValidateEntrySchema([]byte(`[{"de_caseid": 1}]`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingColumns)
	assert.Contains(t, err.Error(), "dt_text")
}
