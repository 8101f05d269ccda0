// Package normalize turns raw docket-entry payload rows into one analyzable
// timeline per case: one row per sequence number, merged docket text, and
// numeric fields coerced so downstream rules never see nulls.
package normalize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/jwhalen/go-docket-metrics/internal/core/model"
)

// ErrMissingColumns indicates the input payload does not carry the schema the
// inference rules depend on. This aborts the batch before any case runs.
var ErrMissingColumns = fmt.Errorf("docket payload is missing required columns")

// requiredEntryColumns are the payload keys every docket-entry row must carry.
var requiredEntryColumns = []string{
	"de_caseid", "de_seqno", "de_document_num", "dp_type", "dp_sub_type",
	"de_date_filed", "dt_text",
}

// ValidateEntrySchema checks the raw JSON row array for the required columns.
// An empty array passes: there is nothing to mis-read.
func ValidateEntrySchema(data []byte) error {
	var rows []map[string]interface{}
	if err := sonic.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("decoding docket payload: %w", err)
	}
	if len(rows) == 0 {
		return nil
	}
	var missing []string
	for _, col := range requiredEntryColumns {
		if _, ok := rows[0][col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return nil
}

// Entries collapses the raw rows of a single case into one DocketEntry per
// sequence number. Docket text is lower-cased and space-joined across all
// fragments sharing a sequence number, in original row order; every other
// field is taken from the first fragment seen. Nullable numerics become 0.
// An empty input is an empty case, not an error.
func Entries(rows []model.RawDocketRow) []model.DocketEntry {
	if len(rows) == 0 {
		return nil
	}

	type fragment struct {
		entry model.DocketEntry
		texts []string
	}

	bySeq := make(map[int]*fragment)
	order := make([]int, 0, len(rows))

	for _, row := range rows {
		text := strings.ToLower(row.Text)
		frag, ok := bySeq[row.SeqNo]
		if !ok {
			frag = &fragment{entry: model.DocketEntry{
				CaseID:        row.CaseID,
				SeqNo:         row.SeqNo,
				DocumentNum:   intOrZero(row.DocumentNum),
				EntryType:     strings.TrimSpace(row.EntryType),
				PartyType:     strings.TrimSpace(row.PartyType),
				PartySubType:  strings.TrimSpace(row.PartySubType),
				PartySeqNo:    row.PartySeqNo,
				RelatedSeqPtr: intOrZero(row.RelatedSeqPtr),
				FiledDate:     row.FiledDate,
			}}
			bySeq[row.SeqNo] = frag
			order = append(order, row.SeqNo)
		}
		frag.texts = append(frag.texts, text)
	}

	entries := make([]model.DocketEntry, 0, len(order))
	for _, seq := range order {
		frag := bySeq[seq]
		frag.entry.Text = strings.Join(frag.texts, " ")
		entries = append(entries, frag.entry)
	}
	return entries
}

// ByCase splits a multi-case payload into per-case normalized timelines,
// preserving within-case row order. Case ids come back sorted so batch runs
// are deterministic.
func ByCase(rows []model.RawDocketRow) (map[int][]model.DocketEntry, []int) {
	grouped := make(map[int][]model.RawDocketRow)
	for _, row := range rows {
		grouped[row.CaseID] = append(grouped[row.CaseID], row)
	}

	timelines := make(map[int][]model.DocketEntry, len(grouped))
	caseIDs := make([]int, 0, len(grouped))
	for caseID, caseRows := range grouped {
		timelines[caseID] = Entries(caseRows)
		caseIDs = append(caseIDs, caseID)
	}
	sort.Ints(caseIDs)
	return timelines, caseIDs
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
