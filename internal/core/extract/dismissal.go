package extract

import (
	"github.com/jwhalen/go-docket-metrics/internal/core/model"
)

// EarlyDismissals collects every dismissal that can end a case before
// screening: voluntary dismissal, civil-case termination, no-trust-fund
// termination, and complaint dismissal. Candidates are deduplicated by
// sequence number and appended in ascending filed-date order; resolution
// takes the LAST "dismcmp" entry as the authoritative dismissal.
func EarlyDismissals(rec *CaseRecord, entries []model.DocketEntry) {
	dism := dedupeBySeqNo(withSubType(entries,
		string(model.DismissalVoluntary),
		string(model.DismissalCaseTerminated),
		string(model.DismissalNoTrustFundStmt),
		string(model.DismissalComplaintDismiss),
	))
	if len(dism) == 0 {
		return
	}
	sortByFiledDate(dism)
	for _, e := range dism {
		reason, err := model.ParseDismissalReason(e.PartySubType)
		if err != nil {
			continue
		}
		rec.EarlyDismissals = append(rec.EarlyDismissals, DismissalCandidate{
			Date:   e.FiledDate,
			Reason: reason,
			Text:   e.Text,
		})
	}
}
