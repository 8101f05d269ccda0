package extract

import (
	"fmt"
	"sort"

	"github.com/jwhalen/go-docket-metrics/internal/core/model"
)

// initiatingSubtypes are the docket subtypes that open a civil case. A 2255
// motion only counts when docketed under the motion party type.
var initiatingSubtypes = []string{"cmp", "pwrithc", "ntcrem", "emerinj", "bkntc", "setagr"}

// FindComplaint creates the case record and locates the initiating document.
// Matches are ordered by sequence number and the earliest wins; its document
// number becomes the bracketed complaint docnum. When nothing matches, the
// complaint stays unset and screening acts as the initiating event.
func FindComplaint(caseID int, entries []model.DocketEntry) *CaseRecord {
	rec := NewCaseRecord(caseID)

	var matches []model.DocketEntry
	for _, e := range entries {
		if e.PartyType == "motion" && e.PartySubType == "2255" {
			matches = append(matches, e)
			continue
		}
		for _, st := range initiatingSubtypes {
			if e.PartySubType == st {
				matches = append(matches, e)
				break
			}
		}
	}
	if len(matches) == 0 {
		return rec
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].SeqNo < matches[j].SeqNo
	})
	rec.ComplaintDocNum = fmt.Sprintf("[%d]", matches[0].DocumentNum)
	rec.ComplaintDate = matches[0].FiledDate
	return rec
}

// Transfer records the date a case arrived from another district (subtype
// "distin"). Resolution later re-bases the complaint date onto it.
func Transfer(rec *CaseRecord, entries []model.DocketEntry) {
	trf := dedupeBySeqNo(withSubType(entries, "distin"))
	if len(trf) > 0 {
		rec.TransferDate = trf[0].FiledDate
	}
}

// Screening locates the screening event that substitutes for a complaint
// filing. The docnum deliberately comes from the docket-party sequence
// number, not the document number — the upstream data is wired that way.
func Screening(rec *CaseRecord, entries []model.DocketEntry) {
	scr := withSubType(entries, "dummyscr", "pdpro")
	if len(scr) == 0 {
		rec.ScreeningDocNum = "0"
		return
	}
	rec.ScreeningDocNum = fmt.Sprintf("[%d]", scr[0].PartySeqNo)
	rec.ScreeningDate = scr[0].FiledDate
}

// AmendedComplaints collects every amended-complaint filing, deduplicated by
// sequence number, keeping the order-pointer so later rules can tie each
// amendment to the order disposing of it.
func AmendedComplaints(rec *CaseRecord, entries []model.DocketEntry) {
	amd := dedupeBySeqNo(withSubType(entries, "amdcmp", "pamdcmp"))
	for _, e := range amd {
		rec.AmendedComplaints = append(rec.AmendedComplaints, AmendedComplaint{
			Date:     e.FiledDate,
			DocNum:   fmt.Sprintf("[%d]", e.DocumentNum),
			SeqNo:    e.SeqNo,
			SeqNoPtr: e.RelatedSeqPtr,
		})
	}
}

// ComplaintDismissals records "complaint dismissed" entries linked to an
// amended-complaint chain. They feed complaint-dismissal-date resolution.
func ComplaintDismissals(rec *CaseRecord, entries []model.DocketEntry) {
	dis := dedupeBySeqNo(withSubType(entries, "dismcmp"))
	for _, e := range dis {
		rec.ComplaintDismissals = append(rec.ComplaintDismissals, DismissalCandidate{
			Date:   e.FiledDate,
			Reason: model.DismissalComplaintDismiss,
			Text:   e.Text,
		})
	}
}
