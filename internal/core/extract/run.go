package extract

import (
	"github.com/jwhalen/go-docket-metrics/internal/core/model"
)

// Run executes the full extractor sequence against one case's normalized
// timeline. Complaint detection goes first because screening and
// amended-complaint handling key off its result, and fee detection must
// precede under-advisement gathering because the paid-in-full flag switches
// the UA candidate source. Everything else is order-independent.
func Run(caseID int, entries []model.DocketEntry, meta *model.CaseMeta) *CaseRecord {
	rec := FindComplaint(caseID, entries)
	if meta != nil {
		rec.CaseType = meta.Group
		rec.CaseNumber = meta.CaseNumber
		rec.Judge = meta.Judge
		rec.NatureOfSuit = meta.NatureOfSuit
		rec.CaseGroup = meta.Group
		rec.TerminatedDate = meta.TerminatedDate
	}

	Transfer(rec, entries)
	Screening(rec, entries)
	AmendedComplaints(rec, entries)
	ComplaintDismissals(rec, entries)

	if rec.ComplaintDate != "" || rec.ScreeningDate != "" {
		IFP(rec, entries)
	}

	TrustFund(rec, entries)
	FeePayment(rec, entries)
	NoTrustFundDismissal(rec, entries)
	EarlyDismissals(rec, entries)
	UnderAdvisement(rec, entries)
	LeaveToProceed(rec, entries)
	PretrialConference(rec, entries)
	Reopens(rec, entries)
	Judgments(rec, entries)
	NoticeOfAppeal(rec, entries)
	WardenLetter(rec, entries)
	Reconsiderations(rec, entries)
	OrderLinks(rec, entries)

	if rec.ComplaintDate != "" || rec.ScreeningDate != "" {
		ProSeOrders(rec, entries)
	}

	return rec
}
