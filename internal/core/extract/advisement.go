package extract

import (
	"github.com/jwhalen/go-docket-metrics/internal/core/model"
)

// uaKeywords qualify an under-advisement entry on the standard (non-paid)
// track. Any single hit is enough.
var uaKeywords = []string{
	"screening", "complaint", "pauperis", "habeas", "reopen",
	"social security", "bankruptcy", "prepayment", "2255",
}

// UnderAdvisement gathers under-advisement candidates. Paid-in-full cases
// take their candidates from "pdpro" entries; everyone else from the
// advisement/referral/termination-deadline subtypes whose text matches one
// of the screening-related keywords. Every qualifying entry is appended —
// selection happens at resolution.
func UnderAdvisement(rec *CaseRecord, entries []model.DocketEntry) {
	if rec.FullFeePaid {
		for _, e := range withSubType(entries, "pdpro") {
			rec.UACandidates = append(rec.UACandidates, UACandidate{
				Date: e.FiledDate,
				Text: e.Text,
			})
		}
		return
	}

	for _, e := range withSubType(entries, "madv", "rel", "termddl") {
		if containsAny(e.Text, uaKeywords) {
			rec.UACandidates = append(rec.UACandidates, UACandidate{
				Date: e.FiledDate,
				Text: e.Text,
			})
		}
	}
}

// ProSeOrders collects pro-se screening orders (order/prose2), deduplicated
// and date-ordered. Their text is mined at resolution for IFP grant/denial
// and trust-fund order-to-submit dates.
func ProSeOrders(rec *CaseRecord, entries []model.DocketEntry) {
	var orders []model.DocketEntry
	for _, e := range entries {
		if e.PartyType == "order" && e.PartySubType == "prose2" {
			orders = append(orders, e)
		}
	}
	if len(orders) == 0 {
		return
	}
	orders = dedupeByPartySeqNo(orders)
	sortByFiledDate(orders)
	for _, e := range orders {
		rec.ProSeOrders = append(rec.ProSeOrders, UACandidate{
			Date: e.FiledDate,
			Text: e.Text,
		})
	}
}
