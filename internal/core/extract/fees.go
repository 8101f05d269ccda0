package extract

import (
	"fmt"
	"strings"

	"github.com/jwhalen/go-docket-metrics/internal/core/model"
)

// IFP locates the in-forma-pauperis motion. First match wins. Absence leaves
// the docnum at the "0" sentinel and the date unset.
func IFP(rec *CaseRecord, entries []model.DocketEntry) {
	ifp := withSubType(entries, "ifp")
	if len(ifp) == 0 {
		rec.IFPDocNum = "0"
		return
	}
	rec.IFPDocNum = fmt.Sprintf("[%d]", ifp[0].DocumentNum)
	rec.IFPDate = ifp[0].FiledDate
}

// TrustFund locates the prisoner trust-fund account statement.
func TrustFund(rec *CaseRecord, entries []model.DocketEntry) {
	tf := withSubType(entries, "trfund")
	if len(tf) == 0 {
		return
	}
	rec.TrustFundDocNum = fmt.Sprintf("[%d]", tf[0].DocumentNum)
	rec.TrustFundReceivedDate = tf[0].FiledDate
}

// FeePayment finds the earliest fee receipt. A docket text mentioning "400"
// marks the full filing fee as paid, which switches the under-advisement
// extractor onto the paid-prisoner track. The substring check is a known
// fragile heuristic inherited from the docketing conventions; it matches any
// text containing that digit run.
func FeePayment(rec *CaseRecord, entries []model.DocketEntry) {
	fees := withSubType(entries, "fee")
	if len(fees) == 0 {
		return
	}
	sortByFiledDate(fees)
	rec.PartialPaymentDate = fees[0].FiledDate
	if strings.Contains(fees[0].Text, "400") {
		rec.FullFeePaid = true
	}
}

// NoTrustFundDismissal records the earliest dismissal for failure to file a
// trust-fund statement (subtype "termpscs").
func NoTrustFundDismissal(rec *CaseRecord, entries []model.DocketEntry) {
	term := withSubType(entries, "termpscs")
	if len(term) == 0 {
		return
	}
	sortByFiledDate(term)
	rec.DismissalDateForNoTrustFundStmt = term[0].FiledDate
}
