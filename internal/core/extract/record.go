// Package extract implements the milestone extractors: independent rules that
// scan one case's normalized docket timeline and collect candidate dates onto
// a mutable CaseRecord. Extractors only read the timeline and only append to
// their own candidate lists; all tie-breaking happens later, in assemble.
package extract

import (
	"sort"
	"strings"

	"github.com/jwhalen/go-docket-metrics/internal/core/model"
)

// AmendedComplaint is one amended-complaint candidate. DocNum carries the
// bracketed document number (e.g. "[12]") used to match UA docket text.
type AmendedComplaint struct {
	Date      string `json:"amdcmpDate"`
	DocNum    string `json:"amdcmpDocnum"`
	SeqNo     int    `json:"amdcmpSeqno"`
	SeqNoPtr  int    `json:"amdcmpSeqnoPtr"`
}

// DismissalCandidate is one early-dismissal (or complaint-dismissal) entry.
type DismissalCandidate struct {
	Date   string                `json:"disDate"`
	Reason model.DismissalReason `json:"disReason"`
	Text   string                `json:"disText"`
}

// UACandidate is one under-advisement candidate: the filed date and the
// merged docket text it was matched on.
type UACandidate struct {
	Date string `json:"uaDate"`
	Text string `json:"uaText"`
}

// LeaveCandidate is one leave-to-proceed order candidate.
type LeaveCandidate struct {
	Date  string `json:"ltpDate"`
	SeqNo int    `json:"seqno"`
	Text  string `json:"ltpText"`
}

// JudgmentCandidate is one judgment entry candidate.
type JudgmentCandidate struct {
	Date  string `json:"judgmentDate"`
	SeqNo int    `json:"seqno"`
	Text  string `json:"judgmentText"`
}

// MotionCandidate is a generic dated motion candidate (reconsideration).
type MotionCandidate struct {
	Date  string `json:"motionDate"`
	SeqNo int    `json:"seqno"`
	Text  string `json:"motionText"`
}

// OrderMotionLink pairs an order with the motion it disposes of, joined
// through the order's related-sequence pointer.
type OrderMotionLink struct {
	OrderSeqNo    int    `json:"orderSeqno"`
	OrderSubType  string `json:"orderSubType"`
	OrderDate     string `json:"orderDate"`
	OrderText     string `json:"orderText"`
	MotionSeqNo   int    `json:"motionSeqno"`
	MotionSubType string `json:"motionSubType"`
	MotionDate    string `json:"motionDate"`
	MotionText    string `json:"motionText"`
}

// CaseRecord is the per-case accumulator. Extractors populate the scalar
// first-match fields and the candidate lists; assemble.Resolve collapses the
// lists into the immutable output record. Document-number fields keep the
// string sentinel "0" for "not found" — only date fields use absence.
type CaseRecord struct {
	CaseID       int
	CaseType     string
	CaseNumber   string
	Judge        string
	NatureOfSuit int
	CaseGroup    string

	ComplaintDocNum string // bracketed, "0" when no complaint found
	ComplaintDate   string
	TransferDate    string
	ScreeningDocNum string // bracketed party seqno, "0" when absent
	ScreeningDate   string
	IFPDocNum       string
	IFPDate         string

	TrustFundDocNum       string
	TrustFundReceivedDate string
	PartialPaymentDate    string
	FullFeePaid           bool

	DismissalDateForNoTrustFundStmt string
	WardenLetterDate                string
	InitialPretrialConferenceDate   string // raw until resolution
	NoticeOfAppealDate              string
	TerminatedDate                  string

	AmendedComplaints   []AmendedComplaint
	ComplaintDismissals []DismissalCandidate
	EarlyDismissals     []DismissalCandidate
	UACandidates        []UACandidate
	LeaveCandidates     []LeaveCandidate
	ReopenDates         []string
	Judgments           []JudgmentCandidate
	Reconsiderations    []MotionCandidate
	OrderLinks          []OrderMotionLink
	ProSeOrders         []UACandidate
}

// NewCaseRecord creates an empty accumulator with the docnum sentinels set.
func NewCaseRecord(caseID int) *CaseRecord {
	return &CaseRecord{
		CaseID:          caseID,
		ComplaintDocNum: "0",
		ScreeningDocNum: "0",
		IFPDocNum:       "0",
	}
}

// dedupeBySeqNo removes entries sharing a sequence number, keeping the first.
func dedupeBySeqNo(entries []model.DocketEntry) []model.DocketEntry {
	seen := make(map[int]bool, len(entries))
	out := entries[:0:0]
	for _, e := range entries {
		if seen[e.SeqNo] {
			continue
		}
		seen[e.SeqNo] = true
		out = append(out, e)
	}
	return out
}

// dedupeByPartySeqNo removes entries sharing a docket-party sequence number.
func dedupeByPartySeqNo(entries []model.DocketEntry) []model.DocketEntry {
	seen := make(map[int]bool, len(entries))
	out := entries[:0:0]
	for _, e := range entries {
		if seen[e.PartySeqNo] {
			continue
		}
		seen[e.PartySeqNo] = true
		out = append(out, e)
	}
	return out
}

// sortByFiledDate orders entries ascending by filed date. ISO dates sort
// lexically, so no parsing is needed here.
func sortByFiledDate(entries []model.DocketEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].FiledDate < entries[j].FiledDate
	})
}

// withSubType filters entries matching any of the given party subtypes.
func withSubType(entries []model.DocketEntry, subtypes ...string) []model.DocketEntry {
	var out []model.DocketEntry
	for _, e := range entries {
		for _, st := range subtypes {
			if e.PartySubType == st {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// containsAny reports whether text contains at least one keyword.
func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
