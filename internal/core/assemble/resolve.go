// Package assemble collapses a populated extract.CaseRecord into the final
// CaseMilestones row. Resolution runs once per case, in a fixed dependency
// order: later steps read dates settled by earlier ones, so the order is not
// negotiable. All comparisons happen on ISO date strings, which sort lexically.
package assemble

import (
	"strings"
	"time"

	"github.com/jwhalen/go-docket-metrics/internal/core/extract"
	"github.com/jwhalen/go-docket-metrics/internal/core/model"
	"github.com/jwhalen/go-docket-metrics/internal/util"
)

// Resolve runs the resolution sequence and freezes the result. Any panic while
// resolving one case is converted into ErrPerCase so the batch keeps going.
func Resolve(rec *extract.CaseRecord) (ms *model.CaseMilestones, err error) {
	defer func() {
		if r := recover(); r != nil {
			ms = nil
			err = perCaseError(rec.CaseID, r)
		}
	}()

	res := &resolution{rec: rec}
	res.rebaseOnTransfer()
	res.resolveComplaintDismissal()
	res.resolveDismissalPriorToScreening()
	res.resolveAmendedComplaint()
	res.resolveUnderAdvisement()
	res.resolveLeaveToProceed()
	res.resolveProSeOrders()
	res.applyFullFeeCleanup()
	return res.freeze(), nil
}

// resolution holds the working dates as ISO strings until freeze parses them.
type resolution struct {
	rec *extract.CaseRecord

	complaintDate                   string
	complaintDismissalDate          string
	dismissalDatePriorToScreening   string
	dismissalReasonPriorToScreening string
	judgmentWithoutPrejudiceDate    string
	amendedComplaintDate            string
	amendedComplaintDocNum          string
	uaDate                          string
	ltpDate                         string

	trustFundReceivedDate string
	ifpDate               string

	orderToSubmitTrustFundDate string
	ifpOrderGrantedDate        string
	ifpOrderDeniedDate         string
}

// rebaseOnTransfer starts tolling from the date the case arrived in this
// district rather than the original filing date.
func (r *resolution) rebaseOnTransfer() {
	r.complaintDate = r.rec.ComplaintDate
	if r.rec.TransferDate != "" {
		r.complaintDate = r.rec.TransferDate
	}
	r.trustFundReceivedDate = r.rec.TrustFundReceivedDate
	r.ifpDate = r.rec.IFPDate
}

func (r *resolution) resolveComplaintDismissal() {
	if len(r.rec.ComplaintDismissals) > 0 {
		r.complaintDismissalDate = r.rec.ComplaintDismissals[0].Date
	}
}

// resolveDismissalPriorToScreening takes the last complaint-dismissal entry
// among the early dismissals. Other dismissal reasons stay in the candidate
// list; only "dismcmp" closes a case before screening happened.
func (r *resolution) resolveDismissalPriorToScreening() {
	var last *extract.DismissalCandidate
	for i := range r.rec.EarlyDismissals {
		if r.rec.EarlyDismissals[i].Reason == model.DismissalComplaintDismiss {
			last = &r.rec.EarlyDismissals[i]
		}
	}
	if last != nil {
		r.dismissalDatePriorToScreening = last.Date
		r.dismissalReasonPriorToScreening = last.Reason.Label()
	}
}

// resolveAmendedComplaint picks the operative amended complaint: the latest
// one filed strictly before leave to proceed was granted, or the latest
// overall when no leave order has settled yet.
func (r *resolution) resolveAmendedComplaint() {
	candidates := r.rec.AmendedComplaints
	if r.ltpDate != "" {
		filtered := candidates[:0:0]
		for _, a := range candidates {
			if a.Date < r.ltpDate {
				filtered = append(filtered, a)
			}
		}
		candidates = filtered
	}
	for _, a := range candidates {
		if a.Date >= r.amendedComplaintDate {
			r.amendedComplaintDate = a.Date
			r.amendedComplaintDocNum = a.DocNum
		}
	}
}

// resolveUnderAdvisement settles the date the matter went under advisement.
// The floor date guards against picking up an advisement from a dismissed
// earlier life of the case: only candidates after the latest of the
// pre-screening dismissal and the last judgment without prejudice qualify.
func (r *resolution) resolveUnderAdvisement() {
	candidates := dedupeCandidates(r.rec.UACandidates)

	kept := candidates[:0:0]
	for _, c := range candidates {
		if !strings.Contains(c.Text, "appeal") {
			kept = append(kept, c)
		}
	}
	candidates = kept

	for _, j := range r.rec.Judgments {
		if strings.Contains(j.Text, "without prejudice") && j.Date > r.judgmentWithoutPrejudiceDate {
			r.judgmentWithoutPrejudiceDate = j.Date
		}
	}

	floor := r.dismissalDatePriorToScreening
	if r.judgmentWithoutPrejudiceDate > floor {
		floor = r.judgmentWithoutPrejudiceDate
	}

	matches := []string{"leave to proceed", "pauperis", "screening"}
	if r.amendedComplaintDate != "" && r.amendedComplaintDocNum != "" {
		matches = append(matches, r.amendedComplaintDocNum)
	}

	for _, c := range candidates {
		if !matchesAny(c.Text, matches) {
			continue
		}
		if floor != "" && c.Date <= floor {
			continue
		}
		if r.uaDate == "" || c.Date < r.uaDate {
			r.uaDate = c.Date
		}
	}
	if r.uaDate == "" {
		util.LogWarnf("No under-advisement date resolved for case %d (%d candidates)",
			r.rec.CaseID, len(candidates))
	}
}

// resolveLeaveToProceed takes the first leave order on or after the
// advisement date. When no advisement date settled, the latest leave order by
// list order stands in as the documented fallback.
func (r *resolution) resolveLeaveToProceed() {
	if len(r.rec.LeaveCandidates) == 0 {
		util.LogInfof("No leave order in case %d", r.rec.CaseID)
		return
	}
	if r.uaDate == "" {
		r.ltpDate = r.rec.LeaveCandidates[len(r.rec.LeaveCandidates)-1].Date
		return
	}
	for _, c := range r.rec.LeaveCandidates {
		if c.Date >= r.uaDate {
			r.ltpDate = c.Date
			return
		}
	}
}

// Keyword groups for classifying pro se orders. A group matches when any of
// its aliases occurs in the order text; a rule fires when every group in it
// matches. The last matching order wins, mirroring docket practice where a
// later corrected order supersedes an earlier one.
var (
	ifpGrantedGroups = [][]string{
		{"order"},
		{"ifp request"},
		{"partial", "filling fee"},
		{"assessed"},
	}
	ifpDeniedGroups = [][]string{
		{"order"},
		{"ifp"},
		{"denied", "ineligible"},
	}
	trustFundOrderRules = [][][]string{
		{{"order", "submit"}, {"trust fund account statement"}, {"plaintiff", "filling fee"}},
		{{"order", "submit"}, {"ifp"}, {"ineligible"}},
		{{"order", "submit"}, {"trust fund account statement"}, {"$5", "5.00"}},
	}
)

// resolveProSeOrders mines the pro se order texts for fee-related rulings:
// the order to submit a trust fund statement and the IFP grant or denial.
func (r *resolution) resolveProSeOrders() {
	for _, o := range r.rec.ProSeOrders {
		for _, rule := range trustFundOrderRules {
			if matchesAllGroups(o.Text, rule) {
				r.orderToSubmitTrustFundDate = o.Date
				break
			}
		}
		if matchesAllGroups(o.Text, ifpGrantedGroups) {
			r.ifpOrderGrantedDate = o.Date
		}
		if matchesAllGroups(o.Text, ifpDeniedGroups) {
			r.ifpOrderDeniedDate = o.Date
		}
	}
}

// applyFullFeeCleanup blanks fee-waiver artifacts once the full filing fee is
// known to have been paid: a trust fund statement or IFP submission recorded
// after advisement belongs to a different posture and would skew intervals.
func (r *resolution) applyFullFeeCleanup() {
	if !r.rec.FullFeePaid || r.uaDate == "" {
		return
	}
	if r.trustFundReceivedDate > r.uaDate {
		r.trustFundReceivedDate = ""
	}
	if r.ifpDate > r.uaDate {
		r.ifpDate = ""
	}
}

// freeze parses the settled strings into the immutable output record and
// drops the candidate lists.
func (r *resolution) freeze() *model.CaseMilestones {
	rec := r.rec
	return &model.CaseMilestones{
		CaseID:       rec.CaseID,
		CaseType:     rec.CaseType,
		CaseNumber:   rec.CaseNumber,
		Judge:        rec.Judge,
		NatureOfSuit: rec.NatureOfSuit,
		CaseGroup:    rec.CaseGroup,

		ComplaintDate:          datePtr(r.complaintDate),
		ComplaintDismissalDate: datePtr(r.complaintDismissalDate),
		AmendedComplaintDate:   datePtr(r.amendedComplaintDate),
		AmendedComplaintCount:  len(rec.AmendedComplaints),
		CaseReopenCount:        len(rec.ReopenDates),
		IFPDate:                datePtr(r.ifpDate),
		ScreeningDate:          datePtr(rec.ScreeningDate),
		UADate:                 datePtr(r.uaDate),
		LTPDate:                datePtr(r.ltpDate),
		TransferDate:           datePtr(rec.TransferDate),
		NoticeOfAppealDate:     datePtr(rec.NoticeOfAppealDate),

		InitialPretrialConferenceDate:   datePtr(rec.InitialPretrialConferenceDate),
		DismissalDatePriorToScreening:   datePtr(r.dismissalDatePriorToScreening),
		DismissalReasonPriorToScreening: r.dismissalReasonPriorToScreening,
		JudgmentWithoutPrejudiceDate:    datePtr(r.judgmentWithoutPrejudiceDate),

		TrustFundReceivedDate:           datePtr(r.trustFundReceivedDate),
		DismissalDateForNoTrustFundStmt: datePtr(rec.DismissalDateForNoTrustFundStmt),
		WardenLetterDate:                datePtr(rec.WardenLetterDate),
		OrderToSubmitTrustFundDate:      datePtr(r.orderToSubmitTrustFundDate),
		IFPOrderGrantedDate:             datePtr(r.ifpOrderGrantedDate),
		IFPOrderDeniedDate:              datePtr(r.ifpOrderDeniedDate),
		PartialPaymentDate:              datePtr(rec.PartialPaymentDate),
		FullFeePaid:                     rec.FullFeePaid,
		TerminatedDate:                  datePtr(rec.TerminatedDate),
	}
}

// dedupeCandidates removes exact (date, text) duplicates, keeping list order.
func dedupeCandidates(candidates []extract.UACandidate) []extract.UACandidate {
	seen := make(map[extract.UACandidate]bool, len(candidates))
	out := candidates[:0:0]
	for _, c := range candidates {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

func matchesAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// matchesAllGroups reports whether every alias group has at least one hit.
func matchesAllGroups(text string, groups [][]string) bool {
	for _, group := range groups {
		if !matchesAny(text, group) {
			return false
		}
	}
	return true
}

func datePtr(s string) *time.Time {
	t := util.ParseCivilDate(s)
	if t.IsZero() {
		return nil
	}
	return &t
}
