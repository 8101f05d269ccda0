// Package formatter renders resolved case rows to the terminal: a condensed
// table for interactive use, CSV and JSON for export, and a summary view.
package formatter

import (
	"strconv"

	"github.com/jwhalen/go-docket-metrics/internal/core/model"
	"github.com/jwhalen/go-docket-metrics/internal/util"
)

// CaseRow is one exportable output row: the resolved milestones plus the
// scheduling deadlines merged by case id. Deadlines is nil for cases that
// never reached a scheduling order.
type CaseRow struct {
	Milestones model.CaseMilestones  `json:"milestones"`
	Deadlines  *model.CaseDeadlines  `json:"deadlines,omitempty"`
}

// fullHeaders is the column order of the flat export record.
var fullHeaders = []string{
	"caseid", "case_type", "case_number", "judge", "nature_of_suit", "case_group",
	"complaint_date", "complaint_dismissal_date",
	"amended_complaint_date", "amended_complaint_count", "case_reopen_count",
	"ifp_date", "screening_date", "ua_date", "ltp_date",
	"transfer_date", "notice_of_appeal_date",
	"initial_pretrial_conference_date",
	"dismissal_date_prior_to_screening", "dismissal_reason_prior_to_screening",
	"judgment_without_prejudice_date",
	"trust_fund_received_date", "dismissal_date_for_no_trust_fund_statement",
	"warden_letter_date", "order_to_submit_trust_fund_date",
	"ifp_order_granted_date", "ifp_order_denied_date",
	"partial_payment_date", "full_fee_paid", "terminated_date",
	"total_elapsed_days", "ifp_submission_elapsed_days",
	"ifp_order_elapsed_days", "payment_elapsed_days",
	"pptcnf_date", "dispositive_deadline", "limine_deadline",
	"fptcnf_date", "trial_date",
}

// record flattens the row in fullHeaders order. Unset dates render empty.
func (r CaseRow) record() []string {
	ms := r.Milestones
	fields := []string{
		strconv.Itoa(ms.CaseID),
		ms.CaseType,
		ms.CaseNumber,
		ms.Judge,
		strconv.Itoa(ms.NatureOfSuit),
		ms.CaseGroup,
		util.FormatCivilDate(ms.ComplaintDate),
		util.FormatCivilDate(ms.ComplaintDismissalDate),
		util.FormatCivilDate(ms.AmendedComplaintDate),
		strconv.Itoa(ms.AmendedComplaintCount),
		strconv.Itoa(ms.CaseReopenCount),
		util.FormatCivilDate(ms.IFPDate),
		util.FormatCivilDate(ms.ScreeningDate),
		util.FormatCivilDate(ms.UADate),
		util.FormatCivilDate(ms.LTPDate),
		util.FormatCivilDate(ms.TransferDate),
		util.FormatCivilDate(ms.NoticeOfAppealDate),
		util.FormatCivilDate(ms.InitialPretrialConferenceDate),
		util.FormatCivilDate(ms.DismissalDatePriorToScreening),
		ms.DismissalReasonPriorToScreening,
		util.FormatCivilDate(ms.JudgmentWithoutPrejudiceDate),
		util.FormatCivilDate(ms.TrustFundReceivedDate),
		util.FormatCivilDate(ms.DismissalDateForNoTrustFundStmt),
		util.FormatCivilDate(ms.WardenLetterDate),
		util.FormatCivilDate(ms.OrderToSubmitTrustFundDate),
		util.FormatCivilDate(ms.IFPOrderGrantedDate),
		util.FormatCivilDate(ms.IFPOrderDeniedDate),
		util.FormatCivilDate(ms.PartialPaymentDate),
		strconv.FormatBool(ms.FullFeePaid),
		util.FormatCivilDate(ms.TerminatedDate),
		formatIntPtr(ms.TotalElapsedDays),
		strconv.Itoa(ms.IFPSubmissionElapsedDays),
		strconv.Itoa(ms.IFPOrderElapsedDays),
		strconv.Itoa(ms.PaymentElapsedDays),
	}

	if r.Deadlines != nil {
		fields = append(fields,
			util.FormatCivilDate(r.Deadlines.PretrialConfDate),
			util.FormatCivilDate(r.Deadlines.DispositiveDeadline),
			util.FormatCivilDate(r.Deadlines.LimineDeadline),
			util.FormatCivilDate(r.Deadlines.FinalPretrialDate),
			util.FormatCivilDate(r.Deadlines.TrialDate),
		)
	} else {
		fields = append(fields, "", "", "", "", "")
	}
	return fields
}

func formatIntPtr(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}
