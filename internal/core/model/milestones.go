package model

import (
	"fmt"
	"time"
)

// DismissalReason is the closed set of docket subtypes that terminate a case
// before screening.
type DismissalReason string

const (
	DismissalVoluntary        DismissalReason = "voldism"
	DismissalNoTrustFundStmt  DismissalReason = "termpscs"
	DismissalCaseTerminated   DismissalReason = "termcs"
	DismissalComplaintDismiss DismissalReason = "dismcmp"
)

// Label returns the human-readable description for reports.
func (r DismissalReason) Label() string {
	switch r {
	case DismissalVoluntary:
		return "Voluntary Dismissal"
	case DismissalNoTrustFundStmt:
		return "No Trust Fund Statement"
	case DismissalCaseTerminated:
		return "Civil Case Terminated"
	case DismissalComplaintDismiss:
		return "Complaint Dismissed"
	}
	return ""
}

// ParseDismissalReason validates a docket subtype against the closed set.
func ParseDismissalReason(subtype string) (DismissalReason, error) {
	r := DismissalReason(subtype)
	if r.Label() == "" {
		return "", fmt.Errorf("unknown dismissal subtype %q", subtype)
	}
	return r, nil
}

// CaseMilestones is the immutable per-case output record. Every date field is
// nil until its resolution rule fires; candidate lists never appear here.
type CaseMilestones struct {
	CaseID       int    `json:"caseid"`
	CaseType     string `json:"case_type"`
	CaseNumber   string `json:"case_number,omitempty"`
	Judge        string `json:"judge,omitempty"`
	NatureOfSuit int    `json:"nature_of_suit,omitempty"`
	CaseGroup    string `json:"case_group,omitempty"`

	ComplaintDate          *time.Time `json:"complaint_date"`
	ComplaintDismissalDate *time.Time `json:"complaint_dismissal_date"`
	AmendedComplaintDate   *time.Time `json:"amended_complaint_date"`
	AmendedComplaintCount  int        `json:"amended_complaint_count"`
	CaseReopenCount        int        `json:"case_reopen_count"`
	IFPDate                *time.Time `json:"ifp_date"`
	ScreeningDate          *time.Time `json:"screening_date"`
	UADate                 *time.Time `json:"ua_date"`
	LTPDate                *time.Time `json:"ltp_date"`
	TransferDate           *time.Time `json:"transfer_date"`
	NoticeOfAppealDate     *time.Time `json:"notice_of_appeal_date"`

	InitialPretrialConferenceDate *time.Time `json:"initial_pretrial_conference_date"`
	DismissalDatePriorToScreening *time.Time `json:"dismissal_date_prior_to_screening"`
	DismissalReasonPriorToScreening string   `json:"dismissal_reason_prior_to_screening,omitempty"`
	JudgmentWithoutPrejudiceDate  *time.Time `json:"judgment_without_prejudice_date"`

	TrustFundReceivedDate              *time.Time `json:"trust_fund_received_date"`
	DismissalDateForNoTrustFundStmt    *time.Time `json:"dismissal_date_for_no_trust_fund_statement"`
	WardenLetterDate                   *time.Time `json:"warden_letter_date"`
	OrderToSubmitTrustFundDate         *time.Time `json:"order_to_submit_trust_fund_date"`
	IFPOrderGrantedDate                *time.Time `json:"ifp_order_granted_date"`
	IFPOrderDeniedDate                 *time.Time `json:"ifp_order_denied_date"`
	PartialPaymentDate                 *time.Time `json:"partial_payment_date"`
	FullFeePaid                        bool       `json:"full_fee_paid"`
	TerminatedDate                     *time.Time `json:"terminated_date"`

	// Elapsed-time metrics, in whole days. TotalElapsedDays is nil when no
	// branch of the priority chain applies.
	TotalElapsedDays         *int `json:"total_elapsed_days"`
	IFPSubmissionElapsedDays int  `json:"ifp_submission_elapsed_days"`
	IFPOrderElapsedDays      int  `json:"ifp_order_elapsed_days"`
	PaymentElapsedDays       int  `json:"payment_elapsed_days"`
}

// CaseDeadlines is the parallel per-case record built from the
// deadlines/hearings source and merged into the output by caseid.
type CaseDeadlines struct {
	CaseID             int        `json:"caseid"`
	PretrialConfDate   *time.Time `json:"pptcnf_date"`
	DispositiveDeadline *time.Time `json:"dispositive_deadline"`
	LimineDeadline     *time.Time `json:"limine_deadline"`
	FinalPretrialDate  *time.Time `json:"fptcnf_date"`
	TrialDate          *time.Time `json:"trial_date"`
}
