// Package interval computes elapsed-day metrics on a resolved milestone row.
// The total elapsed time follows a strict priority order over the resolved
// dates; sub-intervals are plain date differences with a zero sentinel when
// either operand is missing.
package interval

import (
	"time"

	"github.com/jwhalen/go-docket-metrics/internal/core/model"
	"github.com/jwhalen/go-docket-metrics/internal/util"
)

// Compute fills the elapsed-time fields on ms in place. TotalElapsedDays
// stays nil when no branch of the priority order has both operands.
func Compute(ms *model.CaseMilestones) {
	ms.TotalElapsedDays = totalElapsed(ms)
	ms.IFPSubmissionElapsedDays = diffOrZero(ms.ComplaintDate, ms.IFPDate)
	ms.IFPOrderElapsedDays = diffOrZero(ms.IFPDate, ms.IFPOrderGrantedDate)
	ms.PaymentElapsedDays = diffOrZero(ms.IFPOrderGrantedDate, ms.PartialPaymentDate)
}

// totalElapsed applies the priority order. Same-day milestones count as one
// day: a zero difference is normalized to 1.
func totalElapsed(ms *model.CaseMilestones) *int {
	var days *int
	switch {
	case ms.UADate == nil:
		days = diff(ms.ComplaintDate, ms.TerminatedDate)
	case ms.FullFeePaid:
		days = diff(ms.ComplaintDate, ms.PartialPaymentDate)
	case ms.DismissalDateForNoTrustFundStmt != nil:
		days = diff(ms.ComplaintDate, ms.DismissalDateForNoTrustFundStmt)
	case ms.TransferDate != nil && ms.ComplaintDate != nil && ms.TransferDate.After(*ms.ComplaintDate):
		days = diff(ms.TransferDate, ms.UADate)
	default:
		days = diff(ms.ComplaintDate, ms.UADate)
	}
	if days != nil && *days == 0 {
		one := 1
		days = &one
	}
	return days
}

func diff(from, to *time.Time) *int {
	if from == nil || to == nil {
		return nil
	}
	d := util.DaysBetween(*from, *to)
	return &d
}

func diffOrZero(from, to *time.Time) int {
	if d := diff(from, to); d != nil {
		return *d
	}
	return 0
}
