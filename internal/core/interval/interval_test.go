package interval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwhalen/go-docket-metrics/internal/core/model"
)

func day(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestTotalElapsedPriorityOrder(t *testing.T) {
	tests := []struct {
		name string
		ms   model.CaseMilestones
		want *int
	}{
		{
			name: "advisement_after_complaint",
			ms: model.CaseMilestones{
				ComplaintDate: day("2021-01-01"),
				UADate:        day("2021-02-27"),
			},
			want: intPtr(57),
		},
		{
			name: "never_under_advisement_uses_termination",
			ms: model.CaseMilestones{
				ComplaintDate:  day("2021-01-01"),
				TerminatedDate: day("2021-01-31"),
			},
			want: intPtr(30),
		},
		{
			name: "full_fee_paid_uses_payment",
			ms: model.CaseMilestones{
				ComplaintDate:      day("2021-01-01"),
				UADate:             day("2021-06-01"),
				FullFeePaid:        true,
				PartialPaymentDate: day("2021-01-15"),
			},
			want: intPtr(14),
		},
		{
			name: "no_trust_fund_dismissal",
			ms: model.CaseMilestones{
				ComplaintDate:                   day("2021-01-01"),
				UADate:                          day("2021-06-01"),
				DismissalDateForNoTrustFundStmt: day("2021-03-02"),
			},
			want: intPtr(60),
		},
		{
			name: "transferred_case_tolls_from_transfer",
			ms: model.CaseMilestones{
				ComplaintDate: day("2021-01-01"),
				TransferDate:  day("2021-02-01"),
				UADate:        day("2021-03-03"),
			},
			want: intPtr(30),
		},
		{
			name: "same_day_counts_as_one",
			ms: model.CaseMilestones{
				ComplaintDate: day("2021-01-01"),
				UADate:        day("2021-01-01"),
			},
			want: intPtr(1),
		},
		{
			name: "no_operands_yields_nil",
			ms:   model.CaseMilestones{ComplaintDate: day("2021-01-01")},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms := tt.ms
			Compute(&ms)
			if tt.want == nil {
				assert.Nil(t, ms.TotalElapsedDays)
				return
			}
			require.NotNil(t, ms.TotalElapsedDays)
			assert.Equal(t, *tt.want, *ms.TotalElapsedDays)
		})
	}
}

func TestSubIntervals(t *testing.T) {
	ms := model.CaseMilestones{
		ComplaintDate:       day("2021-01-01"),
		IFPDate:             day("2021-01-11"),
		IFPOrderGrantedDate: day("2021-02-10"),
		PartialPaymentDate:  day("2021-03-12"),
		UADate:              day("2021-04-01"),
	}
	Compute(&ms)
	assert.Equal(t, 10, ms.IFPSubmissionElapsedDays)
	assert.Equal(t, 30, ms.IFPOrderElapsedDays)
	assert.Equal(t, 30, ms.PaymentElapsedDays)
}

func TestSubIntervalsMissingOperands(t *testing.T) {
	ms := model.CaseMilestones{
		ComplaintDate: day("2021-01-01"),
		UADate:        day("2021-04-01"),
	}
	Compute(&ms)
	assert.Equal(t, 0, ms.IFPSubmissionElapsedDays)
	assert.Equal(t, 0, ms.IFPOrderElapsedDays)
	assert.Equal(t, 0, ms.PaymentElapsedDays)
}

func intPtr(n int) *int {
	return &n
}
