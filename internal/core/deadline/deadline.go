// Package deadline resolves the scheduling milestones of a case from its
// deadlines and hearings rows.
package deadline

import (
	"time"

	"github.com/jwhalen/go-docket-metrics/internal/core/model"
	"github.com/jwhalen/go-docket-metrics/internal/util"
)

// Resolve builds the CaseDeadlines record for one case. Deadlines and
// hearings arrive as separate row sets because the API serves them under
// different event classes. Returns nil when no dispositive deadline was ever
// set: without one the case never reached a scheduling order and the record
// carries no signal.
func Resolve(caseID int, deadlines, hearings []model.ScheduledEvent) *model.CaseDeadlines {
	cd := &model.CaseDeadlines{CaseID: caseID}

	cd.PretrialConfDate = firstOfType(deadlines, "pptcnf")
	cd.DispositiveDeadline = firstOfType(deadlines, "disp")

	// A limine deadline is usually typed "limine" but older scheduling
	// orders used the preliminary variant.
	cd.LimineDeadline = firstOfType(deadlines, "limine")
	if cd.LimineDeadline == nil {
		cd.LimineDeadline = firstOfType(deadlines, "Plimine")
	}

	cd.FinalPretrialDate = firstOfType(hearings, "fptcnf")
	if cd.FinalPretrialDate == nil {
		cd.FinalPretrialDate = firstOfType(hearings, "Tfptcnf")
	}

	// Trials get continued; the last jury selection and trial setting is
	// the operative one.
	cd.TrialDate = lastOfType(hearings, "jst")

	if cd.DispositiveDeadline == nil {
		return nil
	}
	return cd
}

func firstOfType(events []model.ScheduledEvent, eventType string) *time.Time {
	for _, ev := range events {
		if ev.EventType == eventType {
			return parseSet(ev.DateSet)
		}
	}
	return nil
}

func lastOfType(events []model.ScheduledEvent, eventType string) *time.Time {
	var match *model.ScheduledEvent
	for i := range events {
		if events[i].EventType == eventType {
			match = &events[i]
		}
	}
	if match == nil {
		return nil
	}
	return parseSet(match.DateSet)
}

func parseSet(s string) *time.Time {
	t := util.ParseCivilDate(s)
	if t.IsZero() {
		return nil
	}
	return &t
}
