package extract

import (
	"github.com/jwhalen/go-docket-metrics/internal/core/model"
)

// PretrialConference records the first pretrial-conference minute entry. The
// date stays in raw string form until final resolution.
func PretrialConference(rec *CaseRecord, entries []model.DocketEntry) {
	p := withSubType(entries, "ptcnf")
	if len(p) > 0 {
		rec.InitialPretrialConferenceDate = p[0].FiledDate
	}
}

// Reopens collects case-reopen entries in ascending date order, deduplicated
// by sequence number. Two reopens docketed the same day stay distinct.
func Reopens(rec *CaseRecord, entries []model.DocketEntry) {
	reopen := dedupeBySeqNo(withSubType(entries, "ropncs"))
	if len(reopen) == 0 {
		return
	}
	sortByFiledDate(reopen)
	for _, e := range reopen {
		rec.ReopenDates = append(rec.ReopenDates, e.FiledDate)
	}
}

// Judgments collects judgment entries, deduplicated by docket-party sequence
// number, ascending by date.
func Judgments(rec *CaseRecord, entries []model.DocketEntry) {
	jgm := dedupeByPartySeqNo(withSubType(entries, "jgm"))
	if len(jgm) == 0 {
		return
	}
	sortByFiledDate(jgm)
	for _, e := range jgm {
		rec.Judgments = append(rec.Judgments, JudgmentCandidate{
			Date:  e.FiledDate,
			SeqNo: e.PartySeqNo,
			Text:  e.Text,
		})
	}
}

// NoticeOfAppeal records the latest notice-of-appeal date.
func NoticeOfAppeal(rec *CaseRecord, entries []model.DocketEntry) {
	noa := dedupeByPartySeqNo(withSubType(entries, "ntcapp"))
	if len(noa) == 0 {
		return
	}
	sortByFiledDate(noa)
	rec.NoticeOfAppealDate = noa[len(noa)-1].FiledDate
}

// WardenLetter records the first warden-letter date.
func WardenLetter(rec *CaseRecord, entries []model.DocketEntry) {
	w := withSubType(entries, "wardltr")
	if len(w) > 0 {
		rec.WardenLetterDate = w[0].FiledDate
	}
}
