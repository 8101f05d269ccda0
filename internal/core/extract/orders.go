package extract

import (
	"github.com/jwhalen/go-docket-metrics/internal/core/model"
)

// LeaveToProceed collects leave orders. The primary rule matches the "leave"
// subtype, deduplicated by docket-party sequence number. When a court never
// dockets a dedicated leave event, the fallback scans every order's text for
// the literal phrase.
func LeaveToProceed(rec *CaseRecord, entries []model.DocketEntry) {
	ltp := dedupeByPartySeqNo(withSubType(entries, "leave"))
	if len(ltp) > 0 {
		for _, e := range ltp {
			rec.LeaveCandidates = append(rec.LeaveCandidates, LeaveCandidate{
				Date:  e.FiledDate,
				SeqNo: e.PartySeqNo,
				Text:  e.Text,
			})
		}
		return
	}

	var orders []model.DocketEntry
	for _, e := range entries {
		if e.PartyType == "order" {
			orders = append(orders, e)
		}
	}
	seen := make(map[string]bool)
	for _, e := range orders {
		if !containsAny(e.Text, []string{"leave to proceed"}) {
			continue
		}
		key := e.FiledDate + "|" + e.Text
		if seen[key] {
			continue
		}
		seen[key] = true
		rec.LeaveCandidates = append(rec.LeaveCandidates, LeaveCandidate{
			Date:  e.FiledDate,
			SeqNo: e.SeqNo,
			Text:  e.Text,
		})
	}
}

// OrderLinks joins each order carrying a related-sequence pointer back to
// the motion it disposes of — a self-join on the case timeline keyed by the
// docket-party sequence number. The pairs explain why an order issued.
func OrderLinks(rec *CaseRecord, entries []model.DocketEntry) {
	byPartySeq := make(map[int]model.DocketEntry, len(entries))
	for _, e := range entries {
		if _, ok := byPartySeq[e.PartySeqNo]; !ok {
			byPartySeq[e.PartySeqNo] = e
		}
	}

	for _, e := range entries {
		if e.PartyType != "order" || e.RelatedSeqPtr == 0 {
			continue
		}
		link := OrderMotionLink{
			OrderSeqNo:   e.SeqNo,
			OrderSubType: e.PartySubType,
			OrderDate:    e.FiledDate,
			OrderText:    e.Text,
		}
		if motion, ok := byPartySeq[e.RelatedSeqPtr]; ok {
			link.MotionSeqNo = motion.SeqNo
			link.MotionSubType = motion.PartySubType
			link.MotionDate = motion.FiledDate
			link.MotionText = motion.Text
		}
		rec.OrderLinks = append(rec.OrderLinks, link)
	}
}

// Reconsiderations collects motions for reconsideration (motion/recon).
func Reconsiderations(rec *CaseRecord, entries []model.DocketEntry) {
	var recon []model.DocketEntry
	for _, e := range entries {
		if e.PartyType == "motion" && e.PartySubType == "recon" {
			recon = append(recon, e)
		}
	}
	if len(recon) == 0 {
		return
	}
	recon = dedupeByPartySeqNo(recon)
	sortByFiledDate(recon)
	for _, e := range recon {
		rec.Reconsiderations = append(rec.Reconsiderations, MotionCandidate{
			Date:  e.FiledDate,
			SeqNo: e.PartySeqNo,
			Text:  e.Text,
		})
	}
}
