package model

// RawDocketRow is one row of the docket-entry payload as returned by the
// case-management API. A logical docket entry may arrive as several rows
// sharing a sequence number, each carrying a fragment of the docket text.
type RawDocketRow struct {
	CaseID        int     `json:"de_caseid"`
	SeqNo         int     `json:"de_seqno"`
	DocumentNum   *int    `json:"de_document_num"`
	EntryType     string  `json:"de_type"`
	PartyType     string  `json:"dp_type"`
	PartySubType  string  `json:"dp_sub_type"`
	PartySeqNo    int     `json:"dp_seqno"`
	RelatedSeqPtr *int    `json:"dp_dpseqno_ptr"`
	FiledDate     string  `json:"de_date_filed"`
	Text          string  `json:"dt_text"`
}

// DocketEntry is one normalized docket entry: exactly one row per sequence
// number, categorical fields trimmed, text lower-cased and merged across the
// raw fragments, nullable numerics coerced to 0.
type DocketEntry struct {
	CaseID        int    `json:"caseId"`
	SeqNo         int    `json:"seqNo"`
	DocumentNum   int    `json:"documentNum"`
	EntryType     string `json:"entryType"`
	PartyType     string `json:"partyType"`
	PartySubType  string `json:"partySubType"`
	PartySeqNo    int    `json:"partySeqNo"`
	RelatedSeqPtr int    `json:"relatedSeqPtr"`
	FiledDate     string `json:"filedDate"` // ISO YYYY-MM-DD, no time component
	Text          string `json:"text"`
}

// ScheduledEvent is one row of the deadlines/hearings payload.
type ScheduledEvent struct {
	CaseID        int    `json:"sd_caseid"`
	EventType     string `json:"sd_type"`
	EventClass    string `json:"sd_class"`
	DateSet       string `json:"sd_dtset"`
	DateSatisfied string `json:"sd_dtsatis"`
}

// CaseMeta is the per-case metadata record supplied by the civil-cases
// endpoint, after nature-of-suit grouping has been applied.
type CaseMeta struct {
	CaseID         int    `json:"caseId"`
	CaseNumber     string `json:"caseNumber"`
	Judge          string `json:"judge"`
	Group          string `json:"group"`
	NatureOfSuit   int    `json:"natureOfSuit"`
	FiledDate      string `json:"filedDate"`
	TerminatedDate string `json:"terminatedDate"`
	IsProSe        bool   `json:"isProSe"`
}
