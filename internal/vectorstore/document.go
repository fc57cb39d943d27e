package vectorstore

import "strings"

// Jurisdiction values form a closed set. Ingestion normalizes everything
// else to JurisdictionUnknown.
const (
	JurisdictionFederal = "federal"
	JurisdictionState   = "state"
	JurisdictionUnknown = "unknown"

	// FilterAll disables jurisdiction filtering in Search.
	FilterAll = "all"
)

// Metadata carries the legal attributes of an indexed document. Fields are
// never empty-by-omission: WithDefaults fills sentinel values so downstream
// formatting is total.
type Metadata struct {
	CaseName     string `json:"case_name"`
	Citation     string `json:"citation"`
	Court        string `json:"court"`
	Jurisdiction string `json:"jurisdiction"`
	DateFiled    string `json:"date_filed"`
	DocumentType string `json:"document_type"`
	URL          string `json:"url"`
}

// WithDefaults returns a copy with sentinel values in place of missing
// fields and the jurisdiction normalized to the closed set.
func (m Metadata) WithDefaults() Metadata {
	if m.CaseName == "" {
		m.CaseName = "Unknown Case"
	}
	if m.Citation == "" {
		m.Citation = "N/A"
	}
	if m.Court == "" {
		m.Court = JurisdictionUnknown
	}
	if m.DocumentType == "" {
		m.DocumentType = "case_law"
	}
	m.Jurisdiction = NormalizeJurisdiction(m.Jurisdiction)
	return m
}

// NormalizeJurisdiction maps free-form jurisdiction strings onto the closed
// set {federal, state, unknown}.
func NormalizeJurisdiction(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case JurisdictionFederal:
		return JurisdictionFederal
	case JurisdictionState:
		return JurisdictionState
	default:
		return JurisdictionUnknown
	}
}

// Document is the unit handed to Store.Add. ID is optional; missing IDs are
// generated from insertion order.
type Document struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Metadata Metadata `json:"metadata"`
}

// Record is a document paired with its embedding, ready for the index.
type Record struct {
	ID        string
	Text      string
	Metadata  Metadata
	Embedding []float32
}

// SearchResult is one ranked hit. Distance is a non-negative dissimilarity
// score; 0 means identical.
type SearchResult struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Metadata Metadata `json:"metadata"`
	Distance float64  `json:"distance"`
}

// Stats summarizes the live state of a collection.
type Stats struct {
	TotalDocuments int            `json:"total_documents"`
	ByJurisdiction map[string]int `json:"by_jurisdiction"`
}

// AddReport states how many of the requested documents were actually
// persisted. Added < Requested after a partial batch failure.
type AddReport struct {
	Requested int          `json:"requested"`
	Added     int          `json:"added"`
	Failed    []BatchError `json:"failed,omitempty"`
}

// BatchError records one failed batch by its document offsets.
type BatchError struct {
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Reason string `json:"reason"`
}
