// Package queue runs corpus ingestion in the background so API calls that
// trigger a fetch return immediately.
package queue

const (
	TypeCorpusFetch      = "corpus:fetch"
	TypeRegulationFetch  = "regulation:fetch"
	TypeSampleCorpusLoad = "corpus:load_samples"
)

type CorpusFetchPayload struct {
	Topics       []string `json:"topics"`
	DocsPerTopic int      `json:"docs_per_topic"`
}

type RegulationFetchPayload struct {
	Query      string `json:"query"`
	Title      int    `json:"title,omitempty"` // CFR title, 0 searches all
	MaxResults int    `json:"max_results"`
}
