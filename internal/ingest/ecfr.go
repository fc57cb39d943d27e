package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hartlaw-ai/lexrag/internal/vectorstore"
)

const ecfrBaseURL = "https://www.ecfr.gov/api/search/v1"

// ECFRClient searches the Electronic Code of Federal Regulations.
type ECFRClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewECFRClient() *ECFRClient {
	return &ECFRClient{
		baseURL:    ecfrBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type ecfrResult struct {
	TitleNumber   json.Number `json:"title_number"`
	SectionNumber string      `json:"section_number"`
	SectionTitle  string      `json:"section_title"`
	EffectiveDate string      `json:"effective_date"`
	FullText      string      `json:"full_text"`
	Snippet       string      `json:"snippet"`
	HTMLURL       string      `json:"html_url"`
}

type ecfrResponse struct {
	Results []ecfrResult `json:"results"`
}

// SearchCFR queries the eCFR. A non-zero title restricts the search to one
// CFR title (e.g. 29 for Labor).
func (c *ECFRClient) SearchCFR(ctx context.Context, query string, title, maxResults int) ([]vectorstore.Document, error) {
	if maxResults <= 0 {
		maxResults = 20
	}
	perPage := maxResults
	if perPage > 100 {
		perPage = 100
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", strconv.Itoa(perPage))
	if title > 0 {
		params.Set("title", strconv.Itoa(title))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build ecfr request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ecfr request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ecfr returned status %d", resp.StatusCode)
	}

	var parsed ecfrResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode ecfr response: %w", err)
	}

	docs := make([]vectorstore.Document, 0, maxResults)
	for i, item := range parsed.Results {
		if i >= maxResults {
			break
		}
		docs = append(docs, parseCFRSection(item))
	}
	return docs, nil
}

func parseCFRSection(item ecfrResult) vectorstore.Document {
	title := item.TitleNumber.String()
	citation := "N/A"
	if title != "" && item.SectionNumber != "" {
		citation = fmt.Sprintf("%s CFR %s", title, item.SectionNumber)
	}

	text := item.FullText
	if text == "" {
		text = item.SectionTitle
	}

	name := item.SectionTitle
	if name == "" {
		name = "Unknown CFR Section"
	}

	return vectorstore.Document{
		ID:   fmt.Sprintf("ecfr_%s_%s", title, item.SectionNumber),
		Text: text,
		Metadata: vectorstore.Metadata{
			CaseName:     name,
			Citation:     citation,
			Court:        "ecfr",
			Jurisdiction: vectorstore.JurisdictionFederal,
			DateFiled:    item.EffectiveDate,
			URL:          item.HTMLURL,
			DocumentType: "regulation",
		}.WithDefaults(),
	}
}
