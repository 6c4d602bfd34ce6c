package document

import (
	"encoding/json"
	"fmt"
)

// Response is the pagination envelope the search endpoints return.
//
// Pages are 1-based. NextPage is nil exactly when Page == TotalPages, and
// PrevPage is nil on the first page.
type Response struct {
	Page             int        `json:"page"`
	ResultsPerPage   int        `json:"results_per_page"`
	ResultsSize      int        `json:"results_size"`
	TotalResultsSize int        `json:"total_results_size"`
	TotalPages       int        `json:"total_pages"`
	NextPage         *string    `json:"next_page"`
	PrevPage         *string    `json:"prev_page"`
	Results          []Document `json:"results"`
}

// DecodeResponse decodes a raw search-response body into the typed
// envelope. Decoding is atomic: any malformed document or envelope
// inconsistency fails the whole decode.
func DecodeResponse(body []byte) (*Response, error) {
	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	if resp.Page < 1 {
		return nil, fmt.Errorf("search response has invalid page %d", resp.Page)
	}
	if len(resp.Results) != resp.ResultsSize {
		return nil, fmt.Errorf("search response claims %d results but carries %d",
			resp.ResultsSize, len(resp.Results))
	}
	if resp.NextPage == nil && resp.Page != resp.TotalPages {
		return nil, fmt.Errorf(
			"search response has no next_page on page %d of %d",
			resp.Page, resp.TotalPages)
	}
	if resp.NextPage != nil && resp.Page == resp.TotalPages {
		return nil, fmt.Errorf(
			"search response carries a next_page on the last page %d", resp.Page)
	}

	return &resp, nil
}
