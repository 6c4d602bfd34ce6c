// Package document holds the typed result model for form queries: the
// pagination envelope returned by the search endpoints and the documents it
// carries.
//
// Fragment content (the per-document "data" payload) is deliberately kept
// opaque here; DecodeFragments hands it to caller-defined structs.
package document

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
)

// NoSlug is the sentinel Slug returns for a document with no slugs.
const NoSlug = "-"

// AlternateLanguage is a stub pointing at a translation of a document.
type AlternateLanguage struct {
	ID   string  `json:"id"`
	UID  *string `json:"uid"`
	Type string  `json:"type"`
	Lang string  `json:"lang"`
}

// Document is one entry in a query result.
type Document struct {
	ID   string  `json:"id"`
	UID  *string `json:"uid"`
	Type string  `json:"type"`
	Href string  `json:"href"`
	Tags []string
	// Slugs holds the document's URL slugs, most recent first.
	Slugs                []string
	FirstPublicationDate *time.Time
	LastPublicationDate  *time.Time
	Lang                 string
	AlternateLanguages   []AlternateLanguage

	// Data is the opaque fragment payload, keyed as the service sent it.
	Data map[string]json.RawMessage
}

// Slug returns the document's current slug, or NoSlug when it has none.
func (d *Document) Slug() string {
	if len(d.Slugs) == 0 {
		return NoSlug
	}
	return d.Slugs[0]
}

// rawDocument mirrors the wire shape. Publication dates come in several
// timestamp formats depending on repository age, so they are decoded
// leniently rather than bound to one layout.
type rawDocument struct {
	ID                   string                     `json:"id"`
	UID                  *string                    `json:"uid"`
	Type                 string                     `json:"type"`
	Href                 string                     `json:"href"`
	Tags                 []string                   `json:"tags"`
	Slugs                []string                   `json:"slugs"`
	FirstPublicationDate *string                    `json:"first_publication_date"`
	LastPublicationDate  *string                    `json:"last_publication_date"`
	Lang                 string                     `json:"lang"`
	AlternateLanguages   []AlternateLanguage        `json:"alternate_languages"`
	Data                 map[string]json.RawMessage `json:"data"`
}

// UnmarshalJSON decodes a document, failing atomically: on any error the
// receiver is left unmodified.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.ID == "" {
		return fmt.Errorf("document is missing required field \"id\"")
	}
	if raw.Type == "" {
		return fmt.Errorf("document %s is missing required field \"type\"", raw.ID)
	}

	first, err := parseTimestamp(raw.FirstPublicationDate)
	if err != nil {
		return fmt.Errorf("document %s: bad first_publication_date: %w", raw.ID, err)
	}
	last, err := parseTimestamp(raw.LastPublicationDate)
	if err != nil {
		return fmt.Errorf("document %s: bad last_publication_date: %w", raw.ID, err)
	}

	*d = Document{
		ID:                   raw.ID,
		UID:                  raw.UID,
		Type:                 raw.Type,
		Href:                 raw.Href,
		Tags:                 raw.Tags,
		Slugs:                raw.Slugs,
		FirstPublicationDate: first,
		LastPublicationDate:  last,
		Lang:                 raw.Lang,
		AlternateLanguages:   raw.AlternateLanguages,
		Data:                 raw.Data,
	}
	return nil
}

func parseTimestamp(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := dateparse.ParseAny(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
