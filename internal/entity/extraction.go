package entity

import (
	"time"

	"github.com/google/uuid"
)

// ExtractionConfidence is the extractor's self-reported confidence per section.
type ExtractionConfidence struct {
	Header    float64 `json:"header_confidence"`
	LineItems float64 `json:"line_items_confidence"`
	Overall   float64 `json:"overall_confidence"`
}

// Extraction is one extracted document: cleaned header and line items plus
// provenance, as persisted in the local extraction store.
type Extraction struct {
	ID         uuid.UUID            `json:"id"`
	SourceName string               `json:"source_name,omitempty"`
	Model      string               `json:"extraction_model,omitempty"`
	Header     Header               `json:"header"`
	LineItems  []LineItem           `json:"line_items"`
	Confidence ExtractionConfidence `json:"extraction_confidence"`
	CreatedAt  time.Time            `json:"created_at"`
}
