// Package variant fetches raw variant records for a protein and classifies
// them into per-residue significance classes. It implements the
// primary-then-fallback source chain: the EBI Proteins API variation
// endpoint first, UniProt natural-variant features second.
package variant

import (
	"github.com/varviz3d/varviz3d/internal/significance"
)

// Provenance records which upstream produced a variant record.
type Provenance string

const (
	FromPrimary  Provenance = "primary_source"
	FromFallback Provenance = "fallback_source"
)

// Source labels for FetchResult, surfaced to callers for diagnostics.
const (
	SourcePrimary  = "primary"
	SourceFallback = "fallback"
	SourceError    = "error"
)

// ClassifiedVariant is one variant observation pinned to a residue.
// Position is 1-based and already validated against the sequence length.
type ClassifiedVariant struct {
	Position    int                `json:"pos"`
	WildType    string             `json:"from,omitempty"`
	Alternative string             `json:"to,omitempty"`
	Class       significance.Class `json:"class"`
	Provenance  Provenance         `json:"source"`
}

// FetchResult is the outcome of fetching variants for one accession.
// Source is "primary", "fallback", or "error"; downstream aggregation
// proceeds identically regardless. When both sources fail, Length is 0
// and Items is empty so the aggregator produces all-zero tracks.
type FetchResult struct {
	Length int                 `json:"length"`
	Items  []ClassifiedVariant `json:"items"`
	Source string              `json:"source"`
}
