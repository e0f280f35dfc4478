package uniprot

import (
	"context"
	"encoding/json"
	"fmt"
)

// Xref is a cross-reference attached to a variation record (e.g. dbSNP).
type Xref struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// VariationRecord is one record from the Proteins API variation endpoint.
// Position 0 means the record carried no usable position.
type VariationRecord struct {
	Position              int      `json:"position"`
	WildType              string   `json:"wildType"`
	AlternativeSequence   string   `json:"alternativeSequence"`
	ClinicalSignificances []string `json:"clinicalSignificances"`
	Xrefs                 []Xref   `json:"xrefs"`
}

// Variation fetches structured variant records with clinical-significance
// tokens from the Proteins API. The endpoint has returned both a bare array
// and an object wrapping a "variants" array over time; both are accepted.
func (c *Client) Variation(ctx context.Context, accession string) ([]VariationRecord, error) {
	url := fmt.Sprintf("%s/variation?size=-1&accession=%s", c.proteinsBase, accession)
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var records []VariationRecord
	if err := json.Unmarshal(body, &records); err == nil {
		return records, nil
	}

	var wrapped struct {
		Variants []VariationRecord `json:"variants"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("decode variation for %s: %w", accession, err)
	}
	return wrapped.Variants, nil
}
