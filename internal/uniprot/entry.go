package uniprot

import (
	"context"
	"encoding/json"
	"fmt"
)

// FeatureRecord is one feature from a UniProt KB entry, flattened to the
// fields the pipeline consumes. Start or End of 0 means the bound was
// missing or unparseable.
type FeatureRecord struct {
	Type        string
	Description string
	Start       int
	End         int
	WildType    string
	Alternative string
}

// Entry holds the subset of a UniProt KB entry the pipeline needs.
type Entry struct {
	Accession string
	Length    int
	Features  []FeatureRecord
}

// kbEntry mirrors the UniProt KB JSON entry shape.
type kbEntry struct {
	PrimaryAccession string `json:"primaryAccession"`
	Sequence         struct {
		Value string `json:"value"`
	} `json:"sequence"`
	Features []kbFeature `json:"features"`
}

type kbFeature struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Location    struct {
		Start struct {
			Value int `json:"value"`
		} `json:"start"`
		End struct {
			Value int `json:"value"`
		} `json:"end"`
	} `json:"location"`
	WildType            string          `json:"wildType"`
	AlternativeSequence json.RawMessage `json:"alternativeSequence"`
}

// alternative extracts the alternate residue string. The field is a plain
// string in older payloads and an object with originalSequence and
// alternativeSequences in current ones; both shapes are accepted.
func (f *kbFeature) alternative() (wild, alt string) {
	wild = f.WildType
	if len(f.AlternativeSequence) == 0 {
		return wild, ""
	}
	var s string
	if err := json.Unmarshal(f.AlternativeSequence, &s); err == nil {
		return wild, s
	}
	var obj struct {
		OriginalSequence     string   `json:"originalSequence"`
		AlternativeSequences []string `json:"alternativeSequences"`
	}
	if err := json.Unmarshal(f.AlternativeSequence, &obj); err != nil {
		return wild, ""
	}
	if wild == "" {
		wild = obj.OriginalSequence
	}
	if len(obj.AlternativeSequences) > 0 {
		alt = obj.AlternativeSequences[0]
	}
	return wild, alt
}

// Entry fetches a UniProt KB entry: sequence length plus all features.
func (c *Client) Entry(ctx context.Context, accession string) (*Entry, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/%s.json", c.uniprotBase, accession))
	if err != nil {
		return nil, err
	}

	var raw kbEntry
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode entry %s: %w", accession, err)
	}

	e := &Entry{
		Accession: raw.PrimaryAccession,
		Length:    len(raw.Sequence.Value),
	}
	if e.Accession == "" {
		e.Accession = accession
	}
	for i := range raw.Features {
		f := &raw.Features[i]
		wild, alt := f.alternative()
		e.Features = append(e.Features, FeatureRecord{
			Type:        f.Type,
			Description: f.Description,
			Start:       f.Location.Start.Value,
			End:         f.Location.End.Value,
			WildType:    wild,
			Alternative: alt,
		})
	}
	return e, nil
}

// SequenceLength fetches just the sequence length for an accession.
// This is the one lookup the pipeline treats as fatal when it fails.
func (c *Client) SequenceLength(ctx context.Context, accession string) (int, error) {
	e, err := c.Entry(ctx, accession)
	if err != nil {
		return 0, fmt.Errorf("sequence length for %s: %w", accession, err)
	}
	return e.Length, nil
}
