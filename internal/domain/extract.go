// Package domain extracts residue-range annotations (domains, regions,
// repeats) from UniProt structural features.
package domain

import (
	"sort"
	"strings"

	"github.com/varviz3d/varviz3d/internal/uniprot"
)

// AcceptedTypes is the fixed set of structural/region-like feature types
// that count as domains for visualization.
var AcceptedTypes = map[string]bool{
	"Domain":             true,
	"Region":             true,
	"DNA binding":        true,
	"Zinc finger":        true,
	"Repeat":             true,
	"Coiled coil":        true,
	"Topological domain": true,
	"Transmembrane":      true,
}

// Feature is one residue-range annotation, start <= end, both 1-based.
type Feature struct {
	Start       int    `json:"start"`
	End         int    `json:"end"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// Extract filters features to the accepted types, drops records with
// missing or inverted bounds, and returns the rest sorted ascending by
// (start, end). Descriptions default to the feature type when absent.
func Extract(features []uniprot.FeatureRecord) []Feature {
	var out []Feature
	for _, f := range features {
		if !AcceptedTypes[f.Type] {
			continue
		}
		if f.Start < 1 || f.End < 1 || f.End < f.Start {
			continue
		}
		desc := strings.TrimSpace(f.Description)
		if desc == "" {
			desc = f.Type
		}
		out = append(out, Feature{
			Start:       f.Start,
			End:         f.End,
			Description: desc,
			Type:        f.Type,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].End < out[j].End
	})
	return out
}
