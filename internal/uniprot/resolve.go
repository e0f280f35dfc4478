package uniprot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// HumanTaxonID is the NCBI taxonomy ID for Homo sapiens, the default
// organism for gene-symbol resolution.
const HumanTaxonID = 9606

// Candidate is one UniProt entry matching a gene-symbol query.
type Candidate struct {
	Accession   string   `json:"accession"`
	EntryType   string   `json:"entryType"`
	ProteinName string   `json:"proteinName"`
	UniProtkbID string   `json:"uniProtkbId"`
	Genes       []string `json:"genes"`
}

// ResolveResult holds the best accession for a gene symbol plus up to ten
// ranked alternatives. Best is nil when nothing matched.
type ResolveResult struct {
	Query        string      `json:"query"`
	Organism     int         `json:"organism"`
	Best         *Candidate  `json:"best"`
	Alternatives []Candidate `json:"alternatives"`
}

type searchResponse struct {
	Results []searchEntry `json:"results"`
}

type searchEntry struct {
	PrimaryAccession   string `json:"primaryAccession"`
	EntryType          string `json:"entryType"`
	UniProtkbID        string `json:"uniProtkbId"`
	ProteinDescription struct {
		RecommendedName struct {
			FullName struct {
				Value string `json:"value"`
			} `json:"fullName"`
		} `json:"recommendedName"`
	} `json:"proteinDescription"`
	Genes []struct {
		GeneName struct {
			Value string `json:"value"`
		} `json:"geneName"`
	} `json:"genes"`
}

func (e *searchEntry) toCandidate() Candidate {
	c := Candidate{
		Accession:   e.PrimaryAccession,
		EntryType:   e.EntryType,
		ProteinName: e.ProteinDescription.RecommendedName.FullName.Value,
		UniProtkbID: e.UniProtkbID,
	}
	for _, g := range e.Genes {
		if g.GeneName.Value != "" {
			c.Genes = append(c.Genes, g.GeneName.Value)
		}
	}
	return c
}

// Resolve maps a gene symbol to its best UniProt accession for the given
// organism. Reviewed (Swiss-Prot) entries are queried first; if none match,
// the search is retried without the reviewed filter. Ranking prefers
// Swiss-Prot entries, canonical accessions (no isoform suffix), and exact
// gene-symbol matches, in that order.
func (c *Client) Resolve(ctx context.Context, symbol string, organism int) (*ResolveResult, error) {
	sym := strings.TrimSpace(symbol)
	if organism <= 0 {
		organism = HumanTaxonID
	}
	res := &ResolveResult{Query: sym, Organism: organism}
	if sym == "" {
		return res, nil
	}

	candidates, err := c.search(ctx, sym, organism, true)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		candidates, err = c.search(ctx, sym, organism, false)
		if err != nil {
			return nil, err
		}
	}
	if len(candidates) == 0 {
		return res, nil
	}

	rank := func(it Candidate) int {
		score := 0
		if it.EntryType == "Swiss-Prot" || strings.Contains(it.EntryType, "Swiss-Prot") {
			score += 4
		}
		if it.Accession != "" && !strings.Contains(it.Accession, "-") {
			score += 2
		}
		for _, g := range it.Genes {
			if strings.EqualFold(g, sym) {
				score++
				break
			}
		}
		return score
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return rank(candidates[i]) > rank(candidates[j])
	})

	res.Best = &candidates[0]
	rest := candidates[1:]
	if len(rest) > 10 {
		rest = rest[:10]
	}
	res.Alternatives = rest
	return res, nil
}

func (c *Client) search(ctx context.Context, symbol string, organism int, reviewedOnly bool) ([]Candidate, error) {
	query := fmt.Sprintf("gene_exact:%s AND organism_id:%d", symbol, organism)
	if reviewedOnly {
		query += " AND reviewed:true"
	}
	u := fmt.Sprintf("%s/search?query=%s&format=json&size=25", c.uniprotBase, url.QueryEscape(query))

	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}
	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode search for %s: %w", symbol, err)
	}

	var out []Candidate
	for i := range resp.Results {
		if resp.Results[i].PrimaryAccession == "" {
			continue
		}
		out = append(out, resp.Results[i].toCandidate())
	}
	return out, nil
}
