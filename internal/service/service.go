// Package service composes the fetch, classification, and aggregation
// pieces into the API exposed to presentation-layer callers.
package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/varviz3d/varviz3d/internal/domain"
	"github.com/varviz3d/varviz3d/internal/track"
	"github.com/varviz3d/varviz3d/internal/uniprot"
	"github.com/varviz3d/varviz3d/internal/variant"
)

// ProteinAPI is the upstream surface the service depends on.
// *uniprot.Client satisfies it.
type ProteinAPI interface {
	Entry(ctx context.Context, accession string) (*uniprot.Entry, error)
	Variation(ctx context.Context, accession string) ([]uniprot.VariationRecord, error)
	Resolve(ctx context.Context, symbol string, organism int) (*uniprot.ResolveResult, error)
}

// VariantFetcher produces classified variants for an accession.
type VariantFetcher interface {
	Fetch(ctx context.Context, accession string) (*variant.FetchResult, error)
}

// RecordCache is the optional cross-request cache of fetch results.
type RecordCache interface {
	LookupFetchResult(accession string) (*variant.FetchResult, error)
	WriteFetchResult(accession string, res *variant.FetchResult) error
}

// Service wires the variant pipeline together. Construct with New; the
// cache and logger are optional.
type Service struct {
	api     ProteinAPI
	fetcher VariantFetcher
	cache   RecordCache
	window  int
	logger  *zap.Logger
}

// New creates a service with a default smoothing window of 15 residues.
func New(api ProteinAPI, fetcher VariantFetcher) *Service {
	return &Service{
		api:     api,
		fetcher: fetcher,
		window:  15,
		logger:  zap.NewNop(),
	}
}

// SetLogger sets the logger for cache and degradation diagnostics.
func (s *Service) SetLogger(l *zap.Logger) {
	s.logger = l
}

// SetCache enables the cross-request record cache.
func (s *Service) SetCache(c RecordCache) {
	s.cache = c
}

// SetDefaultWindow overrides the window used when callers pass 0.
func (s *Service) SetDefaultWindow(w int) {
	if w >= 1 {
		s.window = w
	}
}

// TrackBundle is the full per-protein track payload.
type TrackBundle struct {
	Accession string `json:"uniprot"`
	Source    string `json:"source"`
	*track.Tracks
}

// BuildTracks fetches and classifies variants for an accession and derives
// the per-residue tracks. A window of 0 uses the configured default.
// Only a failed sequence-length lookup returns an error; source outages
// degrade to all-zero tracks with Source set to "error".
func (s *Service) BuildTracks(ctx context.Context, accession string, window int) (*TrackBundle, error) {
	if window < 1 {
		window = s.window
	}

	res := s.cachedFetch(accession)
	if res == nil {
		var err error
		res, err = s.fetcher.Fetch(ctx, accession)
		if err != nil {
			return nil, err
		}
		s.cacheStore(accession, res)
	}

	items := make([]track.Variant, len(res.Items))
	for i, v := range res.Items {
		items[i] = track.Variant{Position: v.Position, Class: v.Class}
	}

	return &TrackBundle{
		Accession: accession,
		Source:    res.Source,
		Tracks:    track.Build(items, res.Length, window),
	}, nil
}

func (s *Service) cachedFetch(accession string) *variant.FetchResult {
	if s.cache == nil {
		return nil
	}
	res, err := s.cache.LookupFetchResult(accession)
	if err != nil {
		s.logger.Warn("cache lookup failed",
			zap.String("accession", accession), zap.Error(err))
		return nil
	}
	return res
}

func (s *Service) cacheStore(accession string, res *variant.FetchResult) {
	if s.cache == nil {
		return
	}
	if err := s.cache.WriteFetchResult(accession, res); err != nil {
		s.logger.Warn("cache write failed",
			zap.String("accession", accession), zap.Error(err))
	}
}

// DomainSet is the domain payload for one protein.
type DomainSet struct {
	Accession string           `json:"uniprot"`
	Length    int              `json:"length"`
	Domains   []domain.Feature `json:"domains"`
}

// Domains fetches the UniProt entry and extracts its domain features.
func (s *Service) Domains(ctx context.Context, accession string) (*DomainSet, error) {
	e, err := s.api.Entry(ctx, accession)
	if err != nil {
		return nil, fmt.Errorf("fetch entry %s: %w", accession, err)
	}
	return &DomainSet{
		Accession: accession,
		Length:    e.Length,
		Domains:   domain.Extract(e.Features),
	}, nil
}

// Resolve maps a gene symbol to its best UniProt accession.
func (s *Service) Resolve(ctx context.Context, symbol string) (*uniprot.ResolveResult, error) {
	return s.api.Resolve(ctx, symbol, uniprot.HumanTaxonID)
}

// RSIDResult locates a dbSNP identifier on the protein sequence.
type RSIDResult struct {
	Accession string           `json:"uniprot"`
	RSID      string           `json:"rsid"`
	Positions []int            `json:"positions"`
	Domains   []domain.Feature `json:"domains"`
}

// FindRSID returns the residue positions carrying the given dbSNP rsID,
// plus the domain features containing those residues. The Proteins API
// xrefs are checked first; UniProt feature descriptions second. Source
// failures degrade to an empty result rather than erroring.
func (s *Service) FindRSID(ctx context.Context, accession, rsid string) (*RSIDResult, error) {
	rsid = strings.ToLower(strings.TrimSpace(rsid))
	result := &RSIDResult{Accession: accession, RSID: rsid}
	if rsid == "" {
		return result, nil
	}

	posSet := make(map[int]bool)

	recs, err := s.api.Variation(ctx, accession)
	if err != nil {
		s.logger.Warn("variation lookup failed during rsid search",
			zap.String("accession", accession), zap.Error(err))
	}
	for _, r := range recs {
		for _, x := range r.Xrefs {
			name := strings.ToLower(x.Name)
			if name != "dbsnp" && name != "dbsnp id" && name != "dbsnp_id" {
				continue
			}
			if strings.ToLower(x.ID) == rsid && r.Position > 0 {
				posSet[r.Position] = true
			}
		}
	}

	var entry *uniprot.Entry
	if len(posSet) == 0 {
		entry, err = s.api.Entry(ctx, accession)
		if err != nil {
			s.logger.Warn("entry lookup failed during rsid search",
				zap.String("accession", accession), zap.Error(err))
		}
		if entry != nil {
			for _, f := range entry.Features {
				if f.Type != "Natural variant" {
					continue
				}
				if strings.Contains(strings.ToLower(f.Description), rsid) && f.Start > 0 {
					posSet[f.Start] = true
				}
			}
		}
	}

	if len(posSet) == 0 {
		return result, nil
	}
	for pos := range posSet {
		result.Positions = append(result.Positions, pos)
	}
	sort.Ints(result.Positions)

	if entry == nil {
		entry, err = s.api.Entry(ctx, accession)
		if err != nil {
			s.logger.Warn("entry lookup failed for rsid domain context",
				zap.String("accession", accession), zap.Error(err))
			return result, nil
		}
	}
	tree := domain.BuildIntervalTree(domain.Extract(entry.Features))
	seen := make(map[domain.Feature]bool)
	for _, pos := range result.Positions {
		for _, f := range tree.At(pos) {
			if !seen[f] {
				seen[f] = true
				result.Domains = append(result.Domains, f)
			}
		}
	}
	sort.Slice(result.Domains, func(i, j int) bool {
		if result.Domains[i].Start != result.Domains[j].Start {
			return result.Domains[i].Start < result.Domains[j].Start
		}
		return result.Domains[i].End < result.Domains[j].End
	})
	return result, nil
}
