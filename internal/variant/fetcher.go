package variant

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/varviz3d/varviz3d/internal/significance"
	"github.com/varviz3d/varviz3d/internal/uniprot"
)

// LengthSource resolves a sequence length for an accession. A failure here
// is the one fatal error in the fetch pipeline.
type LengthSource interface {
	SequenceLength(ctx context.Context, accession string) (int, error)
}

// RecordSource fetches classified variants bounded by the sequence length.
type RecordSource interface {
	Fetch(ctx context.Context, accession string, length int) ([]ClassifiedVariant, error)
}

// Fetcher orchestrates the length lookup and the primary/fallback source
// chain. Construct it with NewFetcher; sources are injected so tests can
// run without the network.
type Fetcher struct {
	lengths  LengthSource
	primary  RecordSource
	fallback RecordSource
	logger   *zap.Logger
}

// NewFetcher wires a fetcher from a UniProt client using the standard
// source chain: Proteins API variation as primary, UniProt natural-variant
// features as fallback.
func NewFetcher(client *uniprot.Client) *Fetcher {
	return NewFetcherWithSources(client, &ProteinsSource{API: client}, &FeatureSource{API: client})
}

// NewFetcherWithSources wires a fetcher from explicit collaborators.
func NewFetcherWithSources(lengths LengthSource, primary, fallback RecordSource) *Fetcher {
	return &Fetcher{
		lengths:  lengths,
		primary:  primary,
		fallback: fallback,
		logger:   zap.NewNop(),
	}
}

// SetLogger sets the logger for source-degradation warnings.
func (f *Fetcher) SetLogger(l *zap.Logger) {
	f.logger = l
}

// Fetch resolves the sequence length, then tries the primary source and
// falls back on failure or zero items. Only the length lookup returns an
// error; source failures degrade to the fallback and finally to an empty
// result with Source set to "error".
func (f *Fetcher) Fetch(ctx context.Context, accession string) (*FetchResult, error) {
	length, err := f.lengths.SequenceLength(ctx, accession)
	if err != nil {
		return nil, fmt.Errorf("resolve sequence %s: %w", accession, err)
	}

	items, err := f.primary.Fetch(ctx, accession, length)
	if err != nil {
		f.logger.Warn("primary variant source unavailable",
			zap.String("accession", accession),
			zap.Error(err))
		items = nil
	}
	if len(items) > 0 {
		return &FetchResult{Length: length, Items: items, Source: SourcePrimary}, nil
	}

	items, err = f.fallback.Fetch(ctx, accession, length)
	if err != nil {
		f.logger.Warn("fallback variant source unavailable",
			zap.String("accession", accession),
			zap.Int("length", length),
			zap.Error(err))
		return &FetchResult{Length: 0, Items: nil, Source: SourceError}, nil
	}
	return &FetchResult{Length: length, Items: items, Source: SourceFallback}, nil
}

// VariationAPI is the Proteins API surface ProteinsSource depends on.
type VariationAPI interface {
	Variation(ctx context.Context, accession string) ([]uniprot.VariationRecord, error)
}

// ProteinsSource classifies structured variation records by their
// clinical-significance tokens. Records without a position in [1, length]
// are dropped silently.
type ProteinsSource struct {
	API VariationAPI
}

func (s *ProteinsSource) Fetch(ctx context.Context, accession string, length int) ([]ClassifiedVariant, error) {
	recs, err := s.API.Variation(ctx, accession)
	if err != nil {
		return nil, err
	}
	var out []ClassifiedVariant
	for _, r := range recs {
		if r.Position < 1 || (length > 0 && r.Position > length) {
			continue
		}
		out = append(out, ClassifiedVariant{
			Position:    r.Position,
			WildType:    r.WildType,
			Alternative: r.AlternativeSequence,
			Class:       significance.ClassifyTokens(r.ClinicalSignificances),
			Provenance:  FromPrimary,
		})
	}
	return out, nil
}

// EntryAPI is the UniProt KB surface FeatureSource depends on.
type EntryAPI interface {
	Entry(ctx context.Context, accession string) (*uniprot.Entry, error)
}

// FeatureSource classifies UniProt "Natural variant" features by their
// free-text descriptions. It is the fallback when the Proteins API yields
// nothing usable.
type FeatureSource struct {
	API EntryAPI
}

func (s *FeatureSource) Fetch(ctx context.Context, accession string, length int) ([]ClassifiedVariant, error) {
	e, err := s.API.Entry(ctx, accession)
	if err != nil {
		return nil, err
	}
	var out []ClassifiedVariant
	for _, f := range e.Features {
		if f.Type != "Natural variant" {
			continue
		}
		pos := f.Start
		if pos < 1 || pos > length {
			continue
		}
		out = append(out, ClassifiedVariant{
			Position:    pos,
			WildType:    f.WildType,
			Alternative: f.Alternative,
			Class:       significance.ClassifyText(f.Description),
			Provenance:  FromFallback,
		})
	}
	return out, nil
}
