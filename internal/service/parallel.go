package service

import (
	"context"
	"runtime"
	"sync"
)

// WorkItem holds one accession queued for track building.
type WorkItem struct {
	Seq       int
	Accession string
}

// WorkResult holds the track output for a single accession.
type WorkResult struct {
	Seq       int
	Accession string
	Bundle    *TrackBundle
	Err       error
}

// ParallelBuildTracks builds tracks for queued accessions using a pool of
// workers. Each accession's fetch chain is independent, so parallelism
// across proteins is safe. Results arrive in completion order; use
// OrderedCollect to consume them in sequence order. If workers is 0,
// runtime.NumCPU() is used.
func (s *Service) ParallelBuildTracks(ctx context.Context, items <-chan WorkItem, window, workers int) <-chan WorkResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan WorkResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for range workers {
		go func() {
			defer wg.Done()
			for item := range items {
				bundle, err := s.BuildTracks(ctx, item.Accession, window)
				results <- WorkResult{
					Seq:       item.Seq,
					Accession: item.Accession,
					Bundle:    bundle,
					Err:       err,
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// OrderedCollect calls fn for each result in sequence-number order,
// buffering out-of-order results until their turn comes. Blocks until the
// results channel is closed.
func OrderedCollect(results <-chan WorkResult, fn func(WorkResult) error) error {
	pending := make(map[int]WorkResult)
	nextSeq := 0

	for r := range results {
		pending[r.Seq] = r

		for {
			rr, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			nextSeq++
			if err := fn(rr); err != nil {
				// Drain remaining results to unblock workers.
				for range results {
				}
				return err
			}
		}
	}

	return nil
}

// BuildTracksBatch builds tracks for several accessions concurrently and
// returns the results in input order. Per-accession failures are carried
// in the result, not returned as an error.
func (s *Service) BuildTracksBatch(ctx context.Context, accessions []string, window, workers int) []WorkResult {
	items := make(chan WorkItem, len(accessions))
	for i, acc := range accessions {
		items <- WorkItem{Seq: i, Accession: acc}
	}
	close(items)

	out := make([]WorkResult, 0, len(accessions))
	_ = OrderedCollect(s.ParallelBuildTracks(ctx, items, window, workers), func(r WorkResult) error {
		out = append(out, r)
		return nil
	})
	return out
}
