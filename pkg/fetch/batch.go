package fetch

import (
	"context"
	"sync"
)

// ScrapeMany fetches every identifier concurrently and returns one outcome
// per input, index-aligned with raws. A batch never fails collectively:
// each identifier resolves to its own Success or Failure independently.
//
// Concurrency is capped by MaxConcurrency when set; the shared rate pacer
// spaces out actual network fetches regardless.
func (s *Scraper) ScrapeMany(ctx context.Context, raws []string) []Outcome {
	outcomes := make([]Outcome, len(raws))

	var wg sync.WaitGroup
	for i, raw := range raws {
		wg.Add(1)
		go func(i int, raw string) {
			defer wg.Done()

			if s.sem != nil {
				select {
				case s.sem <- struct{}{}:
					defer func() { <-s.sem }()
				case <-ctx.Done():
					outcomes[i] = Failure(raw, KindTimeout, 0, ctx.Err().Error())
					return
				}
			}

			// Each slot is written by exactly one goroutine, so the
			// slice needs no lock.
			outcomes[i] = s.Scrape(ctx, raw)
		}(i, raw)
	}
	wg.Wait()

	return outcomes
}
