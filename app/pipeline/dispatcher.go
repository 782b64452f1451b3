package pipeline

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/lysyi3m/rss-babel/app/feed"
)

type job struct {
	index int
	entry feed.Entry
}

// Dispatcher fans a batch of entries out to a bounded worker pool and fans
// the results back in, reordered by original index. The worker bound caps
// simultaneous load on the translation service.
type Dispatcher struct {
	processor *Processor
	workers   int
}

func NewDispatcher(processor *Processor, workers int) *Dispatcher {
	if workers < 1 {
		workers = 1
	}

	return &Dispatcher{
		processor: processor,
		workers:   workers,
	}
}

// Run processes all entries and returns results in input order. A panicking
// task drops only its own entry; the batch never aborts. Output length is
// at most the input length.
func (d *Dispatcher) Run(ctx context.Context, entries []feed.Entry) []Result {
	if len(entries) == 0 {
		return nil
	}

	jobs := make(chan job)
	out := make(chan Result, len(entries))

	var wg sync.WaitGroup
	for i := 0; i < d.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				d.execute(ctx, j, out)
			}
		}()
	}

	for i, entry := range entries {
		jobs <- job{index: i, entry: entry}
	}
	close(jobs)

	wg.Wait()
	close(out)

	results := make([]Result, 0, len(entries))
	for result := range out {
		results = append(results, result)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Index < results[j].Index
	})

	return results
}

func (d *Dispatcher) execute(ctx context.Context, j job, out chan<- Result) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Entry processing panic, dropping entry", "index", j.index, "link", j.entry.Link, "panic", r)
		}
	}()

	out <- d.processor.Run(ctx, j.index, j.entry)
}
