package search

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/semaphore"

	"reelstream/models"
	"reelstream/utils/dedupe"
	"reelstream/utils/relevance"
)

var (
	ErrQueryTooShort = errors.New("search: query must be at least 2 characters")
	ErrNoResults     = errors.New("search: all sources failed")
)

const (
	minQueryLength       = 2
	tvmazeMinQueryLength = 4
	maxResults           = 8
	defaultTimeout       = 3 * time.Second

	// maxConcurrentSources bounds provider fan-out so a burst of
	// keystrokes cannot open unbounded upstream connections.
	maxConcurrentSources = 10
)

// metadataSearcher is the slice of the metadata service the aggregator
// fans out to.
type metadataSearcher interface {
	SearchKeyword(ctx context.Context, term, kind, year string, page int) ([]models.Candidate, error)
	SearchTitles(ctx context.Context, query string) ([]models.Candidate, error)
	SearchShows(ctx context.Context, query string) ([]models.Candidate, error)
}

// Service merges live search results from every configured provider
// into one ranked list. It is reentrant: each call gets a sequence
// number and only the latest call may publish its results as the
// session's current set, so slow stale fan-outs never clobber fresher
// ones.
type Service struct {
	metadata metadataSearcher
	timeout  time.Duration
	sem      *semaphore.Weighted

	seq atomic.Uint64

	mu         sync.Mutex
	current    []models.Candidate
	currentSeq uint64
}

func NewService(metadata metadataSearcher) *Service {
	return &Service{
		metadata: metadata,
		timeout:  defaultTimeout,
		sem:      semaphore.NewWeighted(maxConcurrentSources),
	}
}

// SetTimeout overrides the per-search deadline. Non-positive values
// are ignored. Not safe to call once searches are in flight.
func (s *Service) SetTimeout(d time.Duration) {
	if d > 0 {
		s.timeout = d
	}
}

type source struct {
	name string
	run  func(ctx context.Context) ([]models.Candidate, error)
}

// Search fans the query out to all applicable providers, waits at most
// the configured deadline, and returns the deduplicated top matches
// ranked by relevance. An empty slice with a nil error means the
// providers answered but had nothing; ErrNoResults means every provider
// failed.
func (s *Service) Search(ctx context.Context, query string) ([]models.Candidate, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minQueryLength {
		return nil, ErrQueryTooShort
	}

	seq := s.seq.Add(1)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	sources := []source{
		{name: "omdb", run: func(ctx context.Context) ([]models.Candidate, error) {
			return s.metadata.SearchKeyword(ctx, query, "", "", 1)
		}},
		{name: "tmdb", run: s.curry(s.metadata.SearchTitles, query)},
	}
	if utf8.RuneCountInString(query) >= tvmazeMinQueryLength {
		sources = append(sources, source{name: "tvmaze", run: s.curry(s.metadata.SearchShows, query)})
	}

	var (
		wg        sync.WaitGroup
		resultsMu sync.Mutex
		merged    []models.Candidate
		succeeded atomic.Int32
	)
	for _, src := range sources {
		if err := s.sem.Acquire(ctx, 1); err != nil {
			log.Printf("[search] %s skipped: %v", src.name, err)
			continue
		}
		wg.Add(1)
		go func(src source) {
			defer wg.Done()
			defer s.sem.Release(1)

			items, err := src.run(ctx)
			if err != nil {
				log.Printf("[search] %s failed for %q: %v", src.name, query, err)
				return
			}
			succeeded.Add(1)
			if len(items) == 0 {
				return
			}
			resultsMu.Lock()
			merged = append(merged, items...)
			resultsMu.Unlock()
		}(src)
	}
	wg.Wait()

	if succeeded.Load() == 0 {
		return nil, ErrNoResults
	}

	for i := range merged {
		merged[i].Relevance = relevance.FastScore(merged[i].Title, query)
	}
	unique := dedupe.Candidates(merged)
	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].Relevance > unique[j].Relevance
	})
	if len(unique) > maxResults {
		unique = unique[:maxResults]
	}

	s.publish(seq, unique)
	return unique, nil
}

func (s *Service) curry(fn func(context.Context, string) ([]models.Candidate, error), query string) func(context.Context) ([]models.Candidate, error) {
	return func(ctx context.Context) ([]models.Candidate, error) {
		return fn(ctx, query)
	}
}

// publish stores results as the session's current set unless a newer
// search already did.
func (s *Service) publish(seq uint64, results []models.Candidate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.currentSeq {
		return
	}
	s.currentSeq = seq
	s.current = results
}

// Current returns the most recent non-stale result set.
func (s *Service) Current() []models.Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Candidate, len(s.current))
	copy(out, s.current)
	return out
}

// DebounceDelay suggests how long a caller should wait after a
// keystroke before searching. Longer queries are more specific, so they
// get a shorter wait.
func DebounceDelay(query string) time.Duration {
	switch n := utf8.RuneCountInString(strings.TrimSpace(query)); {
	case n <= 2:
		return 300 * time.Millisecond
	case n <= 4:
		return 150 * time.Millisecond
	default:
		return 100 * time.Millisecond
	}
}
