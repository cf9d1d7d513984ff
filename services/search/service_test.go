package search

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"reelstream/models"
)

type stubMetadata struct {
	keywordResults []models.Candidate
	keywordErr     error
	keywordCalls   atomic.Int32

	titleResults []models.Candidate
	titleErr     error
	titleCalls   atomic.Int32

	showResults []models.Candidate
	showErr     error
	showCalls   atomic.Int32
}

func (s *stubMetadata) SearchKeyword(ctx context.Context, term, kind, year string, page int) ([]models.Candidate, error) {
	s.keywordCalls.Add(1)
	return s.keywordResults, s.keywordErr
}

func (s *stubMetadata) SearchTitles(ctx context.Context, query string) ([]models.Candidate, error) {
	s.titleCalls.Add(1)
	return s.titleResults, s.titleErr
}

func (s *stubMetadata) SearchShows(ctx context.Context, query string) ([]models.Candidate, error) {
	s.showCalls.Add(1)
	return s.showResults, s.showErr
}

func (s *stubMetadata) totalCalls() int32 {
	return s.keywordCalls.Load() + s.titleCalls.Load() + s.showCalls.Load()
}

// blockingMetadata stalls keyword searches until the search deadline
// fires, then reports a late result alongside the context error.
type blockingMetadata struct {
	titleResults []models.Candidate
}

func (s *blockingMetadata) SearchKeyword(ctx context.Context, term, kind, year string, page int) ([]models.Candidate, error) {
	<-ctx.Done()
	return []models.Candidate{{Title: "Too Late", ExternalID: "tt-late"}}, ctx.Err()
}

func (s *blockingMetadata) SearchTitles(ctx context.Context, query string) ([]models.Candidate, error) {
	return s.titleResults, nil
}

func (s *blockingMetadata) SearchShows(ctx context.Context, query string) ([]models.Candidate, error) {
	return nil, nil
}

func TestSearchRejectsShortQueriesWithoutNetwork(t *testing.T) {
	stub := &stubMetadata{}
	svc := NewService(stub)

	for _, q := range []string{"", "a", " b "} {
		_, err := svc.Search(context.Background(), q)
		if !errors.Is(err, ErrQueryTooShort) {
			t.Errorf("Search(%q): expected ErrQueryTooShort, got %v", q, err)
		}
	}
	if calls := stub.totalCalls(); calls != 0 {
		t.Errorf("expected zero provider calls for short queries, got %d", calls)
	}
}

func TestSearchMergesDedupesAndRanks(t *testing.T) {
	stub := &stubMetadata{
		keywordResults: []models.Candidate{
			{Title: "Batman Begins", Year: "2005", ExternalID: "tt0372784", ContentType: models.ContentTypeMovie},
			{Title: "Batman", Year: "1989", ExternalID: "tt0096895", ContentType: models.ContentTypeMovie},
		},
		titleResults: []models.Candidate{
			{Title: "Batman", Year: "1989", ExternalID: "tt0096895", ContentType: models.ContentTypeMovie},
			{Title: "The Batman", Year: "2022", ExternalID: "tt1877830", ContentType: models.ContentTypeMovie},
		},
		showResults: []models.Candidate{
			{Title: "Batman: The Animated Series", Year: "1992", ExternalID: "tt0103359", ContentType: models.ContentTypeSeries},
		},
	}
	svc := NewService(stub)

	got, err := svc.Search(context.Background(), "batman")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 unique results, got %d", len(got))
	}
	if got[0].Title != "Batman" {
		t.Errorf("expected exact match ranked first, got %q", got[0].Title)
	}
	if got[0].Relevance != 100 {
		t.Errorf("expected exact-match relevance 100, got %v", got[0].Relevance)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Relevance > got[i-1].Relevance {
			t.Errorf("results not sorted by relevance at %d: %v > %v", i, got[i].Relevance, got[i-1].Relevance)
		}
	}
	if stub.showCalls.Load() != 1 {
		t.Errorf("expected tv directory queried for a 6-char query, got %d calls", stub.showCalls.Load())
	}
}

func TestSearchSkipsTVDirectoryForShortQueries(t *testing.T) {
	stub := &stubMetadata{
		keywordResults: []models.Candidate{{Title: "Bat", ExternalID: "tt1"}},
	}
	svc := NewService(stub)

	if _, err := svc.Search(context.Background(), "bat"); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if stub.showCalls.Load() != 0 {
		t.Errorf("expected no tv directory call for a 3-char query, got %d", stub.showCalls.Load())
	}
}

func TestSearchCapsResults(t *testing.T) {
	var many []models.Candidate
	for _, title := range []string{
		"Alien", "Aliens", "Alien 3", "Alien Resurrection", "Alien vs Predator",
		"Alien Covenant", "Alienoid", "Alien Nation", "Alien Raiders", "My Alien",
	} {
		many = append(many, models.Candidate{Title: title, ExternalID: "tt-" + title})
	}
	svc := NewService(&stubMetadata{keywordResults: many})

	got, err := svc.Search(context.Background(), "alien")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != maxResults {
		t.Errorf("expected results capped at %d, got %d", maxResults, len(got))
	}
}

func TestSearchAllSourcesFailing(t *testing.T) {
	boom := errors.New("upstream down")
	svc := NewService(&stubMetadata{keywordErr: boom, titleErr: boom, showErr: boom})

	_, err := svc.Search(context.Background(), "batman")
	if !errors.Is(err, ErrNoResults) {
		t.Fatalf("expected ErrNoResults, got %v", err)
	}
}

func TestSearchEmptyButHealthySources(t *testing.T) {
	svc := NewService(&stubMetadata{})

	got, err := svc.Search(context.Background(), "zzzzzz")
	if err != nil {
		t.Fatalf("expected nil error when sources answered empty, got %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty results, got %d", len(got))
	}
}

func TestSearchDeadlineDropsPendingSources(t *testing.T) {
	stub := &blockingMetadata{
		titleResults: []models.Candidate{{Title: "Heat", ExternalID: "tt0113277"}},
	}
	svc := NewService(stub)
	svc.SetTimeout(100 * time.Millisecond)

	start := time.Now()
	got, err := svc.Search(context.Background(), "heat")
	elapsed := time.Since(start)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if elapsed > time.Second {
		t.Fatalf("expected return at the deadline, took %v", elapsed)
	}
	if len(got) != 1 || got[0].Title != "Heat" {
		t.Fatalf("expected only the fast source's result, got %v", got)
	}
	for _, c := range got {
		if c.ExternalID == "tt-late" {
			t.Fatalf("timed-out source leaked into results: %v", got)
		}
	}
}

func TestSearchCountsCharactersNotBytes(t *testing.T) {
	stub := &stubMetadata{}
	svc := NewService(stub)

	// One multibyte character is still one character.
	if _, err := svc.Search(context.Background(), "ぁ"); !errors.Is(err, ErrQueryTooShort) {
		t.Fatalf("expected ErrQueryTooShort for a single-rune query, got %v", err)
	}
	if calls := stub.totalCalls(); calls != 0 {
		t.Fatalf("expected zero provider calls, got %d", calls)
	}

	if _, err := svc.Search(context.Background(), "ばつ"); err != nil {
		t.Fatalf("expected two-rune query accepted, got %v", err)
	}
	if stub.showCalls.Load() != 0 {
		t.Errorf("expected no tv directory call for a 2-rune query, got %d", stub.showCalls.Load())
	}
}

func TestStaleResultsNeverOverwriteNewer(t *testing.T) {
	svc := NewService(&stubMetadata{})
	newer := []models.Candidate{{Title: "Newer", ExternalID: "tt2"}}
	stale := []models.Candidate{{Title: "Stale", ExternalID: "tt1"}}

	svc.publish(2, newer)
	svc.publish(1, stale)

	got := svc.Current()
	if len(got) != 1 || got[0].Title != "Newer" {
		t.Fatalf("expected newer results retained, got %v", got)
	}
}

func TestDebounceDelay(t *testing.T) {
	cases := []struct {
		query string
		want  time.Duration
	}{
		{"ab", 300 * time.Millisecond},
		{"bat", 150 * time.Millisecond},
		{"batm", 150 * time.Millisecond},
		{"batman", 100 * time.Millisecond},
		{"ぁぁ", 300 * time.Millisecond},
	}
	for _, tc := range cases {
		if got := DebounceDelay(tc.query); got != tc.want {
			t.Errorf("DebounceDelay(%q) = %v, want %v", tc.query, got, tc.want)
		}
	}
}
