package metadata

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"reelstream/models"
)

// Config carries the provider credentials and HTTP tuning for the
// metadata layer.
type Config struct {
	OMDbKeys    []string
	TMDBKey     string
	HTTPTimeout time.Duration
}

// Service fronts every upstream metadata provider. Each provider
// failure is contained here: callers get partial results and decide
// for themselves whether an empty slice is fatal.
type Service struct {
	omdb      *omdbClient
	tmdb      *tmdbClient
	tvmaze    *tvmazeClient
	discovery *discoveryClient
	samples   *sampleClient
}

func NewService(cfg Config) *Service {
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	httpc := &http.Client{Timeout: timeout}
	return &Service{
		omdb:      newOMDBClient(cfg.OMDbKeys, httpc),
		tmdb:      newTMDBClient(cfg.TMDBKey, httpc),
		tvmaze:    newTVMazeClient(httpc),
		discovery: newDiscoveryClient(httpc),
		samples:   newSampleClient(httpc),
	}
}

// HasOMDb reports whether keyword search and enrichment are available.
func (s *Service) HasOMDb() bool {
	return s.omdb.isConfigured()
}

// HasTMDB reports whether the TMDB title index is available.
func (s *Service) HasTMDB() bool {
	return s.tmdb.isConfigured()
}

// SearchKeyword runs an OMDb keyword search narrowed by content type
// and year. Either narrowing parameter may be empty.
func (s *Service) SearchKeyword(ctx context.Context, term, kind, year string, page int) ([]models.Candidate, error) {
	return s.omdb.search(ctx, term, kind, year, page)
}

// SearchTitles queries the TMDB movie and tv indexes.
func (s *Service) SearchTitles(ctx context.Context, query string) ([]models.Candidate, error) {
	return s.tmdb.search(ctx, query)
}

// SearchShows queries the TVMaze directory.
func (s *Service) SearchShows(ctx context.Context, query string) ([]models.Candidate, error) {
	return s.tvmaze.search(ctx, query)
}

// Discover runs a keyless full-text title search.
func (s *Service) Discover(ctx context.Context, query string) ([]models.Candidate, error) {
	return s.discovery.search(ctx, query)
}

// SampleCategory fetches a curated movie category list.
func (s *Service) SampleCategory(ctx context.Context, category string) ([]models.Candidate, error) {
	return s.samples.category(ctx, category)
}

// Lookup enriches a canonical ID into a full record, preferring OMDb
// and falling back to the keyless index. Placeholder IDs cannot be
// looked up anywhere and return (nil, nil) without network traffic.
func (s *Service) Lookup(ctx context.Context, externalID string) (*models.Candidate, error) {
	if !isCanonicalID(externalID) {
		return nil, nil
	}
	if s.omdb.isConfigured() {
		item, err := s.omdb.byID(ctx, externalID)
		if err == nil {
			return item, nil
		}
		log.Printf("[metadata] omdb lookup %s failed, trying discovery: %v", externalID, err)
	}
	return s.discovery.detail(ctx, externalID)
}

// isCanonicalID rejects empty and provider-prefixed placeholder IDs.
func isCanonicalID(id string) bool {
	return id != "" && !strings.Contains(id, ":")
}
