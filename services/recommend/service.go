package recommend

import (
	"context"
	"errors"
	"log"
	"math"
	"sort"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc/iter"

	"reelstream/models"
	"reelstream/utils/dedupe"
	"reelstream/utils/genres"
)

// ErrBusy is returned when a recommendation run is already in flight.
var ErrBusy = errors.New("recommend: engine busy")

const defaultLimit = 12

// Config tunes the pipeline. Zero values are replaced by defaults.
type Config struct {
	// LatestQuota is the fraction of the final list reserved for
	// recent releases.
	LatestQuota float64
	// LatestWindowYears defines how old a "recent release" may be.
	LatestWindowYears int
	// EnrichLimit caps how many candidates get a per-id detail lookup.
	EnrichLimit int
	// EnrichConcurrency bounds parallel detail lookups.
	EnrichConcurrency int
	// PoolMultiplier and MinPoolSize size the keyword retrieval pool
	// relative to the requested limit.
	PoolMultiplier int
	MinPoolSize    int
	// KeywordYears is how many years back the keyword pass searches.
	KeywordYears int
	// FailOpen keeps unmatched candidates when the strict genre filter
	// eliminates everything.
	FailOpen bool
}

func DefaultConfig() Config {
	return Config{
		LatestQuota:       0.35,
		LatestWindowYears: 2,
		EnrichLimit:       30,
		EnrichConcurrency: 4,
		PoolMultiplier:    4,
		MinPoolSize:       36,
		KeywordYears:      7,
		FailOpen:          true,
	}
}

// metadataProvider is the slice of the metadata service the engine
// consumes.
type metadataProvider interface {
	SearchKeyword(ctx context.Context, term, kind, year string, page int) ([]models.Candidate, error)
	Discover(ctx context.Context, query string) ([]models.Candidate, error)
	SampleCategory(ctx context.Context, category string) ([]models.Candidate, error)
	Lookup(ctx context.Context, externalID string) (*models.Candidate, error)
}

// profileProvider computes a user's taste profile.
type profileProvider interface {
	ProfileFor(userID string) (models.PreferenceProfile, error)
}

// Service generates personalized recommendation lists by pooling
// candidates from keyword retrieval and heuristic discovery sources,
// enriching them, and scoring them against the user's profile. Only
// one run may be in flight at a time.
type Service struct {
	metadata metadataProvider
	profiles profileProvider
	cfg      Config

	loading atomic.Bool
	now     func() time.Time
}

func NewService(metadata metadataProvider, profiles profileProvider, cfg Config) *Service {
	def := DefaultConfig()
	if cfg.LatestQuota <= 0 {
		cfg.LatestQuota = def.LatestQuota
	}
	if cfg.LatestWindowYears <= 0 {
		cfg.LatestWindowYears = def.LatestWindowYears
	}
	if cfg.EnrichLimit <= 0 {
		cfg.EnrichLimit = def.EnrichLimit
	}
	if cfg.EnrichConcurrency <= 0 {
		cfg.EnrichConcurrency = def.EnrichConcurrency
	}
	if cfg.PoolMultiplier <= 0 {
		cfg.PoolMultiplier = def.PoolMultiplier
	}
	if cfg.MinPoolSize <= 0 {
		cfg.MinPoolSize = def.MinPoolSize
	}
	if cfg.KeywordYears <= 0 {
		cfg.KeywordYears = def.KeywordYears
	}
	return &Service{
		metadata: metadata,
		profiles: profiles,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Recommend runs the full pipeline. The second return value reports
// whether the static fallback catalog had to be used. A concurrent call
// while a run is in flight returns ErrBusy immediately.
func (s *Service) Recommend(ctx context.Context, req models.RecommendRequest) ([]models.Candidate, bool, error) {
	if !s.loading.CompareAndSwap(false, true) {
		return nil, false, ErrBusy
	}
	defer s.loading.Store(false)

	if req.Limit <= 0 {
		req.Limit = defaultLimit
	}
	if req.ContentType == "" {
		req.ContentType = models.FilterAll
	}
	if req.Language == "" {
		req.Language = models.LanguageAll
	}
	selected := make([]string, 0, len(req.Genres))
	for _, g := range req.Genres {
		if n := genres.Normalize(g); n != "" {
			selected = append(selected, n)
		}
	}

	profile, err := s.profiles.ProfileFor(req.UserID)
	if err != nil {
		log.Printf("[recommend] profile for %q unavailable: %v", req.UserID, err)
		profile = models.NewPreferenceProfile()
	}

	pool := s.keywordRetrieval(ctx, req, selected)
	liveCount := len(pool)

	sources := s.languageSources(req, selected)
	sources = append(sources, recSource{"random discovery", true, func(ctx context.Context) []models.Candidate {
		return s.randomDiscovery(ctx, req.ContentType, ceilDiv(req.Limit, 10))
	}})
	for _, src := range sources {
		if len(pool) >= req.Limit*3 {
			break
		}
		items := src.run(ctx)
		log.Printf("[recommend] %s contributed %d items", src.name, len(items))
		if src.live {
			liveCount += len(items)
		}
		pool = append(pool, items...)
	}

	// usedFallback reports that no live provider contributed anything
	// and the static catalog is carrying the response.
	usedFallback := liveCount == 0
	if len(pool) == 0 {
		log.Printf("[recommend] all sources empty, using fallback catalog")
		pool = fallbackRecommendations(req.ContentType, req.Limit, selected, req.Language)
		usedFallback = true
	}

	unique := dedupe.Candidates(pool)
	enriched := s.enrich(ctx, unique)
	filtered := s.strictGenreFilter(enriched, selected)

	nowT := s.now()
	for i := range filtered {
		filtered[i].AIScore = Score(filtered[i], profile.GenreAffinity, selected, nowT)
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].AIScore > filtered[j].AIScore
	})

	return s.latestBlend(filtered, req.Limit), usedFallback, nil
}

// keywordRetrieval is the primary pass: recent-year keyword searches
// against the keyword index, enriched and pre-filtered, newest first.
func (s *Service) keywordRetrieval(ctx context.Context, req models.RecommendRequest, selected []string) []models.Candidate {
	currentYear := s.now().Year()
	terms := genres.QueryTerms(selected, req.Language, 12)
	target := req.Limit * s.cfg.PoolMultiplier
	if target < s.cfg.MinPoolSize {
		target = s.cfg.MinPoolSize
	}
	kind := omdbKind(req.ContentType)

	var raw []models.Candidate
	for i := 0; i < s.cfg.KeywordYears && len(raw) < target; i++ {
		year := strconv.Itoa(currentYear - i)
		for _, term := range terms {
			if len(raw) >= target {
				break
			}
			items, err := s.metadata.SearchKeyword(ctx, term, kind, year, 1)
			if err != nil {
				log.Printf("[recommend] keyword search %q (%s) failed: %v", term, year, err)
				continue
			}
			raw = append(raw, items...)
		}
	}

	unique := dedupe.Candidates(raw)
	enriched := s.enrich(ctx, unique)

	matched := enriched[:0]
	for _, c := range enriched {
		if matchesLanguage(c, req.Language) {
			matched = append(matched, c)
		}
	}
	filtered := s.strictGenreFilter(matched, selected)

	sort.SliceStable(filtered, func(i, j int) bool {
		yi, yj := numericYear(filtered[i].Year), numericYear(filtered[j].Year)
		if yi != yj {
			return yi > yj
		}
		return filtered[i].Rating > filtered[j].Rating
	})
	if len(filtered) > target {
		filtered = filtered[:target]
	}
	return filtered
}

// enrich resolves full detail for the head of the list and merges any
// non-empty fields into the thin records. Items past the enrichment
// budget pass through untouched.
func (s *Service) enrich(ctx context.Context, items []models.Candidate) []models.Candidate {
	n := len(items)
	if n > s.cfg.EnrichLimit {
		n = s.cfg.EnrichLimit
	}
	if n == 0 {
		return items
	}

	head := items[:n]
	mapper := iter.Mapper[models.Candidate, models.Candidate]{MaxGoroutines: s.cfg.EnrichConcurrency}
	enriched := mapper.Map(head, func(c *models.Candidate) models.Candidate {
		detail, err := s.metadata.Lookup(ctx, c.ExternalID)
		if err != nil {
			log.Printf("[recommend] enrichment for %s failed: %v", c.ExternalID, err)
			return *c
		}
		if detail == nil {
			return *c
		}
		return mergeCandidate(*c, *detail)
	})

	out := make([]models.Candidate, 0, len(items))
	out = append(out, enriched...)
	out = append(out, items[n:]...)
	return out
}

// mergeCandidate overlays non-empty detail fields onto the base record.
func mergeCandidate(base, detail models.Candidate) models.Candidate {
	if detail.Title != "" {
		base.Title = detail.Title
	}
	if detail.Year != "" {
		base.Year = detail.Year
	}
	if detail.ExternalID != "" {
		base.ExternalID = detail.ExternalID
	}
	if detail.ContentType != "" && detail.ContentType != models.ContentTypeUnknown {
		base.ContentType = detail.ContentType
	}
	if detail.PosterURL != "" {
		base.PosterURL = detail.PosterURL
	}
	if len(detail.Genres) > 0 {
		base.Genres = detail.Genres
	}
	if detail.Rating > 0 {
		base.Rating = detail.Rating
	}
	if detail.Language != "" {
		base.Language = detail.Language
	}
	if detail.Actors != "" {
		base.Actors = detail.Actors
	}
	return base
}

// strictGenreFilter keeps only candidates overlapping the selected
// genres. When nothing overlaps the filter fails open (configurable)
// rather than returning an empty page.
func (s *Service) strictGenreFilter(items []models.Candidate, selected []string) []models.Candidate {
	if len(selected) == 0 {
		return items
	}
	matched := make([]models.Candidate, 0, len(items))
	for _, c := range items {
		if genres.Overlap(c.Genres, selected) > 0 {
			matched = append(matched, c)
		}
	}
	if len(matched) == 0 && s.cfg.FailOpen {
		return items
	}
	return matched
}

// latestBlend reserves a quota of the final list for recent releases,
// placing them first, then fills the rest from the score order.
func (s *Service) latestBlend(sorted []models.Candidate, limit int) []models.Candidate {
	if len(sorted) == 0 {
		return []models.Candidate{}
	}

	cutoff := s.now().Year() - s.cfg.LatestWindowYears
	quota := int(math.Ceil(float64(limit) * s.cfg.LatestQuota))

	var latest []models.Candidate
	for _, c := range sorted {
		if len(latest) >= quota {
			break
		}
		if year := numericYear(c.Year); year >= cutoff && year > 0 {
			latest = append(latest, c)
		}
	}

	taken := make(map[string]struct{}, len(latest))
	for _, c := range latest {
		taken[c.DedupKey()] = struct{}{}
	}

	out := append([]models.Candidate{}, latest...)
	for _, c := range sorted {
		if len(out) >= limit {
			break
		}
		if _, ok := taken[c.DedupKey()]; ok {
			continue
		}
		out = append(out, c)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func omdbKind(filter string) string {
	switch filter {
	case models.FilterMovies:
		return models.ContentTypeMovie
	case models.FilterSeries:
		return models.ContentTypeSeries
	default:
		return ""
	}
}
