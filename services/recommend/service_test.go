package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reelstream/models"
)

type stubMetadata struct {
	keywordResults []models.Candidate
	keywordErr     error
	discoverErr    error
	sampleErr      error
	lookupByID     map[string]models.Candidate
	lookupErr      error

	calls atomic.Int32
}

func (s *stubMetadata) SearchKeyword(ctx context.Context, term, kind, year string, page int) ([]models.Candidate, error) {
	s.calls.Add(1)
	return s.keywordResults, s.keywordErr
}

func (s *stubMetadata) Discover(ctx context.Context, query string) ([]models.Candidate, error) {
	s.calls.Add(1)
	return nil, s.discoverErr
}

func (s *stubMetadata) SampleCategory(ctx context.Context, category string) ([]models.Candidate, error) {
	s.calls.Add(1)
	return nil, s.sampleErr
}

func (s *stubMetadata) Lookup(ctx context.Context, externalID string) (*models.Candidate, error) {
	s.calls.Add(1)
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	if c, ok := s.lookupByID[externalID]; ok {
		return &c, nil
	}
	return nil, nil
}

type stubProfiles struct {
	profile models.PreferenceProfile
	err     error
}

func (s *stubProfiles) ProfileFor(userID string) (models.PreferenceProfile, error) {
	if s.err != nil {
		return models.NewPreferenceProfile(), s.err
	}
	return s.profile, nil
}

func newTestEngine(metadata *stubMetadata) *Service {
	svc := NewService(metadata, &stubProfiles{profile: models.NewPreferenceProfile()}, DefaultConfig())
	svc.now = func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) }
	return svc
}

func TestRecommendFallsBackWhenAllSourcesFail(t *testing.T) {
	boom := errors.New("upstream down")
	metadata := &stubMetadata{keywordErr: boom, discoverErr: boom, sampleErr: boom, lookupErr: boom}
	svc := newTestEngine(metadata)

	items, usedFallback, err := svc.Recommend(context.Background(), models.RecommendRequest{
		UserID:      "u1",
		Genres:      []string{"Horror"},
		ContentType: models.FilterMovies,
		Limit:       6,
	})
	require.NoError(t, err)
	assert.True(t, usedFallback)
	require.NotEmpty(t, items)
	assert.LessOrEqual(t, len(items), 6)
	for _, c := range items {
		assert.Equal(t, models.ContentTypeMovie, c.ContentType, "%s should be a movie", c.Title)
		assert.Contains(t, c.Genres, "Horror", "%s should carry the selected genre", c.Title)
	}
}

func TestRecommendBusyReturnsImmediatelyWithoutNetwork(t *testing.T) {
	metadata := &stubMetadata{}
	svc := newTestEngine(metadata)
	svc.loading.Store(true)

	items, _, err := svc.Recommend(context.Background(), models.RecommendRequest{Limit: 5})
	assert.ErrorIs(t, err, ErrBusy)
	assert.Empty(t, items)
	assert.Zero(t, metadata.calls.Load(), "busy engine must not touch the network")
}

func TestRecommendHonorsLimit(t *testing.T) {
	var pool []models.Candidate
	for _, title := range []string{
		"Alpha", "Beta", "Gamma", "Delta", "Epsilon", "Zeta",
		"Eta", "Theta", "Iota", "Kappa", "Lambda", "Mu",
	} {
		pool = append(pool, models.Candidate{
			Title:       title,
			Year:        "2024",
			ExternalID:  "tt-" + title,
			ContentType: models.ContentTypeMovie,
			Genres:      []string{"Action"},
			Rating:      7.0,
		})
	}
	metadata := &stubMetadata{keywordResults: pool}
	svc := newTestEngine(metadata)

	items, usedFallback, err := svc.Recommend(context.Background(), models.RecommendRequest{
		UserID:      "u1",
		Genres:      []string{"Action"},
		ContentType: models.FilterMovies,
		Limit:       5,
	})
	require.NoError(t, err)
	assert.False(t, usedFallback)
	assert.Len(t, items, 5)
	for _, c := range items {
		assert.Greater(t, c.AIScore, 0.0, "%s should carry a score", c.Title)
	}
}

func TestRecommendEnrichmentMergesDetail(t *testing.T) {
	thin := models.Candidate{
		Title:       "Sparse",
		ExternalID:  "tt0000010",
		ContentType: models.ContentTypeMovie,
	}
	metadata := &stubMetadata{
		keywordResults: []models.Candidate{thin},
		lookupByID: map[string]models.Candidate{
			"tt0000010": {
				Title:      "Sparse",
				Year:       "2025",
				ExternalID: "tt0000010",
				Genres:     []string{"Thriller"},
				Rating:     8.0,
				PosterURL:  "https://img.test/sparse.jpg",
			},
		},
	}
	svc := newTestEngine(metadata)

	items, _, err := svc.Recommend(context.Background(), models.RecommendRequest{
		UserID:      "u1",
		ContentType: models.FilterMovies,
		Limit:       3,
	})
	require.NoError(t, err)
	var found *models.Candidate
	for i := range items {
		if items[i].ExternalID == "tt0000010" {
			found = &items[i]
			break
		}
	}
	require.NotNil(t, found, "enriched candidate should survive the pipeline")
	assert.Equal(t, "2025", found.Year)
	assert.Equal(t, []string{"Thriller"}, found.Genres)
	assert.InDelta(t, 8.0, found.Rating, 1e-9)
}

func TestEnrichmentStopsAtBudget(t *testing.T) {
	details := make(map[string]models.Candidate)
	var thin []models.Candidate
	for i := 0; i < 40; i++ {
		id := fmt.Sprintf("tt%07d", i)
		thin = append(thin, models.Candidate{Title: fmt.Sprintf("Movie %d", i), ExternalID: id})
		details[id] = models.Candidate{Title: fmt.Sprintf("Movie %d", i), ExternalID: id, Year: "2020"}
	}
	metadata := &stubMetadata{lookupByID: details}
	svc := newTestEngine(metadata)

	got := svc.enrich(context.Background(), thin)
	require.Len(t, got, 40)

	assert.EqualValues(t, svc.cfg.EnrichLimit, metadata.calls.Load(), "one lookup per candidate inside the budget")
	for i, c := range got {
		assert.Equal(t, thin[i].ExternalID, c.ExternalID, "input order must be preserved")
		if i < svc.cfg.EnrichLimit {
			assert.Equal(t, "2020", c.Year, "%s should be enriched", c.ExternalID)
		} else {
			assert.Empty(t, c.Year, "%s is past the budget and must pass through untouched", c.ExternalID)
		}
	}
}

func TestStrictGenreFilter(t *testing.T) {
	matching := models.Candidate{Title: "Match", Genres: []string{"Horror"}}
	other := models.Candidate{Title: "Other", Genres: []string{"Comedy"}}

	svc := newTestEngine(&stubMetadata{})

	got := svc.strictGenreFilter([]models.Candidate{matching, other}, []string{"Horror"})
	require.Len(t, got, 1)
	assert.Equal(t, "Match", got[0].Title)

	// fail-open: nothing matches, everything survives
	got = svc.strictGenreFilter([]models.Candidate{other}, []string{"Horror"})
	assert.Len(t, got, 1)

	// fail-closed when configured
	svc.cfg.FailOpen = false
	got = svc.strictGenreFilter([]models.Candidate{other}, []string{"Horror"})
	assert.Empty(t, got)
}

func TestLatestBlendReservesQuotaForRecent(t *testing.T) {
	svc := newTestEngine(&stubMetadata{})

	sorted := []models.Candidate{
		{Title: "Top Classic", Year: "1994", ExternalID: "tt1", AIScore: 90},
		{Title: "Second Classic", Year: "1999", ExternalID: "tt2", AIScore: 80},
		{Title: "Recent A", Year: "2026", ExternalID: "tt3", AIScore: 50},
		{Title: "Recent B", Year: "2025", ExternalID: "tt4", AIScore: 40},
		{Title: "Third Classic", Year: "2001", ExternalID: "tt5", AIScore: 30},
	}

	got := svc.latestBlend(sorted, 4)
	require.Len(t, got, 4)
	// quota = ceil(4*0.35) = 2 recent items lead the list
	assert.Equal(t, "Recent A", got[0].Title)
	assert.Equal(t, "Recent B", got[1].Title)
	assert.Equal(t, "Top Classic", got[2].Title)
	assert.Equal(t, "Second Classic", got[3].Title)
}

func TestMergeCandidateKeepsBaseWhenDetailEmpty(t *testing.T) {
	base := models.Candidate{
		Title:       "Base",
		Year:        "2001",
		ExternalID:  "tt9",
		ContentType: models.ContentTypeMovie,
		Genres:      []string{"Drama"},
		Rating:      6.0,
	}
	got := mergeCandidate(base, models.Candidate{Year: "2002"})
	assert.Equal(t, "Base", got.Title)
	assert.Equal(t, "2002", got.Year)
	assert.Equal(t, []string{"Drama"}, got.Genres)
	assert.InDelta(t, 6.0, got.Rating, 1e-9)
}

func TestFallbackCatalogFilters(t *testing.T) {
	hindi := fallbackRecommendations(models.FilterAll, 50, nil, models.LanguageHindi)
	require.NotEmpty(t, hindi)
	for _, c := range hindi {
		assert.Equal(t, "Hindi", c.Language, "%s should be Hindi content", c.Title)
	}

	english := fallbackRecommendations(models.FilterSeries, 50, nil, models.LanguageEnglish)
	require.NotEmpty(t, english)
	for _, c := range english {
		assert.Equal(t, models.ContentTypeSeries, c.ContentType)
		assert.NotEqual(t, "Hindi", c.Language)
	}

	// genre filter applies only when it matches something
	unmatched := fallbackRecommendations(models.FilterMovies, 50, []string{"Western"}, models.LanguageAll)
	assert.NotEmpty(t, unmatched, "unmatched genre filter falls back to the full set")
}
