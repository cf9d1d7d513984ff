package preferences

import (
	"sort"

	"reelstream/models"
	"reelstream/utils/genres"
)

// maxAffinity caps how much weight any single genre can accumulate so
// one binge cannot drown out the rest of the profile.
const maxAffinity = 10

// historyLister is the slice of the history service this package needs.
type historyLister interface {
	List(userID string) ([]models.WatchRecord, error)
}

// Service derives a taste profile from watch history on demand. The
// profile is never stored; history is the single source of truth.
type Service struct {
	history historyLister
}

func NewService(history historyLister) *Service {
	return &Service{history: history}
}

// ProfileFor computes the profile for a user. A user with no history
// gets an empty profile, not an error.
func (s *Service) ProfileFor(userID string) (models.PreferenceProfile, error) {
	records, err := s.history.List(userID)
	if err != nil {
		return models.NewPreferenceProfile(), err
	}
	return Compute(records), nil
}

// Compute builds a profile from watch records. Each genre occurrence
// adds one point of affinity up to the cap; raw counts stay uncapped.
// Records without genre data still count toward the total.
func Compute(records []models.WatchRecord) models.PreferenceProfile {
	profile := models.NewPreferenceProfile()
	profile.TotalWatched = len(records)

	for _, r := range records {
		for _, g := range genres.Split(r.Genre) {
			profile.WatchedGenreCounts[g]++
			if profile.GenreAffinity[g] < maxAffinity {
				profile.GenreAffinity[g]++
			}
		}
	}
	return profile
}

// TopGenres returns up to n genres ordered by affinity, strongest
// first, with alphabetical tie-breaking for stable output.
func TopGenres(profile models.PreferenceProfile, n int) []string {
	out := make([]string, 0, len(profile.GenreAffinity))
	for g := range profile.GenreAffinity {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		ai, aj := profile.GenreAffinity[out[i]], profile.GenreAffinity[out[j]]
		if ai != aj {
			return ai > aj
		}
		return out[i] < out[j]
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
