package recommend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"reelstream/models"
)

var scoringNow = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func TestScoreGenreOverlapAndRecency(t *testing.T) {
	c := models.Candidate{
		Title:  "Fresh Horror",
		Year:   "2026",
		Genres: []string{"Horror"},
	}
	got := Score(c, nil, []string{"Horror"}, scoringNow)
	// full overlap (45) + same-year recency (20)
	assert.InDelta(t, 65.0, got, 1e-9)
}

func TestScorePartialOverlap(t *testing.T) {
	c := models.Candidate{
		Title:  "Mixed",
		Genres: []string{"Horror"},
	}
	got := Score(c, nil, []string{"Horror", "Comedy"}, scoringNow)
	// half overlap only
	assert.InDelta(t, 22.5, got, 1e-9)
}

func TestScoreNoOverlapPenaltyFloorsAtZero(t *testing.T) {
	c := models.Candidate{
		Title:  "Wrong Genre",
		Genres: []string{"Comedy"},
	}
	got := Score(c, nil, []string{"Horror"}, scoringNow)
	assert.Zero(t, got, "penalty cannot push the score below zero")
}

func TestScorePreferenceRatingAndAge(t *testing.T) {
	c := models.Candidate{
		Title:  "Old Favorite",
		Year:   "1990",
		Genres: []string{"Drama"},
		Rating: 9.3,
	}
	affinity := map[string]float64{"Drama": 10}
	got := Score(c, affinity, nil, scoringNow)
	// preference min(5,10)*1.2 = 6, age > 25y = -5, rating min(10,(9.3-5.5)*2.2) = 8.36
	assert.InDelta(t, 9.36, got, 1e-9)
}

func TestScorePreferenceCappedAt25(t *testing.T) {
	c := models.Candidate{
		Title:  "Everything",
		Genres: []string{"Action", "Drama", "Comedy", "Thriller", "Crime"},
	}
	affinity := map[string]float64{
		"Action": 10, "Drama": 10, "Comedy": 10, "Thriller": 10, "Crime": 10,
	}
	got := Score(c, affinity, nil, scoringNow)
	assert.InDelta(t, 25.0, got, 1e-9)
}

func TestScoreRecencyTiers(t *testing.T) {
	cases := []struct {
		year string
		want float64
	}{
		{"2025", 20},
		{"2023", 15},
		{"2021", 10},
		{"2017", 5},
		{"2010", 0},
		{"1999", -0}, // 27 years: -5 floored at 0 with nothing else
	}
	for _, tc := range cases {
		c := models.Candidate{Title: "Y", Year: tc.year}
		got := Score(c, nil, nil, scoringNow)
		want := tc.want
		if want < 0 {
			want = 0
		}
		assert.InDelta(t, want, got, 1e-9, "year %s", tc.year)
	}
}

func TestNumericYear(t *testing.T) {
	cases := map[string]int{
		"1994":           1994,
		"2008–2013":      2008,
		"Arrival (2016)": 2016,
		"Unknown":        0,
		"":               0,
	}
	for in, want := range cases {
		assert.Equal(t, want, numericYear(in), "input %q", in)
	}
}
