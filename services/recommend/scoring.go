package recommend

import (
	"math"
	"regexp"
	"strconv"
	"time"

	"reelstream/models"
	"reelstream/utils/genres"
)

var yearDigits = regexp.MustCompile(`\d{4}`)

// numericYear pulls the first 4-digit year out of values like "1994",
// "2008–2013" or "Arrival (2016)". Zero means no usable year.
func numericYear(year string) int {
	m := yearDigits.FindString(year)
	if m == "" {
		return 0
	}
	n, _ := strconv.Atoi(m)
	return n
}

// Score rates a candidate for a user. The weights favor selected-genre
// overlap, then the user's accumulated genre affinity, then recency and
// rating quality. Picking genres and matching none of them costs a
// flat penalty. The result is floored at zero and rounded to two
// decimals.
func Score(c models.Candidate, affinity map[string]float64, selected []string, now time.Time) float64 {
	score := 0.0

	overlap := genres.Overlap(c.Genres, selected)
	score += overlap * 45

	pref := 0.0
	for _, g := range c.Genres {
		if a, ok := affinity[genres.Normalize(g)]; ok {
			pref += math.Min(5, a)
		}
	}
	score += math.Min(25, pref*1.2)

	if year := numericYear(c.Year); year > 0 {
		switch diff := now.Year() - year; {
		case diff <= 1:
			score += 20
		case diff <= 3:
			score += 15
		case diff <= 5:
			score += 10
		case diff <= 10:
			score += 5
		case diff > 25:
			score -= 5
		}
	}

	if c.Rating > 0 {
		score += math.Max(0, math.Min(10, (c.Rating-5.5)*2.2))
	}

	if len(selected) > 0 && overlap == 0 {
		score -= 30
	}

	if score < 0 {
		score = 0
	}
	return math.Round(score*100) / 100
}
