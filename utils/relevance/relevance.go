// Package relevance scores how well a candidate title matches a free-text
// query. Scores range 0-100; higher is better. Rules are tried in priority
// order and the first match wins.
package relevance

import "strings"

// Score computes the full relevance score:
//
//	exact match        -> 100
//	title starts with  -> 90
//	title contains     -> 70
//	word-level partial -> (matched query words / total query words) * 60
func Score(title, query string) float64 {
	titleLower := strings.ToLower(title)
	queryLower := strings.ToLower(query)

	if base, ok := baseScore(titleLower, queryLower); ok {
		return base
	}
	return wordScore(titleLower, queryLower)
}

// FastScore skips the word-level tier. The search aggregator uses it while
// racing its overall deadline.
func FastScore(title, query string) float64 {
	base, _ := baseScore(strings.ToLower(title), strings.ToLower(query))
	return base
}

func baseScore(titleLower, queryLower string) (float64, bool) {
	switch {
	case titleLower == queryLower:
		return 100, true
	case strings.HasPrefix(titleLower, queryLower):
		return 90, true
	case strings.Contains(titleLower, queryLower):
		return 70, true
	}
	return 0, false
}

// wordScore credits each query word that some title word starts with or
// contains.
func wordScore(titleLower, queryLower string) float64 {
	queryWords := strings.Fields(queryLower)
	if len(queryWords) == 0 {
		return 0
	}
	titleWords := strings.Fields(titleLower)

	matches := 0
	for _, qw := range queryWords {
		for _, tw := range titleWords {
			if strings.HasPrefix(tw, qw) || strings.Contains(tw, qw) {
				matches++
				break
			}
		}
	}
	return float64(matches) / float64(len(queryWords)) * 60
}
