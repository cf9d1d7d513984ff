// Package dedupe collapses candidate lists gathered from multiple metadata
// services to unique entries.
package dedupe

import "reelstream/models"

// Candidates removes duplicates while preserving first-seen order. Two items
// collide when they share a dedup key (canonical external id, or the
// (title, year) composite when the id is missing or synthesized). On
// collision the higher-scored item wins, taking the first-seen position.
func Candidates(items []models.Candidate) []models.Candidate {
	out := make([]models.Candidate, 0, len(items))
	index := make(map[string]int, len(items))

	for _, item := range items {
		key := item.DedupKey()
		at, seen := index[key]
		if !seen {
			index[key] = len(out)
			out = append(out, item)
			continue
		}
		if item.Score() > out[at].Score() {
			out[at] = item
		}
	}
	return out
}
