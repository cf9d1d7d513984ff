package metadata

import (
	"regexp"
	"strconv"
	"strings"

	"reelstream/models"
)

var yearPattern = regexp.MustCompile(`\((\d{4})\)`)

// cleanNA maps OMDb's literal "N/A" placeholder to an empty string.
func cleanNA(v string) string {
	if v == "N/A" {
		return ""
	}
	return v
}

func parseRating(v string) float64 {
	v = cleanNA(v)
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

func mapOMDBType(t string) string {
	switch strings.ToLower(t) {
	case "movie":
		return models.ContentTypeMovie
	case "series", "episode":
		return models.ContentTypeSeries
	default:
		return models.ContentTypeUnknown
	}
}

// inferContentType guesses movie vs series for providers that do not
// report a type. A dash in the year field ("2015–2019") or a series
// marker in the title indicates episodic content.
func inferContentType(title, year string) string {
	if strings.ContainsAny(year, "–-") && len(year) > 4 {
		return models.ContentTypeSeries
	}
	lower := strings.ToLower(title)
	if strings.Contains(lower, "season") || strings.Contains(lower, "series") {
		return models.ContentTypeSeries
	}
	return models.ContentTypeMovie
}

// yearFromDate trims an ISO date ("2019-05-04") down to its year.
func yearFromDate(date string) string {
	if len(date) >= 4 {
		return date[:4]
	}
	return ""
}

// yearFromTitle pulls a parenthesized year out of titles like
// "Arrival (2016)".
func yearFromTitle(title string) string {
	m := yearPattern.FindStringSubmatch(title)
	if m == nil {
		return ""
	}
	return m[1]
}
