package metadata

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"reelstream/models"
)

const (
	tmdbBaseURL      = "https://api.themoviedb.org/3"
	tmdbImageBaseURL = "https://image.tmdb.org/t/p/w300"

	// tmdbResultsPerKind bounds how many hits per endpoint get the
	// extra external-ID round trip.
	tmdbResultsPerKind = 5
)

// tmdbClient searches TMDB's movie and tv endpoints. TMDB results carry
// only a provider-local numeric ID, so each hit costs a second request
// to resolve the canonical ID; resolutions are cached, misses included.
type tmdbClient struct {
	apiKey  string
	httpc   *http.Client
	baseURL string
	ids     *idCache
	gate    throttle
}

func newTMDBClient(apiKey string, httpc *http.Client) *tmdbClient {
	return &tmdbClient{
		apiKey:  apiKey,
		httpc:   httpc,
		baseURL: tmdbBaseURL,
		ids:     newIDCache(),
		gate:    throttle{minInterval: 20 * time.Millisecond},
	}
}

func (c *tmdbClient) isConfigured() bool {
	return c.apiKey != ""
}

type tmdbSearchResponse struct {
	Results []struct {
		ID           int    `json:"id"`
		Title        string `json:"title"`
		Name         string `json:"name"`
		ReleaseDate  string `json:"release_date"`
		FirstAirDate string `json:"first_air_date"`
		PosterPath   string `json:"poster_path"`
		VoteAverage  float64 `json:"vote_average"`
	} `json:"results"`
}

type tmdbExternalIDsResponse struct {
	IMDBID string `json:"imdb_id"`
}

// search queries both the movie and tv endpoints and merges the hits.
// A failure on one endpoint does not discard the other's results.
func (c *tmdbClient) search(ctx context.Context, query string) ([]models.Candidate, error) {
	if !c.isConfigured() {
		return nil, fmt.Errorf("tmdb: api key not configured")
	}

	var (
		items   []models.Candidate
		lastErr error
	)
	for _, kind := range []string{"movie", "tv"} {
		got, err := c.searchKind(ctx, kind, query)
		if err != nil {
			log.Printf("[tmdb] %s search failed: %v", kind, err)
			lastErr = err
			continue
		}
		items = append(items, got...)
	}
	if len(items) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return items, nil
}

func (c *tmdbClient) searchKind(ctx context.Context, kind, query string) ([]models.Candidate, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("query", query)

	c.gate.wait()
	var body tmdbSearchResponse
	if err := getJSON(ctx, c.httpc, c.baseURL+"/search/"+kind+"?"+params.Encode(), &body); err != nil {
		return nil, err
	}

	results := body.Results
	if len(results) > tmdbResultsPerKind {
		results = results[:tmdbResultsPerKind]
	}

	items := make([]models.Candidate, 0, len(results))
	for _, r := range results {
		title := r.Title
		date := r.ReleaseDate
		contentType := models.ContentTypeMovie
		if kind == "tv" {
			title = r.Name
			date = r.FirstAirDate
			contentType = models.ContentTypeSeries
		}
		if title == "" {
			continue
		}

		poster := ""
		if r.PosterPath != "" {
			poster = tmdbImageBaseURL + r.PosterPath
		}
		items = append(items, models.Candidate{
			Title:       title,
			Year:        yearFromDate(date),
			ExternalID:  c.resolveID(ctx, kind, r.ID),
			ContentType: contentType,
			PosterURL:   poster,
			Rating:      r.VoteAverage,
		})
	}
	return items, nil
}

// resolveID maps a TMDB numeric ID to its canonical ID, falling back to
// a provider-prefixed placeholder when no canonical ID exists or the
// lookup fails. Both outcomes are cached.
func (c *tmdbClient) resolveID(ctx context.Context, kind string, tmdbID int) string {
	if canonical, ok := c.ids.get(kind, tmdbID); ok {
		if canonical == "" {
			return c.placeholderID(tmdbID)
		}
		return canonical
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)

	c.gate.wait()
	var body tmdbExternalIDsResponse
	err := getJSON(ctx, c.httpc, fmt.Sprintf("%s/%s/%d/external_ids?%s", c.baseURL, kind, tmdbID, params.Encode()), &body)
	if err != nil {
		log.Printf("[tmdb] external id lookup for %s/%d failed: %v", kind, tmdbID, err)
		c.ids.put(kind, tmdbID, "")
		return c.placeholderID(tmdbID)
	}

	c.ids.put(kind, tmdbID, body.IMDBID)
	if body.IMDBID == "" {
		return c.placeholderID(tmdbID)
	}
	return body.IMDBID
}

func (c *tmdbClient) placeholderID(tmdbID int) string {
	return "tmdb:" + strconv.Itoa(tmdbID)
}
