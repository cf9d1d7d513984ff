package metadata

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"reelstream/models"
	"reelstream/utils/genres"
)

const omdbBaseURL = "https://www.omdbapi.com/"

// omdbClient talks to the OMDb API. It carries a keyring rather than a
// single credential because free-tier keys exhaust their daily quota
// quickly under recommendation workloads.
type omdbClient struct {
	keys    keyring
	httpc   *http.Client
	baseURL string
	gate    throttle
}

func newOMDBClient(keys []string, httpc *http.Client) *omdbClient {
	return &omdbClient{
		keys:    newKeyring(keys),
		httpc:   httpc,
		baseURL: omdbBaseURL,
		gate:    throttle{minInterval: 50 * time.Millisecond},
	}
}

func (c *omdbClient) isConfigured() bool {
	return !c.keys.empty()
}

type omdbSearchResponse struct {
	Response string `json:"Response"`
	Error    string `json:"Error"`
	Search   []struct {
		Title  string `json:"Title"`
		Year   string `json:"Year"`
		IMDBID string `json:"imdbID"`
		Type   string `json:"Type"`
		Poster string `json:"Poster"`
	} `json:"Search"`
}

type omdbDetailResponse struct {
	Response   string `json:"Response"`
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	IMDBID     string `json:"imdbID"`
	Type       string `json:"Type"`
	Poster     string `json:"Poster"`
	Genre      string `json:"Genre"`
	Language   string `json:"Language"`
	IMDBRating string `json:"imdbRating"`
	Actors     string `json:"Actors"`
}

// search runs a keyword search. kind and year are optional narrowing
// parameters; an empty kind searches both movies and series.
func (c *omdbClient) search(ctx context.Context, term, kind, year string, page int) ([]models.Candidate, error) {
	if !c.isConfigured() {
		return nil, errNoAPIKeys
	}
	if page < 1 {
		page = 1
	}

	var body omdbSearchResponse
	err := c.keys.do(func(key string) error {
		params := url.Values{}
		params.Set("apikey", key)
		params.Set("s", term)
		params.Set("page", fmt.Sprintf("%d", page))
		if kind == models.ContentTypeMovie || kind == models.ContentTypeSeries {
			params.Set("type", kind)
		}
		if year != "" {
			params.Set("y", year)
		}
		c.gate.wait()
		body = omdbSearchResponse{}
		return getJSON(ctx, c.httpc, c.baseURL+"?"+params.Encode(), &body)
	})
	if err != nil {
		return nil, fmt.Errorf("omdb search %q: %w", term, err)
	}
	if body.Response != "True" {
		return nil, nil
	}

	items := make([]models.Candidate, 0, len(body.Search))
	for _, r := range body.Search {
		if r.Title == "" {
			continue
		}
		items = append(items, models.Candidate{
			Title:       r.Title,
			Year:        cleanNA(r.Year),
			ExternalID:  r.IMDBID,
			ContentType: mapOMDBType(r.Type),
			PosterURL:   cleanNA(r.Poster),
		})
	}
	return items, nil
}

// byID fetches full detail for a canonical ID. It returns (nil, nil)
// when the ID is unknown upstream.
func (c *omdbClient) byID(ctx context.Context, imdbID string) (*models.Candidate, error) {
	if !c.isConfigured() {
		return nil, errNoAPIKeys
	}

	var body omdbDetailResponse
	err := c.keys.do(func(key string) error {
		params := url.Values{}
		params.Set("apikey", key)
		params.Set("i", imdbID)
		c.gate.wait()
		body = omdbDetailResponse{}
		return getJSON(ctx, c.httpc, c.baseURL+"?"+params.Encode(), &body)
	})
	if err != nil {
		return nil, fmt.Errorf("omdb lookup %s: %w", imdbID, err)
	}
	if body.Response != "True" {
		log.Printf("[omdb] no detail record for %s", imdbID)
		return nil, nil
	}

	return &models.Candidate{
		Title:       body.Title,
		Year:        cleanNA(body.Year),
		ExternalID:  body.IMDBID,
		ContentType: mapOMDBType(body.Type),
		PosterURL:   cleanNA(body.Poster),
		Genres:      genres.Split(cleanNA(body.Genre)),
		Rating:      parseRating(body.IMDBRating),
		Language:    cleanNA(body.Language),
		Actors:      cleanNA(body.Actors),
	}, nil
}
