package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"reelstream/models"
	"reelstream/utils/genres"
)

const discoveryBaseURL = "https://imdb.iamidiotareyoutoo.com/search"

// discoveryClient queries a free full-text title index. It needs no
// credentials, which makes it the primary keyless search source, but
// its records are thin: no genres or ratings until a detail lookup.
type discoveryClient struct {
	httpc   *http.Client
	baseURL string
}

func newDiscoveryClient(httpc *http.Client) *discoveryClient {
	return &discoveryClient{httpc: httpc, baseURL: discoveryBaseURL}
}

type discoverySearchResponse struct {
	OK          bool `json:"ok"`
	Description []struct {
		Title  string `json:"#TITLE"`
		Year   int    `json:"#YEAR"`
		IMDBID string `json:"#IMDB_ID"`
		Actors string `json:"#ACTORS"`
		Poster string `json:"#IMG_POSTER"`
	} `json:"description"`
}

type discoveryDetailResponse struct {
	OK    bool `json:"ok"`
	Short struct {
		Name            string      `json:"name"`
		DatePublished   string      `json:"datePublished"`
		Image           string      `json:"image"`
		Genre           stringList  `json:"genre"`
		AggregateRating struct {
			RatingValue float64 `json:"ratingValue"`
		} `json:"aggregateRating"`
	} `json:"short"`
}

// stringList accepts a JSON string or array of strings; the detail
// endpoint emits either depending on the record.
type stringList []string

func (s *stringList) UnmarshalJSON(data []byte) error {
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*s = many
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	if one != "" {
		*s = []string{one}
	}
	return nil
}

func (c *discoveryClient) search(ctx context.Context, query string) ([]models.Candidate, error) {
	params := url.Values{}
	params.Set("q", query)

	var body discoverySearchResponse
	if err := getJSON(ctx, c.httpc, c.baseURL+"?"+params.Encode(), &body); err != nil {
		return nil, fmt.Errorf("discovery search %q: %w", query, err)
	}
	if !body.OK {
		return nil, nil
	}

	items := make([]models.Candidate, 0, len(body.Description))
	for _, r := range body.Description {
		if r.Title == "" {
			continue
		}
		year := ""
		if r.Year > 0 {
			year = strconv.Itoa(r.Year)
		}
		items = append(items, models.Candidate{
			Title:       r.Title,
			Year:        year,
			ExternalID:  r.IMDBID,
			ContentType: inferContentType(r.Title, year),
			PosterURL:   r.Poster,
			Actors:      r.Actors,
		})
	}
	return items, nil
}

// detail fetches the record behind a canonical ID. It returns
// (nil, nil) when the index has no record for the ID.
func (c *discoveryClient) detail(ctx context.Context, externalID string) (*models.Candidate, error) {
	params := url.Values{}
	params.Set("tt", externalID)

	var body discoveryDetailResponse
	if err := getJSON(ctx, c.httpc, c.baseURL+"?"+params.Encode(), &body); err != nil {
		return nil, fmt.Errorf("discovery detail %s: %w", externalID, err)
	}
	if !body.OK || body.Short.Name == "" {
		return nil, nil
	}

	normalized := make([]string, 0, len(body.Short.Genre))
	for _, g := range body.Short.Genre {
		if g = genres.Normalize(g); g != "" {
			normalized = append(normalized, g)
		}
	}
	year := yearFromDate(body.Short.DatePublished)
	return &models.Candidate{
		Title:       body.Short.Name,
		Year:        year,
		ExternalID:  externalID,
		ContentType: inferContentType(body.Short.Name, year),
		PosterURL:   body.Short.Image,
		Genres:      normalized,
		Rating:      body.Short.AggregateRating.RatingValue,
	}, nil
}
