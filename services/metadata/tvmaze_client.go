package metadata

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"reelstream/models"
)

const (
	tvmazeBaseURL    = "https://api.tvmaze.com"
	tvmazeMaxResults = 10
)

// tvmazeClient searches the TVMaze show directory. TVMaze needs no
// credentials and often embeds the canonical ID directly in the
// response, so it is the cheapest series source.
type tvmazeClient struct {
	httpc   *http.Client
	baseURL string
}

func newTVMazeClient(httpc *http.Client) *tvmazeClient {
	return &tvmazeClient{httpc: httpc, baseURL: tvmazeBaseURL}
}

type tvmazeSearchResult struct {
	Show struct {
		ID        int    `json:"id"`
		Name      string `json:"name"`
		Premiered string `json:"premiered"`
		Externals struct {
			IMDB string `json:"imdb"`
		} `json:"externals"`
		Image *struct {
			Medium string `json:"medium"`
		} `json:"image"`
	} `json:"show"`
}

func (c *tvmazeClient) search(ctx context.Context, query string) ([]models.Candidate, error) {
	params := url.Values{}
	params.Set("q", query)

	var body []tvmazeSearchResult
	if err := getJSON(ctx, c.httpc, c.baseURL+"/search/shows?"+params.Encode(), &body); err != nil {
		return nil, fmt.Errorf("tvmaze search %q: %w", query, err)
	}
	if len(body) > tvmazeMaxResults {
		body = body[:tvmazeMaxResults]
	}

	items := make([]models.Candidate, 0, len(body))
	for _, r := range body {
		if r.Show.Name == "" {
			continue
		}
		externalID := r.Show.Externals.IMDB
		if externalID == "" {
			externalID = "tvmaze:" + strconv.Itoa(r.Show.ID)
		}
		poster := ""
		if r.Show.Image != nil {
			poster = r.Show.Image.Medium
		}
		items = append(items, models.Candidate{
			Title:       r.Show.Name,
			Year:        yearFromDate(r.Show.Premiered),
			ExternalID:  externalID,
			ContentType: models.ContentTypeSeries,
			PosterURL:   poster,
		})
	}
	return items, nil
}
