package metadata

import (
	"context"
	"fmt"
	"net/http"

	"reelstream/models"
)

const sampleBaseURL = "https://api.sampleapis.com/movies"

// sampleClient serves curated category lists (comedy, drama, horror and
// friends). The lists are movie-only and carry no year field beyond
// what the titles themselves embed.
type sampleClient struct {
	httpc   *http.Client
	baseURL string
}

func newSampleClient(httpc *http.Client) *sampleClient {
	return &sampleClient{httpc: httpc, baseURL: sampleBaseURL}
}

type sampleMovie struct {
	Title     string `json:"title"`
	IMDBID    string `json:"imdbId"`
	PosterURL string `json:"posterURL"`
}

func (c *sampleClient) category(ctx context.Context, category string) ([]models.Candidate, error) {
	var body []sampleMovie
	if err := getJSON(ctx, c.httpc, c.baseURL+"/"+category, &body); err != nil {
		return nil, fmt.Errorf("sample category %q: %w", category, err)
	}

	items := make([]models.Candidate, 0, len(body))
	for _, r := range body {
		if r.Title == "" {
			continue
		}
		items = append(items, models.Candidate{
			Title:       r.Title,
			Year:        yearFromTitle(r.Title),
			ExternalID:  r.IMDBID,
			ContentType: models.ContentTypeMovie,
			PosterURL:   r.PosterURL,
		})
	}
	return items, nil
}
