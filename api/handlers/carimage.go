package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shopsync/shopsync-api/models"
)

const unsplashSearchURL = "https://api.unsplash.com/search/photos"

// CarImage looks up a stock photo of a vehicle through the Unsplash search
// API. The endpoint never errors outward: a missing access key or an
// upstream failure produces a null image_url.
type CarImage struct {
	AccessKey string
	Client    *http.Client
	SearchURL string
}

// NewCarImage returns a CarImage handler with a sane request timeout
func NewCarImage(accessKey string) CarImage {
	return CarImage{
		AccessKey: accessKey,
		Client:    &http.Client{Timeout: 10 * time.Second},
		SearchURL: unsplashSearchURL,
	}
}

type unsplashSearchResponse struct {
	Results []struct {
		URLs struct {
			Regular string `json:"regular"`
		} `json:"urls"`
	} `json:"results"`
}

// CarImageHandler returns the first landscape Unsplash result for
// "<year> <make> <model> car", or a null image_url when nothing matches
func (c CarImage) CarImageHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	imageURL := c.lookup(
		r.URL.Query().Get("make"),
		r.URL.Query().Get("model"),
		r.URL.Query().Get("year"),
	)

	b, err := json.Marshal(models.CarImageResponse{ImageURL: imageURL})
	if err != nil {
		zap.S().Errorw("failed to marshal car image response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

func (c CarImage) lookup(make, model, year string) *string {
	if c.AccessKey == "" {
		return nil
	}

	query := strings.TrimSpace(fmt.Sprintf("%s %s %s car", year, make, model))
	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", "1")
	params.Set("orientation", "landscape")

	req, err := http.NewRequest(http.MethodGet, c.SearchURL+"?"+params.Encode(), nil)
	if err != nil {
		zap.S().Warnw("failed to build unsplash request", "error", err)
		return nil
	}
	req.Header.Set("Authorization", "Client-ID "+c.AccessKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		zap.S().Warnw("unsplash request failed", "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		zap.S().Warnw("unsplash returned non-200", "status", resp.StatusCode)
		return nil
	}

	var search unsplashSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		zap.S().Warnw("failed to decode unsplash response", "error", err)
		return nil
	}
	if len(search.Results) == 0 {
		return nil
	}
	return &search.Results[0].URLs.Regular
}
