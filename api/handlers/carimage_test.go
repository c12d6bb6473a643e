package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shopsync/shopsync-api/api/handlers"
	"github.com/shopsync/shopsync-api/models"
)

func TestCarImage_CarImageHandler(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Client-ID test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "2021 Ford F-350 car", r.URL.Query().Get("query"))
		assert.Equal(t, "landscape", r.URL.Query().Get("orientation"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results": [{"urls": {"regular": "https://images.example.com/truck.jpg"}}]}`))
	}))
	defer upstream.Close()

	c := handlers.CarImage{
		AccessKey: "test-key",
		Client:    &http.Client{Timeout: time.Second},
		SearchURL: upstream.URL,
	}

	req, _ := http.NewRequest("GET", "/car-image?make=Ford&model=F-350&year=2021", nil)
	rr := httptest.NewRecorder()
	http.HandlerFunc(c.CarImageHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var got models.CarImageResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	if assert.NotNil(t, got.ImageURL) {
		assert.Equal(t, "https://images.example.com/truck.jpg", *got.ImageURL)
	}
}

func TestCarImage_CarImageHandlerNoKey(t *testing.T) {
	c := handlers.NewCarImage("")

	req, _ := http.NewRequest("GET", "/car-image?make=Ford&model=F-350", nil)
	rr := httptest.NewRecorder()
	http.HandlerFunc(c.CarImageHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"image_url": null}`, rr.Body.String())
}

func TestCarImage_CarImageHandlerUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer upstream.Close()

	c := handlers.CarImage{
		AccessKey: "test-key",
		Client:    &http.Client{Timeout: time.Second},
		SearchURL: upstream.URL,
	}

	req, _ := http.NewRequest("GET", "/car-image?make=Ford", nil)
	rr := httptest.NewRecorder()
	http.HandlerFunc(c.CarImageHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"image_url": null}`, rr.Body.String())
}

func TestCarImage_CarImageHandlerNoResults(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": []}`))
	}))
	defer upstream.Close()

	c := handlers.CarImage{
		AccessKey: "test-key",
		Client:    &http.Client{Timeout: time.Second},
		SearchURL: upstream.URL,
	}

	req, _ := http.NewRequest("GET", "/car-image?make=Edsel", nil)
	rr := httptest.NewRecorder()
	http.HandlerFunc(c.CarImageHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"image_url": null}`, rr.Body.String())
}
