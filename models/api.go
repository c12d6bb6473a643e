package models

// HealthCheckResponse returns the health check response
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}

// RootResponse is returned by the root liveness endpoint
type RootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

// CarImageResponse is returned by the car image lookup endpoint. ImageURL is
// null when no key is configured or the search came up empty.
type CarImageResponse struct {
	ImageURL *string `json:"image_url"`
}
