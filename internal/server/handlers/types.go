package handlers

// SearchRequest is the text search form. The city is only trimmed; an empty
// one is accepted and ignored by the search itself.
type SearchRequest struct {
	City string `form:"city" json:"city"`
}

// LocateRequest carries the browser's geolocation result: a position, or
// the name of the error the browser reported.
type LocateRequest struct {
	Lat   *float64 `form:"lat" json:"lat" validate:"required_without=Error,omitempty,latitude"`
	Lon   *float64 `form:"lon" json:"lon" validate:"required_without=Error,omitempty,longitude"`
	Error string   `form:"error" json:"error" validate:"omitempty,oneof=denied unavailable timeout"`
}

// SelectRequest picks a dropdown entry into the search input.
type SelectRequest struct {
	City string `form:"city" json:"city" validate:"required"`
}

// ErrorResponse represents an error response with validation
type ErrorResponse struct {
	Error   string      `json:"error" validate:"required,min=1,max=500"`
	Code    string      `json:"code,omitempty" validate:"omitempty,min=1,max=50"`
	Details interface{} `json:"details,omitempty"`
}

// HealthResponse represents health check response with validation
type HealthResponse struct {
	Status    string `json:"status" validate:"required,oneof=ok alive ready unavailable"`
	Uptime    string `json:"uptime" validate:"required"`
	Timestamp string `json:"timestamp,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Error     string `json:"error,omitempty"`
}
