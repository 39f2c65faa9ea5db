package common

// ErrorResponse is the envelope every failed request is rendered with
type ErrorResponse struct {
	OK    bool        `json:"ok"`
	Error string      `json:"error"`
	Code  interface{} `json:"code,omitempty" swaggertype:"string"`
	Info  string      `json:"info,omitempty"`
	// Generated is set when the summary was produced but could not be stored
	Generated string `json:"generated,omitempty"`
}

// HealthResponse is returned by the health probe
type HealthResponse struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
}
