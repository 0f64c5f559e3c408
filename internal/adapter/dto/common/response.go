package common

// SuccessResponse is the envelope for every successful API response
type SuccessResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the envelope for every failed API response
type ErrorResponse struct {
	Code    interface{} `json:"code,omitempty" swaggertype:"string" example:"INVALID_REQUEST"`
	Message string      `json:"message,omitempty"`
	Info    string      `json:"info,omitempty"`
}

// HealthResponse reports liveness
type HealthResponse struct {
	Status      string `json:"status" example:"ok"`
	Environment string `json:"environment" example:"development"`
}
