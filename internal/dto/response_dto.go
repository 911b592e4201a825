package dto

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// StatusResponse is the common envelope of every subscription endpoint.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func Error(message string) StatusResponse {
	return StatusResponse{Status: StatusError, Message: message}
}

func Success(message string) StatusResponse {
	return StatusResponse{Status: StatusSuccess, Message: message}
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
