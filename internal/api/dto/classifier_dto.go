package dto

// ClassifyRequest payload for the support classifier.
type ClassifyRequest struct {
	Message string `json:"message"`
}

// ClassifyResponse is the scored classification result.
type ClassifyResponse struct {
	Department string   `json:"department"`
	Confidence float64  `json:"confidence"`
	Reasons    []string `json:"reasons"`
	Crisis     bool     `json:"crisis"`
}
