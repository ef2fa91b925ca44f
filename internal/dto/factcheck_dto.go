package dto

type FactCheckRequest struct {
	Text     string `json:"text" validate:"required"`
	Language string `json:"language,omitempty"`
}

type FactCheckResult struct {
	Statement string `json:"statement"`
	Found     bool   `json:"found"`
	Summary   string `json:"summary,omitempty"`
	URL       string `json:"url,omitempty"`
}

type FactCheckResponse struct {
	Results []*FactCheckResult `json:"results"`
}
