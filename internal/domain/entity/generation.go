package entity

// DefaultConfidence is reported on every generation. It is not measured.
const DefaultConfidence = 0.85

type Info struct {
	Message string `json:"message"`
}

type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// GenerationRequest is the body of POST /ai/generate.
// Prompt is a pointer so that an absent prompt can be told apart from "".
type GenerationRequest struct {
	Prompt  *string `json:"prompt" validate:"required"`
	Context *string `json:"context"`
}

type GenerationResult struct {
	Response   string   `json:"response"`
	Confidence *float64 `json:"confidence"`
}

// Completion is what an AIProvider hands back for a single prompt.
type Completion struct {
	Text       string
	Model      string
	TokenCount int
}
