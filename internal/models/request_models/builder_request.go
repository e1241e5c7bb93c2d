package request_models

type BuilderActionRequest struct {
	Kind string `json:"kind" binding:"required"`
	// free-form prompt or publish target; the gate only cares about Kind
	Payload string `json:"payload,omitempty"`
}
