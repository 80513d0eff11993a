package dto

// ChatRequest sends one message about a ticket to the AI assistant.
type ChatRequest struct {
	TicketID int64  `json:"ticket_id" validate:"required"`
	Message  string `json:"message" validate:"required"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

// ComplaintRequest starts the pre-assessment flow.
type ComplaintRequest struct {
	Complaint string `json:"complaint" validate:"required"`
}

type QuestionsResponse struct {
	Questions []string `json:"questions"`
}

// SubmitPreAssessmentRequest carries the complaint plus the answer to every
// generated question, in the original question order.
type SubmitPreAssessmentRequest struct {
	Complaint string   `json:"complaint" validate:"required"`
	Questions []string `json:"questions" validate:"required,min=1"`
	Answers   []string `json:"answers" validate:"required,min=1"`
}

type PreAssessmentResponse struct {
	SeverityLevel           string `json:"severity_level,omitempty"`
	PredictedSpecialization string `json:"predicted_specialization,omitempty"`
	Summary                 string `json:"summary,omitempty"`
	TicketID                *int64 `json:"ticket_id,omitempty"`
}
