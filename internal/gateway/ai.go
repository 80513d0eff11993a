package gateway

import (
	"context"

	"github.com/google/uuid"
)

// AIAnalysis is the triage suggestion for an intake note. Every field is a
// suggestion for the front-office operator, never authoritative.
type AIAnalysis struct {
	PredictedSpecialization string     `json:"predicted_specialization,omitempty"`
	RecommendedDoctorID     *uuid.UUID `json:"recommended_doctor_id,omitempty"`
	RecommendedDoctorName   string     `json:"recommended_doctor_name,omitempty"`
	RequiresInpatient       bool       `json:"requires_inpatient"`
	SeverityLevel           string     `json:"severity_level"`
	Reasoning               string     `json:"reasoning"`
}

type analyzeTicketRequest struct {
	FoNote    string     `json:"fo_note"`
	PatientID *uuid.UUID `json:"patient_id,omitempty"`
}

type analyzeTicketResponse struct {
	Status   string      `json:"status"`
	Analysis *AIAnalysis `json:"analysis,omitempty"`
	Message  string      `json:"message,omitempty"`
}

// AnalyzeTicket runs AI triage over a front-office intake note. A backend
// that answers 200 with status "error" is surfaced as an APIError too so
// callers handle exactly one failure kind.
func (c *Client) AnalyzeTicket(ctx context.Context, foNote string, patientID *uuid.UUID) (*AIAnalysis, error) {
	var res analyzeTicketResponse
	err := c.post(ctx, "/api/ai/analyze-ticket", analyzeTicketRequest{FoNote: foNote, PatientID: patientID}, &res)
	if err != nil {
		return nil, err
	}
	if res.Status != "success" || res.Analysis == nil {
		message := res.Message
		if message == "" {
			message = "AI analysis failed"
		}
		return nil, &APIError{Status: 200, Message: message}
	}
	return res.Analysis, nil
}

type doctorAssistRequest struct {
	NIK         string `json:"nik"`
	DoctorDraft string `json:"doctor_draft,omitempty"`
}

type doctorAssistResponse struct {
	Suggestion string `json:"suggestion"`
}

// DoctorAssist asks the AI for a diagnosis-note suggestion based on the
// patient's history and the doctor's current draft.
func (c *Client) DoctorAssist(ctx context.Context, nik, doctorDraft string) (string, error) {
	var res doctorAssistResponse
	if err := c.post(ctx, "/api/ai/doctor-assist", doctorAssistRequest{NIK: nik, DoctorDraft: doctorDraft}, &res); err != nil {
		return "", err
	}
	return res.Suggestion, nil
}

type patientChatRequest struct {
	TicketID string `json:"ticket_id"`
	Message  string `json:"message"`
}

type patientChatResponse struct {
	Reply   string `json:"reply,omitempty"`
	Message string `json:"message,omitempty"`
}

// PatientChat sends one chat message about a ticket and returns the AI reply.
func (c *Client) PatientChat(ctx context.Context, ticketID, message string) (string, error) {
	var res patientChatResponse
	if err := c.post(ctx, "/api/ai/patient-chat", patientChatRequest{TicketID: ticketID, Message: message}, &res); err != nil {
		return "", err
	}
	if res.Reply != "" {
		return res.Reply, nil
	}
	return res.Message, nil
}

type questionsResponse struct {
	Status    string   `json:"status"`
	Questions []string `json:"questions"`
}

// GeneratePreAssessmentQuestions asks for 3-5 follow-up questions to the
// patient's complaint. The backend expects the complaint as a bare JSON
// string, not an object.
func (c *Client) GeneratePreAssessmentQuestions(ctx context.Context, complaint string) ([]string, error) {
	var res questionsResponse
	if err := c.post(ctx, "/api/ai/generate-pre-assessment-questions", complaint, &res); err != nil {
		return nil, err
	}
	if res.Status == "error" || len(res.Questions) == 0 {
		return nil, &APIError{Status: 200, Message: "could not generate follow-up questions"}
	}
	return res.Questions, nil
}

// QAEntry is one turn of the pre-assessment dialogue.
type QAEntry struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// PreAssessmentResult is the triage summary produced from the Q&A history.
type PreAssessmentResult struct {
	Status                  string `json:"status"`
	SeverityLevel           string `json:"severity_level,omitempty"`
	PredictedSpecialization string `json:"predicted_specialization,omitempty"`
	Summary                 string `json:"summary,omitempty"`
	TicketID                *int64 `json:"ticket_id,omitempty"`
	Detail                  string `json:"detail,omitempty"`
}

// SubmitPreAssessment submits the full Q&A history. The backend expects a
// bare JSON array as the body; preserved as-is like the bare-string endpoint.
func (c *Client) SubmitPreAssessment(ctx context.Context, history []QAEntry) (*PreAssessmentResult, error) {
	var res PreAssessmentResult
	if err := c.post(ctx, "/api/ai/submit-pre-assessment", history, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
