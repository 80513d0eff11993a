package converter

import (
	"medisync/internal/delivery/dto"
	"medisync/internal/domain/entity"

	"github.com/google/uuid"
)

// InvoiceToResponse converts an Invoice; the total is re-derived from the
// fee components rather than read from storage.
func InvoiceToResponse(invoice *entity.Invoice) *dto.InvoiceResponse {
	if invoice == nil {
		return nil
	}

	response := &dto.InvoiceResponse{
		ID:          invoice.ID,
		TicketID:    invoice.TicketID,
		DoctorFee:   invoice.DoctorFee,
		MedicineFee: invoice.MedicineFee,
		RoomFee:     invoice.RoomFee,
		TotalAmount: invoice.Total(),
		Status:      invoice.Status,
		IssuedAt:    invoice.IssuedAt,
	}

	if invoice.Ticket.ID != 0 {
		response.FoNote = invoice.Ticket.FoNote
		if invoice.Ticket.Patient.ID != uuid.Nil {
			response.PatientName = invoice.Ticket.Patient.Name
		}
	}

	return response
}

// InvoicesToResponses converts a slice of invoices.
func InvoicesToResponses(invoices []entity.Invoice) []dto.InvoiceResponse {
	responses := make([]dto.InvoiceResponse, len(invoices))
	for i, invoice := range invoices {
		resp := InvoiceToResponse(&invoice)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
