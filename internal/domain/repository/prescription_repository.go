package repository

import (
	"context"

	"medisync/internal/domain/entity"
)

type PrescriptionRepository interface {
	// FindPending returns pending lines with medicine, ticket and the
	// ticket's patient profile embedded, ordered by id.
	FindPending(ctx context.Context) ([]entity.Prescription, error)
	// MarkDispensedByTicket flips every pending line of the ticket to
	// dispensed; returns affected rows.
	MarkDispensedByTicket(ctx context.Context, ticketID int64) (int64, error)
}
