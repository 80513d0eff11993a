package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestStatusAdvancesForwardOnly(t *testing.T) {
	assert.True(t, TicketStatusDraft.CanAdvanceTo(TicketStatusAssignedDoctor))
	assert.True(t, TicketStatusAssignedDoctor.CanAdvanceTo(TicketStatusWaitingPharmacy))
	assert.True(t, TicketStatusInProgress.CanAdvanceTo(TicketStatusCompleted))

	// Never backwards.
	assert.False(t, TicketStatusCompleted.CanAdvanceTo(TicketStatusDraft))
	assert.False(t, TicketStatusWaitingPharmacy.CanAdvanceTo(TicketStatusInProgress))
	assert.False(t, TicketStatusAssignedDoctor.CanAdvanceTo(TicketStatusAssignedDoctor))
}

func TestInpatientAndOperationAreAlternatives(t *testing.T) {
	// Same rank: neither is an advance over the other.
	assert.False(t, TicketStatusInpatient.CanAdvanceTo(TicketStatusOperation))
	assert.False(t, TicketStatusOperation.CanAdvanceTo(TicketStatusInpatient))

	// Both sit between examination and pharmacy.
	assert.True(t, TicketStatusInProgress.CanAdvanceTo(TicketStatusInpatient))
	assert.True(t, TicketStatusInProgress.CanAdvanceTo(TicketStatusOperation))
	assert.True(t, TicketStatusInpatient.CanAdvanceTo(TicketStatusWaitingPharmacy))
	assert.True(t, TicketStatusOperation.CanAdvanceTo(TicketStatusCompleted))
}

func TestUnknownStatusNeverAdvances(t *testing.T) {
	unknown := TicketStatus("archived")
	assert.False(t, unknown.CanAdvanceTo(TicketStatusCompleted))
	assert.False(t, TicketStatusDraft.CanAdvanceTo(unknown))
	assert.False(t, unknown.IsValid())
}

func TestCareTypeDerivedFromRoom(t *testing.T) {
	outpatient := &Ticket{ID: 1, Status: TicketStatusInProgress}
	assert.Equal(t, CareOutpatient, outpatient.CareType())

	roomID := uuid.New()
	inpatient := &Ticket{ID: 2, Status: TicketStatusInpatient, RoomID: &roomID}
	assert.Equal(t, CareInpatient, inpatient.CareType())
}
