package controller

import (
	"context"
	"errors"
	"sync/atomic"

	"medisync/internal/domain/entity"
	"medisync/internal/domain/repository"
	"medisync/internal/gateway"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Compile-time checks that the mocks satisfy the repository contracts
var (
	_ repository.ProfileRepository      = (*MockProfileRepository)(nil)
	_ repository.DoctorRepository       = (*MockDoctorRepository)(nil)
	_ repository.TicketRepository       = (*MockTicketRepository)(nil)
	_ repository.PrescriptionRepository = (*MockPrescriptionRepository)(nil)
	_ repository.MedicineRepository     = (*MockMedicineRepository)(nil)
	_ repository.InvoiceRepository      = (*MockInvoiceRepository)(nil)
)

type MockProfileRepository struct {
	CreateFunc           func(ctx context.Context, profile *entity.Profile) error
	FindByIDFunc         func(ctx context.Context, id uuid.UUID) (*entity.Profile, error)
	FindByEmailFunc      func(ctx context.Context, email string) (*entity.Profile, error)
	FindPatientByNIKFunc func(ctx context.Context, nik string) (*entity.Profile, error)
	FindStaffFunc        func(ctx context.Context) ([]entity.Profile, error)
	CountByRoleFunc      func(ctx context.Context, role entity.Role) (int64, error)
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, profile)
	}
	return nil
}

func (m *MockProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProfileRepository) FindByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockProfileRepository) FindPatientByNIK(ctx context.Context, nik string) (*entity.Profile, error) {
	if m.FindPatientByNIKFunc != nil {
		return m.FindPatientByNIKFunc(ctx, nik)
	}
	return nil, nil
}

func (m *MockProfileRepository) FindStaff(ctx context.Context) ([]entity.Profile, error) {
	if m.FindStaffFunc != nil {
		return m.FindStaffFunc(ctx)
	}
	return nil, nil
}

func (m *MockProfileRepository) CountByRole(ctx context.Context, role entity.Role) (int64, error) {
	if m.CountByRoleFunc != nil {
		return m.CountByRoleFunc(ctx, role)
	}
	return 0, nil
}

type MockDoctorRepository struct {
	CreateFunc   func(ctx context.Context, doctor *entity.Doctor) error
	FindByIDFunc func(ctx context.Context, userID uuid.UUID) (*entity.Doctor, error)
	FindAllFunc  func(ctx context.Context) ([]entity.Doctor, error)
	CountFunc    func(ctx context.Context) (int64, error)
}

func (m *MockDoctorRepository) Create(ctx context.Context, doctor *entity.Doctor) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, doctor)
	}
	return nil
}

func (m *MockDoctorRepository) FindByID(ctx context.Context, userID uuid.UUID) (*entity.Doctor, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockDoctorRepository) FindAll(ctx context.Context) ([]entity.Doctor, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockDoctorRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

type MockTicketRepository struct {
	FindByIDFunc        func(ctx context.Context, id int64) (*entity.Ticket, error)
	FindRecentFunc      func(ctx context.Context, limit int) ([]entity.Ticket, error)
	FindByDoctorFunc    func(ctx context.Context, doctorID uuid.UUID) ([]entity.Ticket, error)
	FindByPatientFunc   func(ctx context.Context, patientID uuid.UUID, limit int) ([]entity.Ticket, error)
	FindByNurseTeamFunc func(ctx context.Context, teamID int64, statuses []entity.TicketStatus) ([]entity.Ticket, error)
	CountFunc           func(ctx context.Context) (int64, error)
	CountByStatusFunc   func(ctx context.Context) (map[entity.TicketStatus]int64, error)
	UpdateStatusFunc    func(ctx context.Context, id int64, status entity.TicketStatus) (int64, error)

	UpdateStatusCallCount int32
}

func (m *MockTicketRepository) FindByID(ctx context.Context, id int64) (*entity.Ticket, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTicketRepository) FindRecent(ctx context.Context, limit int) ([]entity.Ticket, error) {
	if m.FindRecentFunc != nil {
		return m.FindRecentFunc(ctx, limit)
	}
	return nil, nil
}

func (m *MockTicketRepository) FindByDoctor(ctx context.Context, doctorID uuid.UUID) ([]entity.Ticket, error) {
	if m.FindByDoctorFunc != nil {
		return m.FindByDoctorFunc(ctx, doctorID)
	}
	return nil, nil
}

func (m *MockTicketRepository) FindByPatient(ctx context.Context, patientID uuid.UUID, limit int) ([]entity.Ticket, error) {
	if m.FindByPatientFunc != nil {
		return m.FindByPatientFunc(ctx, patientID, limit)
	}
	return nil, nil
}

func (m *MockTicketRepository) FindByNurseTeam(ctx context.Context, teamID int64, statuses []entity.TicketStatus) ([]entity.Ticket, error) {
	if m.FindByNurseTeamFunc != nil {
		return m.FindByNurseTeamFunc(ctx, teamID, statuses)
	}
	return nil, nil
}

func (m *MockTicketRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

func (m *MockTicketRepository) CountByStatus(ctx context.Context) (map[entity.TicketStatus]int64, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx)
	}
	return map[entity.TicketStatus]int64{}, nil
}

func (m *MockTicketRepository) UpdateStatus(ctx context.Context, id int64, status entity.TicketStatus) (int64, error) {
	atomic.AddInt32(&m.UpdateStatusCallCount, 1)
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return 1, nil
}

type MockPrescriptionRepository struct {
	FindPendingFunc           func(ctx context.Context) ([]entity.Prescription, error)
	MarkDispensedByTicketFunc func(ctx context.Context, ticketID int64) (int64, error)
}

func (m *MockPrescriptionRepository) FindPending(ctx context.Context) ([]entity.Prescription, error) {
	if m.FindPendingFunc != nil {
		return m.FindPendingFunc(ctx)
	}
	return nil, nil
}

func (m *MockPrescriptionRepository) MarkDispensedByTicket(ctx context.Context, ticketID int64) (int64, error) {
	if m.MarkDispensedByTicketFunc != nil {
		return m.MarkDispensedByTicketFunc(ctx, ticketID)
	}
	return 0, nil
}

type MockMedicineRepository struct {
	FindAllFunc func(ctx context.Context) ([]entity.Medicine, error)
}

func (m *MockMedicineRepository) FindAll(ctx context.Context) ([]entity.Medicine, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

type MockInvoiceRepository struct {
	CreateFunc            func(ctx context.Context, invoice *entity.Invoice) error
	FindRecentFunc        func(ctx context.Context, limit int) ([]entity.Invoice, error)
	FindByPatientFunc     func(ctx context.Context, patientID uuid.UUID) ([]entity.Invoice, error)
	SumFeesFunc           func(ctx context.Context) (decimal.Decimal, error)
	UpdateMedicineFeeFunc func(ctx context.Context, ticketID int64, fee decimal.Decimal) (int64, error)

	CreateCallCount int32
}

func (m *MockInvoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, invoice)
	}
	return nil
}

func (m *MockInvoiceRepository) FindRecent(ctx context.Context, limit int) ([]entity.Invoice, error) {
	if m.FindRecentFunc != nil {
		return m.FindRecentFunc(ctx, limit)
	}
	return nil, nil
}

func (m *MockInvoiceRepository) FindByPatient(ctx context.Context, patientID uuid.UUID) ([]entity.Invoice, error) {
	if m.FindByPatientFunc != nil {
		return m.FindByPatientFunc(ctx, patientID)
	}
	return nil, nil
}

func (m *MockInvoiceRepository) SumFees(ctx context.Context) (decimal.Decimal, error) {
	if m.SumFeesFunc != nil {
		return m.SumFeesFunc(ctx)
	}
	return decimal.Zero, nil
}

func (m *MockInvoiceRepository) UpdateMedicineFee(ctx context.Context, ticketID int64, fee decimal.Decimal) (int64, error) {
	if m.UpdateMedicineFeeFunc != nil {
		return m.UpdateMedicineFeeFunc(ctx, ticketID, fee)
	}
	return 1, nil
}

// MockGateway covers every upstream call the controllers make.
type MockGateway struct {
	AnalyzeTicketFunc   func(ctx context.Context, foNote string, patientID *uuid.UUID) (*gateway.AIAnalysis, error)
	RegisterPatientFunc func(ctx context.Context, req gateway.RegisterPatientRequest) (*gateway.RegisteredPatient, error)
	CreateTicketFunc    func(ctx context.Context, req gateway.CreateTicketRequest) (*gateway.CreateTicketResult, error)
	AssignDoctorFunc    func(ctx context.Context, ticketID int64, doctorID uuid.UUID) error
	AdminStatsFunc      func(ctx context.Context) (*gateway.AdminStats, error)
	DoctorAssistFunc    func(ctx context.Context, nik, doctorDraft string) (string, error)
	CompleteCheckupFunc func(ctx context.Context, ticketID int64, req gateway.CompleteCheckupRequest) error
	PatientChatFunc     func(ctx context.Context, ticketID, message string) (string, error)
	QuestionsFunc       func(ctx context.Context, complaint string) ([]string, error)
	SubmitFunc          func(ctx context.Context, history []gateway.QAEntry) (*gateway.PreAssessmentResult, error)
}

func (m *MockGateway) AnalyzeTicket(ctx context.Context, foNote string, patientID *uuid.UUID) (*gateway.AIAnalysis, error) {
	if m.AnalyzeTicketFunc != nil {
		return m.AnalyzeTicketFunc(ctx, foNote, patientID)
	}
	return nil, errors.New("AnalyzeTicketFunc not implemented in mock")
}

func (m *MockGateway) RegisterPatient(ctx context.Context, req gateway.RegisterPatientRequest) (*gateway.RegisteredPatient, error) {
	if m.RegisterPatientFunc != nil {
		return m.RegisterPatientFunc(ctx, req)
	}
	return nil, errors.New("RegisterPatientFunc not implemented in mock")
}

func (m *MockGateway) CreateTicket(ctx context.Context, req gateway.CreateTicketRequest) (*gateway.CreateTicketResult, error) {
	if m.CreateTicketFunc != nil {
		return m.CreateTicketFunc(ctx, req)
	}
	return nil, errors.New("CreateTicketFunc not implemented in mock")
}

func (m *MockGateway) AssignDoctor(ctx context.Context, ticketID int64, doctorID uuid.UUID) error {
	if m.AssignDoctorFunc != nil {
		return m.AssignDoctorFunc(ctx, ticketID, doctorID)
	}
	return errors.New("AssignDoctorFunc not implemented in mock")
}

func (m *MockGateway) AdminStats(ctx context.Context) (*gateway.AdminStats, error) {
	if m.AdminStatsFunc != nil {
		return m.AdminStatsFunc(ctx)
	}
	return nil, errors.New("AdminStatsFunc not implemented in mock")
}

func (m *MockGateway) DoctorAssist(ctx context.Context, nik, doctorDraft string) (string, error) {
	if m.DoctorAssistFunc != nil {
		return m.DoctorAssistFunc(ctx, nik, doctorDraft)
	}
	return "", errors.New("DoctorAssistFunc not implemented in mock")
}

func (m *MockGateway) CompleteCheckup(ctx context.Context, ticketID int64, req gateway.CompleteCheckupRequest) error {
	if m.CompleteCheckupFunc != nil {
		return m.CompleteCheckupFunc(ctx, ticketID, req)
	}
	return errors.New("CompleteCheckupFunc not implemented in mock")
}

func (m *MockGateway) PatientChat(ctx context.Context, ticketID, message string) (string, error) {
	if m.PatientChatFunc != nil {
		return m.PatientChatFunc(ctx, ticketID, message)
	}
	return "", errors.New("PatientChatFunc not implemented in mock")
}

func (m *MockGateway) GeneratePreAssessmentQuestions(ctx context.Context, complaint string) ([]string, error) {
	if m.QuestionsFunc != nil {
		return m.QuestionsFunc(ctx, complaint)
	}
	return nil, errors.New("QuestionsFunc not implemented in mock")
}

func (m *MockGateway) SubmitPreAssessment(ctx context.Context, history []gateway.QAEntry) (*gateway.PreAssessmentResult, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, history)
	}
	return nil, errors.New("SubmitFunc not implemented in mock")
}

// MockAuditService drops audit records and counts them.
type MockAuditService struct {
	Records []string
}

func (m *MockAuditService) Record(ctx context.Context, userID *uuid.UUID, action string, metadata entity.JSON) {
	m.Records = append(m.Records, action)
}
