package http

import (
	"net/http"

	"medisync/internal/delivery/http/handler"
	"medisync/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	dashboardHandler   *handler.DashboardHandler
	adminHandler       *handler.AdminHandler
	frontOfficeHandler *handler.FrontOfficeHandler
	doctorHandler      *handler.DoctorHandler
	nurseHandler       *handler.NurseHandler
	pharmacyHandler    *handler.PharmacyHandler
	patientHandler     *handler.PatientHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	dashboardHandler *handler.DashboardHandler,
	adminHandler *handler.AdminHandler,
	frontOfficeHandler *handler.FrontOfficeHandler,
	doctorHandler *handler.DoctorHandler,
	nurseHandler *handler.NurseHandler,
	pharmacyHandler *handler.PharmacyHandler,
	patientHandler *handler.PatientHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		dashboardHandler:   dashboardHandler,
		adminHandler:       adminHandler,
		frontOfficeHandler: frontOfficeHandler,
		doctorHandler:      doctorHandler,
		nurseHandler:       nurseHandler,
		pharmacyHandler:    pharmacyHandler,
		patientHandler:     patientHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)
	authProtected.HandleFunc("/session/watch", r.authHandler.WatchSession).Methods(http.MethodGet)

	// Dashboard (any authenticated role; the role router picks the view)
	dashboard := api.PathPrefix("/dashboard").Subrouter()
	dashboard.Use(r.authMiddleware.Authenticate)
	dashboard.HandleFunc("", r.dashboardHandler.GetDashboard).Methods(http.MethodGet)
	dashboard.HandleFunc("/refresh", r.dashboardHandler.Refresh).Methods(http.MethodPost)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/stats", r.adminHandler.GetStats).Methods(http.MethodGet)
	admin.HandleFunc("/staff", r.adminHandler.GetStaff).Methods(http.MethodGet)
	admin.HandleFunc("/finance", r.adminHandler.GetFinance).Methods(http.MethodGet)

	// Front office routes (protected - front office only)
	frontOffice := api.PathPrefix("/front-office").Subrouter()
	frontOffice.Use(r.authMiddleware.Authenticate)
	frontOffice.Use(middleware.RequireFrontOffice)
	frontOffice.HandleFunc("/patients/search", r.frontOfficeHandler.SearchPatient).Methods(http.MethodGet)
	frontOffice.HandleFunc("/doctors", r.frontOfficeHandler.GetDoctors).Methods(http.MethodGet)
	frontOffice.HandleFunc("/tickets/analyze", r.frontOfficeHandler.AnalyzeNote).Methods(http.MethodPost)
	frontOffice.HandleFunc("/tickets", r.frontOfficeHandler.CreateTicket).Methods(http.MethodPost)
	frontOffice.HandleFunc("/tickets/{id}/assign", r.frontOfficeHandler.AssignDoctor).Methods(http.MethodPost)
	frontOffice.HandleFunc("/tickets", r.frontOfficeHandler.GetTickets).Methods(http.MethodGet)

	// Doctor routes (protected - doctor only)
	doctor := api.PathPrefix("/doctor").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)
	doctor.HandleFunc("/queue", r.doctorHandler.GetQueue).Methods(http.MethodGet)
	doctor.HandleFunc("/patients/{patientId}/history", r.doctorHandler.GetPatientHistory).Methods(http.MethodGet)
	doctor.HandleFunc("/assist", r.doctorHandler.Assist).Methods(http.MethodPost)
	doctor.HandleFunc("/tickets/{id}/complete", r.doctorHandler.CompleteCheckup).Methods(http.MethodPost)

	// Nurse routes (protected - nurse only, read-only)
	nurse := api.PathPrefix("/nurse").Subrouter()
	nurse.Use(r.authMiddleware.Authenticate)
	nurse.Use(middleware.RequireNurse)
	nurse.HandleFunc("/board", r.nurseHandler.GetBoard).Methods(http.MethodGet)

	// Pharmacy routes (protected - pharmacist only)
	pharmacy := api.PathPrefix("/pharmacy").Subrouter()
	pharmacy.Use(r.authMiddleware.Authenticate)
	pharmacy.Use(middleware.RequirePharmacist)
	pharmacy.HandleFunc("/queue", r.pharmacyHandler.GetQueue).Methods(http.MethodGet)
	pharmacy.HandleFunc("/inventory", r.pharmacyHandler.GetInventory).Methods(http.MethodGet)
	pharmacy.HandleFunc("/tickets/{id}/dispense", r.pharmacyHandler.Dispense).Methods(http.MethodPost)

	// Patient routes (protected - patient only)
	patient := api.PathPrefix("/patient").Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequirePatient)
	patient.HandleFunc("/visits", r.patientHandler.GetVisits).Methods(http.MethodGet)
	patient.HandleFunc("/invoices", r.patientHandler.GetInvoices).Methods(http.MethodGet)
	patient.HandleFunc("/chat", r.patientHandler.Chat).Methods(http.MethodPost)
	patient.HandleFunc("/pre-assessment/questions", r.patientHandler.StartPreAssessment).Methods(http.MethodPost)
	patient.HandleFunc("/pre-assessment/submit", r.patientHandler.SubmitPreAssessment).Methods(http.MethodPost)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
