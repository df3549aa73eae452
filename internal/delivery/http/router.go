package http

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"hospital-management-api/internal/delivery/http/handler"
	"hospital-management-api/internal/delivery/http/middleware"
	"hospital-management-api/internal/infrastructure/monitoring"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Router struct {
	router               *mux.Router
	log                  *logrus.Logger
	metrics              *monitoring.Metrics
	staticDir            string
	healthHandler        *handler.HealthHandler
	authHandler          *handler.AuthHandler
	patientHandler       *handler.PatientHandler
	staffHandler         *handler.StaffHandler
	appointmentHandler   *handler.AppointmentHandler
	billingHandler       *handler.BillingHandler
	medicalRecordHandler *handler.MedicalRecordHandler
	auditLogHandler      *handler.AuditLogHandler
	authMiddleware       *middleware.AuthMiddleware
	corsMiddleware       *middleware.CORSMiddleware
}

type RouterDeps struct {
	Log                  *logrus.Logger
	Metrics              *monitoring.Metrics
	StaticDir            string
	HealthHandler        *handler.HealthHandler
	AuthHandler          *handler.AuthHandler
	PatientHandler       *handler.PatientHandler
	StaffHandler         *handler.StaffHandler
	AppointmentHandler   *handler.AppointmentHandler
	BillingHandler       *handler.BillingHandler
	MedicalRecordHandler *handler.MedicalRecordHandler
	AuditLogHandler      *handler.AuditLogHandler
	AuthMiddleware       *middleware.AuthMiddleware
	CORSMiddleware       *middleware.CORSMiddleware
}

func NewRouter(deps RouterDeps) *Router {
	return &Router{
		router:               mux.NewRouter(),
		log:                  deps.Log,
		metrics:              deps.Metrics,
		staticDir:            deps.StaticDir,
		healthHandler:        deps.HealthHandler,
		authHandler:          deps.AuthHandler,
		patientHandler:       deps.PatientHandler,
		staffHandler:         deps.StaffHandler,
		appointmentHandler:   deps.AppointmentHandler,
		billingHandler:       deps.BillingHandler,
		medicalRecordHandler: deps.MedicalRecordHandler,
		auditLogHandler:      deps.AuditLogHandler,
		authMiddleware:       deps.AuthMiddleware,
		corsMiddleware:       deps.CORSMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	r.router.Use(middleware.Recover(r.log))
	r.router.Use(middleware.RequestLogger(r.log))
	r.router.Use(r.corsMiddleware.Handle)
	if r.metrics != nil {
		r.router.Use(middleware.Metrics(r.metrics))
		r.router.Handle("/metrics", r.metrics.Handler()).Methods(http.MethodGet)
	}

	// Preflight requests match no method-specific route, so answer them here
	// and let the CORS middleware set the headers.
	r.router.Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	api := r.router.PathPrefix("/api").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthHandler.Health).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Everything below requires a valid access token
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	protected.HandleFunc("/auth/logout", r.authHandler.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/auth/me", r.authHandler.Me).Methods(http.MethodGet)
	protected.HandleFunc("/auth/verify", r.authHandler.Verify).Methods(http.MethodGet)

	// Patients. Ownership checks for patients happen in the usecases.
	protected.Handle("/patients", middleware.RequireAdminOrStaff(http.HandlerFunc(r.patientHandler.GetAll))).Methods(http.MethodGet)
	protected.Handle("/patients", middleware.RequireAdmin(http.HandlerFunc(r.patientHandler.Create))).Methods(http.MethodPost)
	protected.HandleFunc("/patients/{id}", r.patientHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{id}", r.patientHandler.Update).Methods(http.MethodPut)
	protected.Handle("/patients/{id}", middleware.RequireAdmin(http.HandlerFunc(r.patientHandler.Delete))).Methods(http.MethodDelete)
	protected.HandleFunc("/patients/{id}/medical-records", r.patientHandler.MedicalRecords).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{id}/appointments", r.patientHandler.Appointments).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{id}/invoices", r.patientHandler.Invoices).Methods(http.MethodGet)

	// Staff
	staff := protected.PathPrefix("/staff").Subrouter()
	staff.Use(middleware.RequireAdminOrStaff)
	staff.Handle("", middleware.RequireAdmin(http.HandlerFunc(r.staffHandler.GetAll))).Methods(http.MethodGet)
	staff.Handle("", middleware.RequireAdmin(http.HandlerFunc(r.staffHandler.Create))).Methods(http.MethodPost)
	staff.HandleFunc("/{id}", r.staffHandler.Get).Methods(http.MethodGet)
	staff.HandleFunc("/{id}", r.staffHandler.Update).Methods(http.MethodPut)
	staff.Handle("/{id}", middleware.RequireAdmin(http.HandlerFunc(r.staffHandler.Delete))).Methods(http.MethodDelete)
	staff.HandleFunc("/{id}/appointments", r.staffHandler.Appointments).Methods(http.MethodGet)

	// Appointments
	protected.HandleFunc("/appointments", r.appointmentHandler.GetAll).Methods(http.MethodGet)
	protected.HandleFunc("/appointments", r.appointmentHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{id}", r.appointmentHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", r.appointmentHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/appointments/{id}", r.appointmentHandler.Delete).Methods(http.MethodDelete)

	// Billing
	protected.HandleFunc("/billing", r.billingHandler.GetAll).Methods(http.MethodGet)
	protected.Handle("/billing", middleware.RequireAdmin(http.HandlerFunc(r.billingHandler.Create))).Methods(http.MethodPost)
	protected.HandleFunc("/billing/{id}", r.billingHandler.Get).Methods(http.MethodGet)
	protected.Handle("/billing/{id}", middleware.RequireAdmin(http.HandlerFunc(r.billingHandler.Update))).Methods(http.MethodPut)
	protected.Handle("/billing/{id}", middleware.RequireAdmin(http.HandlerFunc(r.billingHandler.Delete))).Methods(http.MethodDelete)
	protected.HandleFunc("/billing/{id}/pay", r.billingHandler.Pay).Methods(http.MethodPut)

	// Medical records
	protected.Handle("/medical-records", middleware.RequireAdminOrStaff(http.HandlerFunc(r.medicalRecordHandler.Create))).Methods(http.MethodPost)
	protected.HandleFunc("/medical-records/{id}", r.medicalRecordHandler.Get).Methods(http.MethodGet)

	// Audit logs (admin only)
	audit := protected.PathPrefix("/audit-logs").Subrouter()
	audit.Use(middleware.RequireAdmin)
	audit.HandleFunc("", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	audit.HandleFunc("/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	if r.staticDir != "" {
		r.router.PathPrefix("/").Handler(spaHandler{dir: r.staticDir})
	}

	return r.router
}

// spaHandler serves the built frontend and falls back to index.html for
// client-side routes. Unknown /api paths still get a 404.
type spaHandler struct {
	dir string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if strings.HasPrefix(req.URL.Path, "/api/") {
		http.NotFound(w, req)
		return
	}

	path := filepath.Join(h.dir, filepath.Clean("/"+req.URL.Path))
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		http.ServeFile(w, req, filepath.Join(h.dir, "index.html"))
		return
	}
	http.ServeFile(w, req, path)
}
