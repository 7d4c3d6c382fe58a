package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/albergue/internal/concierge"
	"github.com/erazemk/albergue/internal/model"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string, conciergeClient *concierge.Client) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	usersHandler := &UsersHandler{DB: db}
	catalogHandler := &CatalogHandler{}
	bookingsHandler := &BookingsHandler{DB: db, Concierge: conciergeClient}
	reportsHandler := &ReportsHandler{DB: db}
	registrationsHandler := &RegistrationsHandler{DB: db}
	settingsHandler := &SettingsHandler{DB: db}
	dataHandler := &DataHandler{DB: db}

	authMW := AuthMiddleware(jwtSecret, db)
	requireAdmin := RequireRole(model.RoleAdmin)
	requireManager := RequireRole(model.RoleManager)

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Authenticated routes.
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))

	// Users (admin only).
	mux.Handle("GET /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.List))))
	mux.Handle("POST /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.Create))))
	mux.Handle("GET /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Get))))
	mux.Handle("PUT /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Update))))
	mux.Handle("PUT /api/users/{id}/password", authMW(requireAdmin(http.HandlerFunc(usersHandler.ResetPassword))))
	mux.Handle("DELETE /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Delete))))

	// Catalog (read only, all roles).
	mux.Handle("GET /api/catalog/rooms", authMW(http.HandlerFunc(catalogHandler.Rooms)))
	mux.Handle("GET /api/catalog/services", authMW(http.HandlerFunc(catalogHandler.Services)))
	mux.Handle("GET /api/catalog/units", authMW(http.HandlerFunc(catalogHandler.Units)))
	mux.Handle("GET /api/catalog/dining", authMW(http.HandlerFunc(catalogHandler.Dining)))

	// Bookings and reservations (all roles).
	mux.Handle("POST /api/bookings", authMW(http.HandlerFunc(bookingsHandler.Create)))
	mux.Handle("PUT /api/bookings/{key}", authMW(http.HandlerFunc(bookingsHandler.Update)))
	mux.Handle("DELETE /api/bookings/{key}", authMW(http.HandlerFunc(bookingsHandler.Delete)))
	mux.Handle("GET /api/reservations", authMW(http.HandlerFunc(bookingsHandler.ListReservations)))
	mux.Handle("GET /api/reservations/groups", authMW(http.HandlerFunc(bookingsHandler.ListGroups)))

	// Individual guest registrations: staff side is authenticated, the
	// guest form is reached through the shared per-registration link.
	mux.Handle("GET /api/registrations", authMW(http.HandlerFunc(registrationsHandler.List)))
	mux.Handle("POST /api/registrations", authMW(http.HandlerFunc(registrationsHandler.Create)))
	mux.Handle("GET /api/registrations/{id}", authMW(http.HandlerFunc(registrationsHandler.Get)))
	mux.Handle("PUT /api/registrations/{id}", authMW(http.HandlerFunc(registrationsHandler.Update)))
	mux.Handle("DELETE /api/registrations/{id}", authMW(http.HandlerFunc(registrationsHandler.Delete)))
	mux.HandleFunc("GET /api/guest-form/{id}", registrationsHandler.GuestForm)
	mux.HandleFunc("POST /api/guest-form/{id}", registrationsHandler.GuestSubmit)

	// Reports and invoices (all roles).
	mux.Handle("GET /api/reports/dashboard", authMW(http.HandlerFunc(reportsHandler.Dashboard)))
	mux.Handle("GET /api/reports/dining", authMW(http.HandlerFunc(reportsHandler.Dining)))
	mux.Handle("GET /api/reports/occupancy", authMW(http.HandlerFunc(reportsHandler.Occupancy)))
	mux.Handle("GET /api/reports/services", authMW(http.HandlerFunc(reportsHandler.Services)))
	mux.Handle("GET /api/invoices/{key}", authMW(http.HandlerFunc(reportsHandler.Invoice)))

	// Settings: read (all), write (manager+).
	mux.Handle("GET /api/settings/fiscal", authMW(http.HandlerFunc(settingsHandler.GetFiscal)))
	mux.Handle("PUT /api/settings/fiscal", authMW(requireManager(http.HandlerFunc(settingsHandler.SetFiscal))))
	mux.Handle("GET /api/settings/fiscal/logo", authMW(http.HandlerFunc(settingsHandler.GetLogo)))
	mux.Handle("PUT /api/settings/fiscal/logo", authMW(requireManager(http.HandlerFunc(settingsHandler.UploadLogo))))

	// Export (all roles), import (manager+, destructive).
	mux.Handle("GET /api/export", authMW(http.HandlerFunc(dataHandler.Export)))
	mux.Handle("POST /api/import", authMW(requireManager(http.HandlerFunc(dataHandler.Import))))

	return mux
}
