package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alnoorestates/saleledger-backend/api/controllers"
	"github.com/alnoorestates/saleledger-backend/api/middleware"
	"github.com/alnoorestates/saleledger-backend/internal/auth"
	"github.com/alnoorestates/saleledger-backend/internal/bookings"
	"github.com/alnoorestates/saleledger-backend/internal/buyers"
	"github.com/alnoorestates/saleledger-backend/internal/dashboard"
	"github.com/alnoorestates/saleledger-backend/internal/projects"
	"github.com/alnoorestates/saleledger-backend/internal/transactions"
	"github.com/alnoorestates/saleledger-backend/internal/users"
	"github.com/alnoorestates/saleledger-backend/pkg/auth/session"
	"github.com/alnoorestates/saleledger-backend/pkg/config"
	"github.com/alnoorestates/saleledger-backend/pkg/db"
	"github.com/alnoorestates/saleledger-backend/pkg/enums"
	"github.com/alnoorestates/saleledger-backend/pkg/logger"
	"github.com/alnoorestates/saleledger-backend/pkg/redis"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    redis.Pinger
	Sessions session.AccessSessionChecker
	Registry *prometheus.Registry

	Auth         auth.Service
	Users        users.Service
	Buyers       buyers.Service
	Projects     projects.Service
	Bookings     bookings.Service
	Transactions transactions.Service
	Dashboard    dashboard.Service
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Get("/healthz", controllers.Healthz(cfg, logg, d.DB, d.Redis))
	if d.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(d.Users, d.Auth, logg))
		r.Post("/login", controllers.AuthLogin(d.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(d.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(d.Auth, cfg.JWT, logg))
	})

	r.Route("/buyer", func(r chi.Router) {
		r.Post("/register", controllers.BuyerRegister(d.Buyers, d.Auth, logg))
		r.Post("/login", controllers.BuyerLogin(d.Auth, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, d.Sessions, logg))
			r.Use(middleware.RequireRole(enums.RoleBuyer, logg))
			r.Post("/bookings", controllers.BuyerCreateBooking(d.Bookings, logg))
			r.Get("/bookings", controllers.BuyerListBookings(d.Bookings, logg))
			r.Post("/transactions", controllers.BuyerRecordTransaction(d.Transactions, logg))
		})
	})

	r.Route("/builder", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, d.Sessions, logg))
		r.Use(middleware.RequireRole(enums.RoleBuilder, logg))

		r.Route("/projects", func(r chi.Router) {
			r.Post("/", controllers.BuilderCreateProject(d.Projects, logg))
			r.Get("/", controllers.BuilderListProjects(d.Projects, logg))
			r.Post("/{projectID}/units", controllers.BuilderAddUnit(d.Projects, logg))
			r.Get("/{projectID}/units", controllers.BuilderListUnits(d.Projects, logg))
		})

		r.Get("/bookings", controllers.BuilderListBookings(d.Bookings, logg))
		r.Get("/transactions", controllers.BuilderListTransactions(d.Transactions, logg))
		r.Post("/transactions/match", controllers.BuilderMatchTransaction(d.Transactions, logg))

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/", controllers.BuilderDashboard(d.Dashboard, logg))
			r.Get("/projects", controllers.BuilderDashboardProjects(d.Dashboard, logg))
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, d.Sessions, logg))
		r.Use(middleware.RequireRole(enums.RoleAdmin, logg))

		r.Get("/bookings", controllers.AdminListBookings(d.Bookings, logg))
		r.Get("/transactions", controllers.AdminListTransactions(d.Transactions, logg))
		r.Get("/builders", controllers.AdminListBuilders(d.Users, logg))
		r.Get("/projects", controllers.AdminListProjects(d.Projects, logg))
	})

	return r
}
