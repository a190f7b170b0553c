package router

import (
	"database/sql"
	_ "embed"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	mem "dairy-admin/internal/adapters/storage/memory"
	pg "dairy-admin/internal/adapters/storage/postgres"
	"dairy-admin/internal/domain/animals"
	"dairy-admin/internal/domain/catalog"
	"dairy-admin/internal/domain/customers"
	"dairy-admin/internal/domain/expenses"
	"dairy-admin/internal/domain/lifecycle"
	"dairy-admin/internal/domain/milk"
	"dairy-admin/internal/domain/payments"
	"dairy-admin/internal/domain/reminders"
	"dairy-admin/internal/domain/reports"
	"dairy-admin/internal/domain/reviews"
	"dairy-admin/internal/middleware"
	"dairy-admin/internal/ports/auth"
)

//go:embed openapi.json
var openAPISpec []byte

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Logger *zap.Logger

	// Ventana de recordatorios en días; 0 usa el default del módulo.
	ReminderWindowDays int
}

// Result expone el handler y los services que el resto del proceso necesita
// (el scheduler consume Reminders).
type Result struct {
	Handler   http.Handler
	Reminders *reminders.Service
}

func New(opts Options) Result {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(httprate.LimitByIP(100, time.Minute))

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/api/openapi.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(openAPISpec)
	})
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/api/openapi.json"),
	))

	var (
		animalRepo      animals.Repository
		lifecycleRepo   lifecycle.Repository
		milkRepo        milk.Repository
		expenseRepo     expenses.Repository
		paymentRepo     payments.Repository
		billRepo        payments.BillRepository
		settingsRepo    payments.SettingsRepository
		reviewRepo      reviews.Repository
		productRepo     catalog.ProductRepository
		reservationRepo catalog.ReservationRepository
		customerRepo    customers.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				logger.Warn("postgres no disponible, usando repos en memoria", zap.Error(err))
			}
		}
	}

	if db != nil {
		animalRepo = pg.NewAnimalsRepo(db)
		lifecycleRepo = pg.NewLifecycleRepo(db)
		milkRepo = pg.NewMilkRepo(db)
		expenseRepo = pg.NewExpensesRepo(db)
		paymentRepo = pg.NewPaymentsRepo(db)
		billRepo = pg.NewBillsRepo(db)
		settingsRepo = pg.NewSettingsRepo(db)
		reviewRepo = pg.NewReviewsRepo(db)
		productRepo = pg.NewProductsRepo(db)
		reservationRepo = pg.NewReservationsRepo(db)
		customerRepo = pg.NewCustomersRepo(db)
	} else {
		animalRepo = mem.NewAnimalRepo()
		lifecycleRepo = mem.NewLifecycleRepo()
		milkRepo = mem.NewMilkRepo()
		expenseRepo = mem.NewExpenseRepo()
		paymentRepo = mem.NewPaymentRepo()
		billRepo = mem.NewBillRepo()
		settingsRepo = mem.NewSettingsRepo()
		reviewRepo = mem.NewReviewRepo()
		productRepo = mem.NewProductRepo()
		reservationRepo = mem.NewReservationRepo()
		customerRepo = mem.NewCustomerRepo()
	}

	// Services por módulo
	animalsSvc := animals.NewService(animalRepo)
	expensesSvc := expenses.NewService(expenseRepo)
	lifecycleSvc := lifecycle.NewService(lifecycleRepo, animalsSvc, expensesSvc)
	remindersSvc := reminders.NewService(animalsSvc, lifecycleRepo, opts.ReminderWindowDays)
	reportsSvc := reports.NewService(animalsSvc, lifecycleRepo, expensesSvc)
	milkSvc := milk.NewService(milkRepo, animalsSvc)
	paymentsSvc := payments.NewService(paymentRepo, billRepo, settingsRepo, logger.Named("payments"))
	reviewsSvc := reviews.NewService(reviewRepo)
	catalogSvc := catalog.NewService(productRepo, reservationRepo)
	customersSvc := customers.NewService(customerRepo)

	// Rutas públicas: catálogo, reseñas aprobadas y altas que hace el cliente
	catalog.RegisterPublicRoutes(r, catalogSvc)
	reviews.RegisterPublicRoutes(r, reviewsSvc)
	payments.RegisterPublicRoutes(r, paymentsSvc)

	// Todo lo demás exige rol admin
	r.Group(func(ar chi.Router) {
		ar.Use(middleware.RequireAdmin)

		animals.RegisterRoutes(ar, animalsSvc)
		lifecycle.RegisterRoutes(ar, lifecycleSvc)
		reminders.RegisterRoutes(ar, remindersSvc)
		reports.RegisterRoutes(ar, reportsSvc)
		milk.RegisterRoutes(ar, milkSvc)
		expenses.RegisterRoutes(ar, expensesSvc)
		payments.RegisterAdminRoutes(ar, paymentsSvc)
		reviews.RegisterAdminRoutes(ar, reviewsSvc)
		catalog.RegisterAdminRoutes(ar, catalogSvc)
		customers.RegisterRoutes(ar, customersSvc)
	})

	return Result{
		Handler:   r,
		Reminders: remindersSvc,
	}
}
