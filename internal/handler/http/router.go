package http

import (
	"log/slog"

	"github.com/cmlabs-hris/workforce-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Attendance AttendanceHandler
	Overtime   OvertimeHandler
	Leave      LeaveHandler
	CompOff    CompOffHandler
	Summary    SummaryHandler
	Report     ReportHandler
}

type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Language", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  slog.LevelInfo,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired)

		r.Route("/attendance", func(r chi.Router) {
			r.Post("/check-in", h.Attendance.CheckIn)
			r.Post("/check-out", h.Attendance.CheckOut)
			r.Get("/my", h.Attendance.GetMyAttendance)

			// Manager only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Get("/{employeeID}", h.Attendance.List)
				r.Get("/{employeeID}/{date}", h.Attendance.Get)
			})
		})

		r.Route("/overtime-requests", func(r chi.Router) {
			r.Post("/", h.Overtime.Submit)
			r.Get("/my", h.Overtime.GetMyRequests)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Get("/", h.Overtime.ListRequests)
				r.Post("/{id}/approve", h.Overtime.Approve)
				r.Post("/{id}/reject", h.Overtime.Reject)
			})
		})

		r.With(middleware.RequireManager).Get("/overtime/windows/{employeeID}/{date}", h.Overtime.Windows)

		r.Route("/leave-requests", func(r chi.Router) {
			r.Post("/", h.Leave.CreateRequest)
			r.Get("/my", h.Leave.GetMyRequests)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Post("/{id}/approve", h.Leave.ApproveRequest)
				r.Post("/{id}/reject", h.Leave.RejectRequest)
			})
		})

		r.Get("/leave/balance/my", h.Leave.GetMyBalance)

		r.Route("/comp-off", func(r chi.Router) {
			r.Post("/use", h.CompOff.Use)
			r.Get("/balance/my", h.CompOff.GetMyBalance)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Post("/grant", h.CompOff.Grant)
				r.Get("/balance/{employeeID}", h.CompOff.GetBalance)
			})
		})

		r.Route("/summary", func(r chi.Router) {
			r.Get("/my", h.Summary.GetMySummary)
			r.With(middleware.RequireManager).Get("/{employeeID}", h.Summary.GetEmployeeSummary)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Use(middleware.RequireManager)
			r.Get("/monthly", h.Report.GetMonthlyReport)
			r.Get("/monthly/export", h.Report.ExportMonthlyReport)
			r.Get("/employee/{employeeID}/export", h.Report.ExportEmployeeReport)
		})
	})
	return r
}
