package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/traindesk/tcms-backend-go/internal/config"
	"github.com/traindesk/tcms-backend-go/internal/handler/http/middleware"
	"github.com/traindesk/tcms-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	leaveHandler LeaveHandler,
	attendanceHandler AttendanceHandler,
	studentHandler StudentHandler,
	masterHandler MasterHandler,
	notificationHandler NotificationHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "tcms-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.Post("/logout", authHandler.Logout)
			r.Get("/login/oauth/google", authHandler.LoginWithGoogle)
			r.Get("/oauth/callback/google", authHandler.OAuthCallbackGoogle)
		})

		// SSE auth rides on a short-lived query token, not the Authorization
		// header, so the stream stays outside the verified group.
		r.Get("/notifications/stream", notificationHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/auth", func(r chi.Router) {
				r.Get("/me", authHandler.Me)
				r.Post("/change-password", authHandler.ChangePassword)
				r.Post("/sse-token", authHandler.SSEToken)
			})

			r.Route("/leave-types", func(r chi.Router) {
				r.Get("/", leaveHandler.ListTypes)
				r.Get("/{id}", leaveHandler.GetType)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", leaveHandler.CreateType)
					r.Put("/{id}", leaveHandler.UpdateType)
					r.Delete("/{id}", leaveHandler.DeleteType)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", leaveHandler.Submit)
				r.Post("/documents", leaveHandler.UploadDocument)
				r.Get("/my", leaveHandler.MyApplications)
				r.Get("/my/balances", leaveHandler.MyBalances)
				r.Get("/{id}/audit", leaveHandler.AuditTrail)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/pending", leaveHandler.PendingApplications)
					r.Get("/history", leaveHandler.History)
					r.Get("/balances", leaveHandler.AllBalances)
					r.Put("/{id}/review", leaveHandler.Review)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/my", attendanceHandler.MyHistory)

				r.Group(func(r chi.Router) {
					r.Use(middleware.MarkerOnly)
					r.Post("/", attendanceHandler.Mark)
					r.Get("/sheet", attendanceHandler.Sheet)
					r.Get("/students/{id}", attendanceHandler.StudentHistory)
				})
			})

			r.Route("/students", func(r chi.Router) {
				r.Get("/me", studentHandler.Me)
				r.Get("/{id}", studentHandler.Get)
				r.Put("/{id}", studentHandler.Update)
				r.Post("/{id}/photo", studentHandler.UploadPhoto)
				r.Get("/{id}/balances", leaveHandler.StudentBalances)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", studentHandler.Create)
					r.Get("/", studentHandler.List)
				})
			})

			r.Route("/courses", func(r chi.Router) {
				r.Get("/", masterHandler.ListCourses)
				r.Get("/{id}", masterHandler.GetCourse)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", masterHandler.CreateCourse)
					r.Put("/{id}", masterHandler.UpdateCourse)
					r.Delete("/{id}", masterHandler.DeleteCourse)
				})
			})

			r.Route("/batches", func(r chi.Router) {
				r.Get("/", masterHandler.ListBatches)
				r.Get("/{id}", masterHandler.GetBatch)

				r.Group(func(r chi.Router) {
					r.Use(middleware.MarkerOnly)
					r.Get("/{id}/students", masterHandler.BatchRoster)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", masterHandler.CreateBatch)
					r.Put("/{id}", masterHandler.UpdateBatch)
					r.Delete("/{id}", masterHandler.DeleteBatch)
				})
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/enrollments", masterHandler.EnrollStudent)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Get("/unread-count", notificationHandler.UnreadCount)
				r.Post("/read", notificationHandler.MarkRead)
				r.Post("/read-all", notificationHandler.MarkAllRead)
				r.Delete("/{id}", notificationHandler.Delete)
			})
		})
	})

	return r
}
