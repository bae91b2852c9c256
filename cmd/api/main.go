package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/traindesk/tcms-backend-go/internal/config"
	appHTTP "github.com/traindesk/tcms-backend-go/internal/handler/http"
	"github.com/traindesk/tcms-backend-go/internal/pkg/database"
	"github.com/traindesk/tcms-backend-go/internal/pkg/email"
	"github.com/traindesk/tcms-backend-go/internal/pkg/jwt"
	"github.com/traindesk/tcms-backend-go/internal/pkg/oauth"
	"github.com/traindesk/tcms-backend-go/internal/pkg/sse"
	"github.com/traindesk/tcms-backend-go/internal/pkg/storage"
	"github.com/traindesk/tcms-backend-go/internal/repository/postgresql"
	attendanceService "github.com/traindesk/tcms-backend-go/internal/service/attendance"
	authService "github.com/traindesk/tcms-backend-go/internal/service/auth"
	"github.com/traindesk/tcms-backend-go/internal/service/file"
	leaveService "github.com/traindesk/tcms-backend-go/internal/service/leave"
	masterService "github.com/traindesk/tcms-backend-go/internal/service/master"
	notificationService "github.com/traindesk/tcms-backend-go/internal/service/notification"
	studentService "github.com/traindesk/tcms-backend-go/internal/service/student"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	studentRepo := postgresql.NewStudentRepository(db)
	courseRepo := postgresql.NewCourseRepository(db)
	batchRepo := postgresql.NewBatchRepository(db)
	enrollmentRepo := postgresql.NewEnrollmentRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	leaveApplicationRepo := postgresql.NewLeaveApplicationRepository(db)
	leaveAuditRepo := postgresql.NewLeaveAuditLogRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	emailSvc, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	hub := sse.NewHub()
	notificationSvc := notificationService.NewService(notificationRepo, hub, emailSvc, userRepo, studentRepo)

	fileSvc := file.NewService(fileStorage)
	leaveSvc := leaveService.NewService(
		db,
		leaveTypeRepo,
		leaveBalanceRepo,
		leaveApplicationRepo,
		leaveAuditRepo,
		batchRepo,
		enrollmentRepo,
		studentRepo,
		notificationSvc,
	)
	attendanceSvc := attendanceService.NewService(db, attendanceRepo, leaveApplicationRepo, batchRepo)
	authSvc := authService.NewService(userRepo, jwtService, googleService)
	studentSvc := studentService.NewService(
		db,
		userRepo,
		studentRepo,
		enrollmentRepo,
		batchRepo,
		leaveSvc.Balances,
		emailSvc,
		cfg.App.FrontendURL,
	)
	masterSvc := masterService.NewService(db, courseRepo, batchRepo, enrollmentRepo, studentRepo, leaveSvc.Balances)

	authHandler := appHTTP.NewAuthHandler(authSvc, jwtService)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc, fileSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	studentHandler := appHTTP.NewStudentHandler(studentSvc, fileSvc)
	masterHandler := appHTTP.NewMasterHandler(masterSvc)
	notificationHandler := appHTTP.NewNotificationHandler(notificationSvc, jwtService, hub)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		authHandler,
		leaveHandler,
		attendanceHandler,
		studentHandler,
		masterHandler,
		notificationHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
