package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/clockwise-hr/attendance-backend-go/internal/config"
	attendanceDomain "github.com/clockwise-hr/attendance-backend-go/internal/domain/attendance"
	userDomain "github.com/clockwise-hr/attendance-backend-go/internal/domain/user"
	appHTTP "github.com/clockwise-hr/attendance-backend-go/internal/handler/http"
	"github.com/clockwise-hr/attendance-backend-go/internal/pkg/cron"
	"github.com/clockwise-hr/attendance-backend-go/internal/pkg/database"
	"github.com/clockwise-hr/attendance-backend-go/internal/pkg/jwt"
	"github.com/clockwise-hr/attendance-backend-go/internal/repository/memory"
	"github.com/clockwise-hr/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/clockwise-hr/attendance-backend-go/internal/service/attendance"
	authService "github.com/clockwise-hr/attendance-backend-go/internal/service/auth"
	dashboardService "github.com/clockwise-hr/attendance-backend-go/internal/service/dashboard"
	reportService "github.com/clockwise-hr/attendance-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	var (
		userRepo       userDomain.Repository
		attendanceRepo attendanceDomain.Repository
	)

	switch cfg.App.StorageDriver {
	case "postgres":
		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
		if err != nil {
			log.Fatal("Error connecting to database: ", err)
		}
		defer db.Close()

		userRepo = postgresql.NewUserRepository(db)
		attendanceRepo = postgresql.NewAttendanceRepository(db)
	case "memory":
		userRepo = memory.NewUserRepository()
		attendanceRepo = memory.NewAttendanceRepository()
	default:
		log.Fatal("Unsupported storage driver: ", cfg.App.StorageDriver)
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, userRepo, cfg.Office)
	authSvc := authService.NewAuthService(userRepo, jwtService)
	dashboardSvc := dashboardService.NewDashboardService(attendanceRepo, userRepo, cfg.Office)
	reportSvc := reportService.NewReportService(attendanceRepo, userRepo, cfg.Office)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		authHandler,
		attendanceHandler,
		dashboardHandler,
		reportHandler,
	)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc, cfg.Office, cfg.Sweep).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
