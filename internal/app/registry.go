package app

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AIforimpact22/HR-amas/internal/adjustment"
	"github.com/AIforimpact22/HR-amas/internal/attendance"
	"github.com/AIforimpact22/HR-amas/internal/employee"
	"github.com/AIforimpact22/HR-amas/internal/messaging/kafka"
	"github.com/AIforimpact22/HR-amas/internal/payroll"
	"github.com/AIforimpact22/HR-amas/internal/rbac"
	"github.com/AIforimpact22/HR-amas/internal/rbac/infra"
	"github.com/AIforimpact22/HR-amas/internal/salaryhistory"
	"github.com/AIforimpact22/HR-amas/internal/schedule"
	"github.com/AIforimpact22/HR-amas/internal/shared/counter"
)

// registerModules wires repositories, services and handlers and mounts the
// versioned API. Construction order follows the dependency chain: schedule
// feeds attendance, attendance feeds payroll.
func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	employeeRepo := employee.NewRepository(gormDB, db)
	scheduleRepo := schedule.NewRepository(gormDB, db)
	attendanceRepo := attendance.NewRepository(gormDB, db)
	salaryRepo := salaryhistory.NewRepository(gormDB, db)
	adjustmentRepo := adjustment.NewRepository(gormDB, db)
	payrollRepo := payroll.NewRepository(gormDB, db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer, logger)
	if err != nil {
		return err
	}

	// --- Services ---
	scheduleService := schedule.NewService(db, scheduleRepo, logger)
	attendanceService := attendance.NewService(db, attendanceRepo, scheduleService, logger)
	salaryService := salaryhistory.NewService(salaryRepo, logger)
	adjustmentService := adjustment.NewService(db, adjustmentRepo, logger)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, counterRepo, outboxRepo, rdb, logger)
	payrollService := payroll.NewServiceWithOutbox(db, payrollRepo, salaryRepo, attendanceService, outboxRepo, rdb, logger)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService, logger)
	scheduleHandler := schedule.NewHandler(scheduleService, logger)
	attendanceHandler := attendance.NewHandler(attendanceService, logger)
	salaryHandler := salaryhistory.NewHandler(salaryService, logger)
	adjustmentHandler := adjustment.NewHandler(adjustmentService, logger)
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		employee.RegisterRoutes(api, employeeHandler, rbacService, logger)
		schedule.RegisterRoutes(api, scheduleHandler, rbacService)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		salaryhistory.RegisterRoutes(api, salaryHandler, rbacService)
		adjustment.RegisterRoutes(api, adjustmentHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb)
	}

	return nil
}
