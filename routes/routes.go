package routes

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/patiponrmutl/SISBackend/config"
	"github.com/patiponrmutl/SISBackend/handlers"
	"github.com/patiponrmutl/SISBackend/middlewares"
	"github.com/patiponrmutl/SISBackend/models"
)

// Register wires all HTTP routes.
func Register(e *echo.Echo, cfg *config.Config) {
	// ===== Handlers (shared singletons) =====
	ttl := time.Duration(cfg.TokenTTLMinutes) * time.Minute
	auth := handlers.NewAuthHandler(cfg.JWTSecret, ttl)
	usr := handlers.NewUserHandler()
	std := handlers.NewStudentHandler()
	tch := handlers.NewTeacherHandler()
	crs := handlers.NewCourseHandler()
	enr := handlers.NewEnrollmentHandler()
	att := handlers.NewAttendanceHandler()
	grd := handlers.NewGradeHandler()
	portal := handlers.NewStudentPortalHandler()
	roster := handlers.NewRosterHandler()
	profile := handlers.NewProfileHandler()

	// ===== Public =====
	e.GET("/healthz", handlers.Health)
	e.POST("/login", auth.Login)

	authMW := middlewares.RequireAuth(cfg.JWTSecret)

	// เปลี่ยนรหัสผ่านตัวเอง — ทุก role ที่ล็อกอินแล้ว
	e.PUT("/profile/password", profile.ChangePassword, authMW,
		middlewares.RequireRole(models.RoleAdmin, models.RoleTeacher, models.RoleStudent))

	// ===== Admin routes (role_id = 1) =====
	admin := e.Group("/admin", authMW, middlewares.RequireRole(models.RoleAdmin))

	admin.GET("/users", usr.List)
	admin.POST("/users", usr.Create)
	admin.GET("/users/:id", usr.Get)
	admin.PUT("/users/:id", usr.Update)
	admin.DELETE("/users/:id", usr.Delete)

	admin.GET("/students", std.List)
	admin.POST("/students", std.Create)
	admin.GET("/students/:id", std.Get)
	admin.PUT("/students/:id", std.Update)
	admin.DELETE("/students/:id", std.Delete)

	admin.GET("/teachers", tch.List)
	admin.POST("/teachers", tch.Create)
	admin.GET("/teachers/:id", tch.Get)
	admin.PUT("/teachers/:id", tch.Update)
	admin.DELETE("/teachers/:id", tch.Delete)

	admin.GET("/courses", crs.List)
	admin.POST("/courses", crs.Create)
	admin.GET("/courses/:id", crs.Get)
	admin.PUT("/courses/:id", crs.Update)
	admin.DELETE("/courses/:id", crs.Delete)

	// ทะเบียนลงเรียน = หลักฐานสิทธิ์ของครู
	admin.GET("/enrollments", enr.List)
	admin.POST("/enrollments", enr.Create)
	admin.GET("/enrollments/:id", enr.Get)
	admin.PUT("/enrollments/:id", enr.Update)
	admin.DELETE("/enrollments/:id", enr.Delete)

	// ===== Teacher routes (role_id = 2) =====
	teacher := e.Group("/teacher", authMW, middlewares.RequireRole(models.RoleTeacher))

	teacher.GET("/students", roster.List)

	teacher.GET("/attendance/all", att.List)
	teacher.GET("/attendance", att.Get)
	teacher.POST("/attendance", att.Create)
	teacher.PUT("/attendance", att.Update)
	teacher.DELETE("/attendance", att.Delete)

	teacher.GET("/grades", grd.List)
	teacher.POST("/grades", grd.Create)
	teacher.GET("/grades/:id", grd.Get)
	teacher.PUT("/grades/:id", grd.Update)
	teacher.DELETE("/grades/:id", grd.Delete)

	// ===== Student routes (role_id = 3) =====
	student := e.Group("/student", authMW, middlewares.RequireRole(models.RoleStudent))
	student.GET("/grades", portal.Grades)
	student.GET("/attendance", portal.Attendance)
}
