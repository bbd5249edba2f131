package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/hostel/internal/app/controllers"
	"github.com/yigit/hostel/internal/app/models"
	"github.com/yigit/hostel/internal/app/models/dto"
	"github.com/yigit/hostel/internal/middleware"
)

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Auth       *controllers.AuthController
	User       *controllers.UserController
	Room       *controllers.RoomController
	Student    *controllers.StudentController
	Payment    *controllers.PaymentController
	Attendance *controllers.AttendanceController
	Report     *controllers.ReportController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c *Controllers, authMiddleware *middleware.AuthMiddleware) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.Auth.Register)
		auth.POST("/login", c.Auth.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/dashboard", c.Report.Dashboard)

		rooms := authenticated.Group("/rooms")
		{
			rooms.GET("", c.Room.ListRooms)
			rooms.GET("/types", c.Room.ListRoomTypes)
			rooms.GET("/available", c.Room.ListAvailableRooms)
			rooms.GET("/:roomNo", c.Room.GetRoom)
			rooms.POST("", c.Room.CreateRoom)
			rooms.PUT("/:roomNo", c.Room.UpdateRoom)
			rooms.DELETE("/:roomNo", c.Room.DeleteRoom)
		}

		students := authenticated.Group("/students")
		{
			students.GET("", c.Student.ListStudents)
			students.GET("/options", c.Student.ListStudentOptions)
			students.GET("/:id", c.Student.GetStudent)
			students.POST("", c.Student.CreateStudent)
			students.PUT("/:id", c.Student.UpdateStudent)
			students.DELETE("/:id", c.Student.DeleteStudent)
		}

		payments := authenticated.Group("/payments")
		{
			payments.GET("", c.Payment.ListPayments)
			payments.POST("", c.Payment.CreatePayment)
			payments.GET("/dues", c.Report.DueSummary)
		}

		attendance := authenticated.Group("/attendance")
		{
			attendance.GET("", c.Attendance.GetSheet)
			attendance.PUT("", c.Attendance.Mark)
			attendance.POST("/mark-all", c.Attendance.MarkAllPresent)
		}

		reports := authenticated.Group("/reports")
		{
			reports.GET("/attendance", c.Report.AttendanceReport)
			reports.GET("/:kind/export", c.Report.Export)
		}

		// Staff accounts are managed by admins only
		users := authenticated.Group("/users")
		users.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			users.GET("", c.User.ListUsers)
			users.DELETE("/:id", c.User.DeleteUser)
			users.PUT("/:id/password", c.User.ResetPassword)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dto.NewDataResponse(gin.H{"status": "ok"}))
	})
}
