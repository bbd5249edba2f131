package services

import (
	"github.com/jonboulle/clockwork"
	"github.com/yigit/hostel/internal/app/repositories"
	"github.com/yigit/hostel/internal/db"
	"github.com/yigit/hostel/internal/pkg/auth"
	"github.com/yigit/hostel/internal/pkg/filestorage"
	"github.com/yigit/hostel/internal/pkg/logger"
)

// Services holds every service of the application.
// Services defined in this package:
// - AuthService: registration and login
// - UserService: staff accounts and the seeded admin
// - RoomService: rooms and their status
// - StudentService: students and room assignments
// - PaymentService: rent payments
// - AttendanceService: daily attendance
// - ReportService: dashboard counters and summaries
// - ExportService: spreadsheet reports
type Services struct {
	Auth       *AuthService
	User       *UserService
	Room       *RoomService
	Student    *StudentService
	Payment    *PaymentService
	Attendance *AttendanceService
	Report     *ReportService
	Export     *ExportService
}

// NewServices wires every service to the shared connection handle
func NewServices(
	database *db.PostgresDB,
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	storage filestorage.FileStorage,
	clock clockwork.Clock,
) *Services {
	s := &Services{
		Auth:       NewAuthService(repos.UserRepository, jwtService, logger.Component("auth_service")),
		User:       NewUserService(database, repos.UserRepository, logger.Component("user_service")),
		Room:       NewRoomService(database, repos.RoomRepository, logger.Component("room_service")),
		Student:    NewStudentService(database, repos.StudentRepository, repos.RoomRepository, repos.PaymentRepository, repos.AttendanceRepository, logger.Component("student_service")),
		Payment:    NewPaymentService(repos.PaymentRepository, repos.StudentRepository, logger.Component("payment_service")),
		Attendance: NewAttendanceService(repos.AttendanceRepository, clock, logger.Component("attendance_service")),
		Report:     NewReportService(repos.ReportRepository, repos.AttendanceRepository, clock, logger.Component("report_service")),
	}
	s.Export = NewExportService(s.Student, s.Room, s.Payment, s.Report, storage, clock, logger.Component("export_service"))
	return s
}
