package services

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/yigit/hostel/internal/app/models"
	"github.com/yigit/hostel/internal/app/models/dto"
	"github.com/yigit/hostel/internal/pkg/apperrors"
	"github.com/yigit/hostel/internal/pkg/export"
	"github.com/yigit/hostel/internal/pkg/filestorage"
	"github.com/yigit/hostel/internal/pkg/helpers"
)

// ReportKind names an exportable report
type ReportKind string

const (
	ReportStudents   ReportKind = "students"
	ReportRooms      ReportKind = "rooms"
	ReportPayments   ReportKind = "payments"
	ReportDues       ReportKind = "dues"
	ReportOccupancy  ReportKind = "occupancy"
	ReportAttendance ReportKind = "attendance"
)

// ErrNoDataToExport is returned when a report has no rows
var ErrNoDataToExport = apperrors.NewCustomError(apperrors.ErrResourceNotFound, "No data to export.")

// ExportService turns reports into spreadsheet files
type ExportService struct {
	students *StudentService
	rooms    *RoomService
	payments *PaymentService
	reports  *ReportService
	storage  filestorage.FileStorage
	clock    clockwork.Clock
	logger   zerolog.Logger
}

// NewExportService creates a new ExportService
func NewExportService(
	students *StudentService,
	rooms *RoomService,
	payments *PaymentService,
	reports *ReportService,
	storage filestorage.FileStorage,
	clock clockwork.Clock,
	logger zerolog.Logger,
) *ExportService {
	return &ExportService{
		students: students,
		rooms:    rooms,
		payments: payments,
		reports:  reports,
		storage:  storage,
		clock:    clock,
		logger:   logger,
	}
}

// BuildTable loads the rows of one report. start and end are only used by
// the attendance report.
func (s *ExportService) BuildTable(ctx context.Context, kind ReportKind, start, end string) (*models.ReportTable, error) {
	switch kind {
	case ReportStudents:
		students, err := s.students.ListStudents(ctx, "")
		if err != nil {
			return nil, err
		}
		return StudentTable(students), nil
	case ReportRooms:
		rooms, err := s.rooms.ListRooms(ctx, "")
		if err != nil {
			return nil, err
		}
		return RoomTable("Room_List_Report", rooms), nil
	case ReportOccupancy:
		rooms, err := s.rooms.ListOccupiedRooms(ctx)
		if err != nil {
			return nil, err
		}
		return RoomTable("Room_Occupancy_Report", rooms), nil
	case ReportPayments:
		entries, err := s.payments.ListPayments(ctx)
		if err != nil {
			return nil, err
		}
		return PaymentTable(entries), nil
	case ReportDues:
		rows, err := s.reports.DueSummary(ctx)
		if err != nil {
			return nil, err
		}
		return DueTable(rows), nil
	case ReportAttendance:
		rows, err := s.reports.AttendanceReport(ctx, start, end)
		if err != nil {
			return nil, err
		}
		return AttendanceTable(rows), nil
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("Unknown report %q.", kind))
	}
}

// Export builds a report and stores it as
// <Title>_<YYYY-MM-DD>_<8 random hex chars>.xlsx
func (s *ExportService) Export(ctx context.Context, kind ReportKind, start, end string) (*dto.ExportResponse, error) {
	table, err := s.BuildTable(ctx, kind, start, end)
	if err != nil {
		return nil, err
	}
	if len(table.Rows) == 0 {
		return nil, ErrNoDataToExport
	}

	path, err := s.write(table)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("kind", string(kind)).Str("path", path).Int("rows", len(table.Rows)).Msg("Report exported")
	return &dto.ExportResponse{
		Kind:     string(kind),
		Path:     path,
		FileName: filepath.Base(path),
		Rows:     len(table.Rows),
	}, nil
}

// SnapshotDues writes the current due summary even when it is empty
func (s *ExportService) SnapshotDues(ctx context.Context) (string, error) {
	table, err := s.BuildTable(ctx, ReportDues, "", "")
	if err != nil {
		return "", err
	}
	return s.write(table)
}

func (s *ExportService) write(table *models.ReportTable) (string, error) {
	data, err := export.WriteWorkbook(table)
	if err != nil {
		s.logger.Error().Err(err).Str("title", table.Title).Msg("Error rendering workbook")
		return "", err
	}

	today := helpers.FormatDate(helpers.DateOnly(s.clock.Now()))
	name := filestorage.UniqueName(table.Title+"_"+today, ".xlsx")
	return s.storage.SaveBytes(name, data)
}

func optional(v *string) interface{} {
	return helpers.StringValue(v)
}

// StudentTable lays out students in list order
func StudentTable(students []*models.Student) *models.ReportTable {
	table := &models.ReportTable{
		Title:   "Student_Report",
		Columns: []string{"Student ID", "Name", "Gender", "Age", "Email", "Contact", "Admission Date", "Room No"},
		Rows:    make([][]interface{}, 0, len(students)),
	}
	for _, st := range students {
		var age interface{} = ""
		if st.Age != nil {
			age = *st.Age
		}
		admission := ""
		if st.AdmissionDate != nil {
			admission = helpers.FormatDate(*st.AdmissionDate)
		}
		table.Rows = append(table.Rows, []interface{}{
			st.StudentID, st.Name, optional(st.Gender), age,
			optional(st.Email), optional(st.Contact), admission, optional(st.RoomNo),
		})
	}
	return table
}

// RoomTable lays out rooms in list order under the given title
func RoomTable(title string, rooms []*models.Room) *models.ReportTable {
	table := &models.ReportTable{
		Title:   title,
		Columns: []string{"Room No", "Type", "Capacity", "Occupied", "Rent", "Status"},
		Rows:    make([][]interface{}, 0, len(rooms)),
	}
	for _, r := range rooms {
		table.Rows = append(table.Rows, []interface{}{
			r.RoomNo, r.RoomType, r.Capacity, r.Occupied, r.Rent, string(r.Status),
		})
	}
	return table
}

// PaymentTable lays out the payment history, newest first
func PaymentTable(entries []*models.PaymentHistoryEntry) *models.ReportTable {
	table := &models.ReportTable{
		Title:   "Payment_History_Report",
		Columns: []string{"Payment ID", "Student ID", "Student Name", "Amount", "Payment Date", "Method"},
		Rows:    make([][]interface{}, 0, len(entries)),
	}
	for _, e := range entries {
		table.Rows = append(table.Rows, []interface{}{
			e.PaymentID, optional(e.StudentID), optional(e.StudentName),
			e.Amount, helpers.FormatDate(e.PaymentDate), string(e.Method),
		})
	}
	return table
}

// DueTable lays out the monthly due summary, largest due first
func DueTable(rows []*models.DueSummaryRow) *models.ReportTable {
	table := &models.ReportTable{
		Title:   "Due_Summary_Report",
		Columns: []string{"Student ID", "Student Name", "Room No", "Rent", "Paid", "Due", "Email"},
		Rows:    make([][]interface{}, 0, len(rows)),
	}
	for _, r := range rows {
		table.Rows = append(table.Rows, []interface{}{
			r.StudentID, r.Name, r.RoomNo, r.Rent, r.TotalPaid, r.DueAmount, optional(r.Email),
		})
	}
	return table
}

// AttendanceTable lays out attendance records by date then name
func AttendanceTable(rows []*models.AttendanceReportRow) *models.ReportTable {
	table := &models.ReportTable{
		Title:   "Attendance_Report",
		Columns: []string{"Date", "Student ID", "Name", "Room No", "Status"},
		Rows:    make([][]interface{}, 0, len(rows)),
	}
	for _, r := range rows {
		table.Rows = append(table.Rows, []interface{}{
			helpers.FormatDate(r.AttendanceDate), r.StudentID, r.Name, optional(r.RoomNo), string(r.Status),
		})
	}
	return table
}
