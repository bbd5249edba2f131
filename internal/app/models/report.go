package models

// DashboardStats holds the dashboard counters. Fields that could not be
// computed stay at zero.
type DashboardStats struct {
	TotalStudents    int64   `json:"totalStudents"`
	TotalStaff       int64   `json:"totalStaff"`
	TotalRooms       int64   `json:"totalRooms"`
	OccupiedRooms    int64   `json:"occupiedRooms"`
	AvailableRooms   int64   `json:"availableRooms"`
	FullRooms        int64   `json:"fullRooms"`
	MaintenanceRooms int64   `json:"maintenanceRooms"`
	TotalRevenue     float64 `json:"totalRevenue"`
	MonthlyRevenue   float64 `json:"monthlyRevenue"`
	PresentToday     int64   `json:"presentToday"`
	AbsentToday      int64   `json:"absentToday"`
}

// DueSummaryRow is one student's balance for the current month
type DueSummaryRow struct {
	StudentID string  `json:"studentId"`
	Name      string  `json:"name"`
	Email     *string `json:"email"`
	RoomNo    string  `json:"roomNo"`
	Rent      float64 `json:"rent"`
	TotalPaid float64 `json:"totalPaid"`
	DueAmount float64 `json:"dueAmount"`
}

// ReportTable is a column-labelled result set in a stable row order.
// It is the only thing handed to the spreadsheet writer.
type ReportTable struct {
	Title   string          `json:"title"`
	Columns []string        `json:"columns"`
	Rows    [][]interface{} `json:"rows"`
}
