package dto

import "time"

// APIResponse is the envelope for every successful response: writes carry a
// message, reads carry data.
type APIResponse struct {
	Success   bool        `json:"success" example:"true"`
	Message   string      `json:"message,omitempty" example:"Room added successfully."`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewSuccessResponse creates a success envelope with a display message.
func NewSuccessResponse(message string, data interface{}) APIResponse {
	return APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewDataResponse creates a success envelope for a read.
func NewDataResponse(data interface{}) APIResponse {
	return APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// CountResponse reports how many records a bulk operation touched
type CountResponse struct {
	Count int64 `json:"count" example:"42"`
}

// IDResponse carries the generated key of an inserted row
type IDResponse struct {
	ID int64 `json:"id" example:"17"`
}

// ExportResponse points at a written report file
type ExportResponse struct {
	Kind     string `json:"kind" example:"dues"`
	Path     string `json:"path" example:"exports/Due_Summary_2025-04-23_1a2b3c4d.xlsx"`
	FileName string `json:"fileName" example:"Due_Summary_2025-04-23_1a2b3c4d.xlsx"`
	Rows     int    `json:"rows" example:"12"`
}
