package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/traindesk/tcms-backend-go/internal/domain/attendance"
	"github.com/traindesk/tcms-backend-go/internal/domain/user"
	"github.com/traindesk/tcms-backend-go/internal/handler/http/middleware"
	"github.com/traindesk/tcms-backend-go/internal/handler/http/response"
	attendanceservice "github.com/traindesk/tcms-backend-go/internal/service/attendance"
)

type AttendanceHandler interface {
	Mark(w http.ResponseWriter, r *http.Request)
	Sheet(w http.ResponseWriter, r *http.Request)
	MyHistory(w http.ResponseWriter, r *http.Request)
	StudentHistory(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService *attendanceservice.Service
}

func NewAttendanceHandler(attendanceService *attendanceservice.Service) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// Mark implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Mark(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.MarkBulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Mark decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	count, err := h.attendanceService.MarkBulk(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance saved successfully", map[string]int{"marked": count})
}

// Sheet implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Sheet(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	batchID := r.URL.Query().Get("batch_id")
	date := r.URL.Query().Get("date")
	if batchID == "" || date == "" {
		response.BadRequest(w, "batch_id and date are required", nil)
		return
	}

	entries, err := h.attendanceService.MarkingSheet(r.Context(), actor, batchID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.NewSheetEntryResponses(entries))
}

// MyHistory implements AttendanceHandler.
func (h *AttendanceHandlerImpl) MyHistory(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if actor.StudentID == nil {
		response.HandleError(w, user.ErrStudentAccessRequired)
		return
	}

	h.writeHistory(w, r, actor, *actor.StudentID)
}

// StudentHistory implements AttendanceHandler.
func (h *AttendanceHandlerImpl) StudentHistory(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	studentID := chi.URLParam(r, "id")
	if studentID == "" {
		response.BadRequest(w, "Student ID is required", nil)
		return
	}

	h.writeHistory(w, r, actor, studentID)
}

func (h *AttendanceHandlerImpl) writeHistory(w http.ResponseWriter, r *http.Request, actor user.Actor, studentID string) {
	records, summary, err := h.attendanceService.History(r.Context(), actor, studentID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"records": attendance.NewAttendanceResponses(records),
		"summary": attendance.NewSummaryResponse(summary),
	})
}
