package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/traindesk/tcms-backend-go/internal/domain/leave"
	"github.com/traindesk/tcms-backend-go/internal/domain/user"
	"github.com/traindesk/tcms-backend-go/internal/handler/http/middleware"
	"github.com/traindesk/tcms-backend-go/internal/handler/http/response"
	"github.com/traindesk/tcms-backend-go/internal/service/file"
	leaveservice "github.com/traindesk/tcms-backend-go/internal/service/leave"
)

type LeaveHandler interface {
	ListTypes(w http.ResponseWriter, r *http.Request)
	GetType(w http.ResponseWriter, r *http.Request)
	CreateType(w http.ResponseWriter, r *http.Request)
	UpdateType(w http.ResponseWriter, r *http.Request)
	DeleteType(w http.ResponseWriter, r *http.Request)

	Submit(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
	MyApplications(w http.ResponseWriter, r *http.Request)
	PendingApplications(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	AuditTrail(w http.ResponseWriter, r *http.Request)

	MyBalances(w http.ResponseWriter, r *http.Request)
	StudentBalances(w http.ResponseWriter, r *http.Request)
	AllBalances(w http.ResponseWriter, r *http.Request)

	UploadDocument(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService *leaveservice.Service
	fileService  *file.Service
}

func NewLeaveHandler(leaveService *leaveservice.Service, fileService *file.Service) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService: leaveService,
		fileService:  fileService,
	}
}

// ListTypes implements LeaveHandler.
func (h *LeaveHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("include_inactive") == "true"
	if includeInactive {
		actor, err := middleware.ActorFromRequest(r)
		if err != nil || !actor.IsAdmin() {
			includeInactive = false
		}
	}

	types, err := h.leaveService.Catalog.ListTypes(r.Context(), includeInactive)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	responses := make([]leave.LeaveTypeResponse, 0, len(types))
	for _, lt := range types {
		responses = append(responses, leave.NewLeaveTypeResponse(lt))
	}
	response.Success(w, responses)
}

// GetType implements LeaveHandler.
func (h *LeaveHandlerImpl) GetType(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave type ID is required", nil)
		return
	}

	lt, err := h.leaveService.Catalog.GetType(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.NewLeaveTypeResponse(lt))
}

// CreateType implements LeaveHandler.
func (h *LeaveHandlerImpl) CreateType(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.CreateLeaveTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateType decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.leaveService.Catalog.CreateType(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave type created successfully", leave.NewLeaveTypeResponse(created))
}

// UpdateType implements LeaveHandler.
func (h *LeaveHandlerImpl) UpdateType(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.UpdateLeaveTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateType decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.leaveService.Catalog.UpdateType(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave type updated successfully", leave.NewLeaveTypeResponse(updated))
}

// DeleteType implements LeaveHandler.
func (h *LeaveHandlerImpl) DeleteType(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave type ID is required", nil)
		return
	}

	if err := h.leaveService.Catalog.DeleteType(r.Context(), actor, id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave type deleted successfully", nil)
}

// Submit implements LeaveHandler.
func (h *LeaveHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.SubmitLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Submit decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.leaveService.Applications.Submit(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave application submitted successfully", leave.NewApplicationResponse(created))
}

// Review implements LeaveHandler.
func (h *LeaveHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.ReviewLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Review decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ApplicationID = chi.URLParam(r, "id")

	reviewed, err := h.leaveService.Applications.Review(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave application reviewed successfully", leave.NewApplicationResponse(reviewed))
}

// MyApplications implements LeaveHandler.
func (h *LeaveHandlerImpl) MyApplications(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	applications, err := h.leaveService.Applications.MyApplications(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.NewApplicationResponses(applications))
}

// PendingApplications implements LeaveHandler.
func (h *LeaveHandlerImpl) PendingApplications(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	applications, err := h.leaveService.Applications.PendingApplications(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.NewApplicationResponses(applications))
}

// History implements LeaveHandler.
func (h *LeaveHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	applications, err := h.leaveService.Applications.History(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.NewApplicationResponses(applications))
}

// AuditTrail implements LeaveHandler.
func (h *LeaveHandlerImpl) AuditTrail(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Application ID is required", nil)
		return
	}

	entries, err := h.leaveService.Applications.AuditTrail(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.NewAuditLogResponses(entries))
}

// MyBalances implements LeaveHandler.
func (h *LeaveHandlerImpl) MyBalances(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if actor.StudentID == nil {
		response.HandleError(w, user.ErrStudentAccessRequired)
		return
	}

	summaries, err := h.leaveService.Balances.StudentSummaries(r.Context(), *actor.StudentID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.NewBalanceSummaryResponses(summaries))
}

// StudentBalances implements LeaveHandler.
func (h *LeaveHandlerImpl) StudentBalances(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if !actor.IsAdmin() {
		response.HandleError(w, user.ErrAdminAccessRequired)
		return
	}

	studentID := chi.URLParam(r, "id")
	if studentID == "" {
		response.BadRequest(w, "Student ID is required", nil)
		return
	}

	summaries, err := h.leaveService.Balances.StudentSummaries(r.Context(), studentID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.NewBalanceSummaryResponses(summaries))
}

// AllBalances implements LeaveHandler.
func (h *LeaveHandlerImpl) AllBalances(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	summaries, err := h.leaveService.Balances.AllSummaries(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.NewBalanceSummaryResponses(summaries))
}

// UploadDocument implements LeaveHandler.
func (h *LeaveHandlerImpl) UploadDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	f, header, err := r.FormFile("document")
	if err != nil {
		response.BadRequest(w, "Document file is required", nil)
		return
	}
	defer f.Close()

	path, err := h.fileService.UploadLeaveDocument(r.Context(), f, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	response.Created(w, "Document uploaded successfully", map[string]string{"document_path": path})
}
