package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/traindesk/tcms-backend-go/internal/domain/master/batch"
	"github.com/traindesk/tcms-backend-go/internal/domain/master/course"
	"github.com/traindesk/tcms-backend-go/internal/handler/http/middleware"
	"github.com/traindesk/tcms-backend-go/internal/handler/http/response"
	masterservice "github.com/traindesk/tcms-backend-go/internal/service/master"
)

type MasterHandler interface {
	ListCourses(w http.ResponseWriter, r *http.Request)
	GetCourse(w http.ResponseWriter, r *http.Request)
	CreateCourse(w http.ResponseWriter, r *http.Request)
	UpdateCourse(w http.ResponseWriter, r *http.Request)
	DeleteCourse(w http.ResponseWriter, r *http.Request)

	ListBatches(w http.ResponseWriter, r *http.Request)
	GetBatch(w http.ResponseWriter, r *http.Request)
	CreateBatch(w http.ResponseWriter, r *http.Request)
	UpdateBatch(w http.ResponseWriter, r *http.Request)
	DeleteBatch(w http.ResponseWriter, r *http.Request)
	BatchRoster(w http.ResponseWriter, r *http.Request)

	EnrollStudent(w http.ResponseWriter, r *http.Request)
}

type MasterHandlerImpl struct {
	masterService *masterservice.Service
}

func NewMasterHandler(masterService *masterservice.Service) MasterHandler {
	return &MasterHandlerImpl{masterService: masterService}
}

// ListCourses implements MasterHandler.
func (h *MasterHandlerImpl) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.masterService.ListCourses(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, course.NewCourseResponses(courses))
}

// GetCourse implements MasterHandler.
func (h *MasterHandlerImpl) GetCourse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Course ID is required", nil)
		return
	}

	c, err := h.masterService.GetCourse(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, course.NewCourseResponse(c))
}

// CreateCourse implements MasterHandler.
func (h *MasterHandlerImpl) CreateCourse(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req course.CreateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateCourse decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.masterService.CreateCourse(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Course created successfully", course.NewCourseResponse(created))
}

// UpdateCourse implements MasterHandler.
func (h *MasterHandlerImpl) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req course.UpdateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateCourse decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.masterService.UpdateCourse(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Course updated successfully", course.NewCourseResponse(updated))
}

// DeleteCourse implements MasterHandler.
func (h *MasterHandlerImpl) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Course ID is required", nil)
		return
	}

	if err := h.masterService.DeleteCourse(r.Context(), actor, id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Course deleted successfully", nil)
}

// ListBatches implements MasterHandler.
func (h *MasterHandlerImpl) ListBatches(w http.ResponseWriter, r *http.Request) {
	batches, err := h.masterService.ListBatches(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, batch.NewBatchResponses(batches))
}

// GetBatch implements MasterHandler.
func (h *MasterHandlerImpl) GetBatch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Batch ID is required", nil)
		return
	}

	b, err := h.masterService.GetBatch(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, batch.NewBatchResponse(b))
}

// CreateBatch implements MasterHandler.
func (h *MasterHandlerImpl) CreateBatch(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req batch.CreateBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateBatch decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.masterService.CreateBatch(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Batch created successfully", batch.NewBatchResponse(created))
}

// UpdateBatch implements MasterHandler.
func (h *MasterHandlerImpl) UpdateBatch(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req batch.UpdateBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateBatch decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.masterService.UpdateBatch(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Batch updated successfully", batch.NewBatchResponse(updated))
}

// DeleteBatch implements MasterHandler.
func (h *MasterHandlerImpl) DeleteBatch(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Batch ID is required", nil)
		return
	}

	if err := h.masterService.DeleteBatch(r.Context(), actor, id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Batch deleted successfully", nil)
}

// BatchRoster implements MasterHandler.
func (h *MasterHandlerImpl) BatchRoster(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Batch ID is required", nil)
		return
	}

	roster, err := h.masterService.BatchRoster(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, batch.NewRosterResponses(roster))
}

// EnrollStudent implements MasterHandler.
func (h *MasterHandlerImpl) EnrollStudent(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req batch.EnrollStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("EnrollStudent decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	enrollment, err := h.masterService.EnrollStudent(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Student enrolled successfully", batch.NewEnrollmentResponse(enrollment))
}
