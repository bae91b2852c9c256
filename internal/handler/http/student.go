package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/traindesk/tcms-backend-go/internal/domain/student"
	"github.com/traindesk/tcms-backend-go/internal/handler/http/middleware"
	"github.com/traindesk/tcms-backend-go/internal/handler/http/response"
	"github.com/traindesk/tcms-backend-go/internal/service/file"
	studentservice "github.com/traindesk/tcms-backend-go/internal/service/student"
)

type StudentHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	UploadPhoto(w http.ResponseWriter, r *http.Request)
}

type StudentHandlerImpl struct {
	studentService *studentservice.Service
	fileService    *file.Service
}

func NewStudentHandler(studentService *studentservice.Service, fileService *file.Service) StudentHandler {
	return &StudentHandlerImpl{
		studentService: studentService,
		fileService:    fileService,
	}
}

// Create implements StudentHandler.
func (h *StudentHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req student.CreateStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create student decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.studentService.Create(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Student created successfully", student.NewStudentResponse(created))
}

// Update implements StudentHandler.
func (h *StudentHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req student.UpdateStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update student decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.studentService.Update(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Student updated successfully", student.NewStudentResponse(updated))
}

// List implements StudentHandler.
func (h *StudentHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	students, err := h.studentService.List(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, student.NewStudentResponses(students))
}

// Get implements StudentHandler.
func (h *StudentHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Student ID is required", nil)
		return
	}

	st, err := h.studentService.Get(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, student.NewStudentResponse(st))
}

// Me implements StudentHandler.
func (h *StudentHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	st, err := h.studentService.MyProfile(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, student.NewStudentResponse(st))
}

// UploadPhoto implements StudentHandler.
func (h *StudentHandlerImpl) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Student ID is required", nil)
		return
	}

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	f, header, err := r.FormFile("photo")
	if err != nil {
		response.BadRequest(w, "Photo file is required", nil)
		return
	}
	defer f.Close()

	path, err := h.fileService.UploadStudentPhoto(r.Context(), f, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	updated, err := h.studentService.Update(r.Context(), actor, student.UpdateStudentRequest{
		ID:        id,
		PhotoPath: &path,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Photo uploaded successfully", student.NewStudentResponse(updated))
}
