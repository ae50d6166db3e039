package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/studyshelf/backend/internal/models"
	"go.uber.org/zap"
)

// CourseService is the interface that wraps methods for course business logic.
type CourseService interface {
	// Method List retrieve every course with its lessons.
	List(ctx context.Context) ([]models.Course, error)
	// Method Create store a new course and return its identifier.
	//
	// If "req" carries no identifier, one is assigned by the service.
	Create(ctx context.Context, req *models.CreateCourseRequest) (string, error)
	// Method Update merge the present fields of "req" over the stored course.
	//
	// If no course matches "id", models.ErrCourseNotFound is returned.
	Update(ctx context.Context, id string, req *models.UpdateCourseRequest) error
	// Method Delete remove a course. Deleting an unknown course succeeds.
	Delete(ctx context.Context, id string) error
	// Method Health report whether the underlying store is reachable.
	Health(ctx context.Context) error
}

// CourseHandler handles HTTP requests for courses
type CourseHandler struct {
	BaseHandler
	service CourseService
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(svc CourseService, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{
		service:     svc,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all course handler routes
func (h *CourseHandler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.Health)
	r.Route("/courses", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// List handles GET /courses
// @Summary List courses
// @Description Get every course with its lessons
// @Tags courses
// @Produce json
// @Success 200 {array} models.Course
// @Failure 500 {object} map[string]string
// @Router /courses [get]
func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list courses", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, courses)
}

// Create handles POST /courses
// @Summary Create a course
// @Description Create a new course. The identifier is normally generated by the client.
// @Tags courses
// @Accept json
// @Produce json
// @Param request body models.CreateCourseRequest true "Course creation request"
// @Success 201 {object} models.CreateCourseResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 413 {object} map[string]string "Request body too large"
// @Failure 500 {object} map[string]string "Duplicate identifier or store failure"
// @Router /courses [post]
func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCourseRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	id, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create course", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusCreated, models.CreateCourseResponse{Success: true, ID: id})
}

// Update handles PATCH /courses/{id}
// @Summary Update a course
// @Description Merge any subset of title, description and lessons over the stored course
// @Tags courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param request body models.UpdateCourseRequest true "Course update request"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 413 {object} map[string]string "Request body too large"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string
// @Router /courses/{id} [patch]
func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.UpdateCourseRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	if err := h.service.Update(r.Context(), id, &req); err != nil {
		if errors.Is(err, models.ErrCourseNotFound) {
			h.respondError(w, http.StatusNotFound, "Course not found")
			return
		}
		h.logger.Error("failed to update course", zap.Error(err), zap.String("id", id))
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// Delete handles DELETE /courses/{id}
// @Summary Delete a course
// @Description Delete a course and its lessons. Deleting an unknown course succeeds.
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 500 {object} map[string]string
// @Router /courses/{id} [delete]
func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.logger.Error("failed to delete course", zap.Error(err), zap.String("id", id))
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// Health handles GET /health
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (h *CourseHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Health(r.Context()); err != nil {
		h.logger.Warn("health check failed", zap.Error(err))
		h.respondError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
