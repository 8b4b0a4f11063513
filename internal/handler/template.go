package handler

import (
	"net/http"

	"github.com/lifetrackhq/lifetrack/internal/service"
)

type TemplateHandler struct {
	templateService *service.TemplateService
}

func NewTemplateHandler(templateService *service.TemplateService) *TemplateHandler {
	return &TemplateHandler{
		templateService: templateService,
	}
}

func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	templates, err := h.templateService.Templates()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if templates == nil {
		templates = []*service.GoalTemplate{}
	}
	writeJSON(w, http.StatusOK, templates)
}

type createFromTemplateRequest struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

func (h *TemplateHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req createFromTemplateRequest
	err := decodeJSON(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	goal, err := h.templateService.CreateFromTemplate(req.Name, req.Title)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, goal)
}
