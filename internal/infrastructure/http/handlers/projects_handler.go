package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/s4084228/toc-backend/internal/application/ports"
	"github.com/s4084228/toc-backend/internal/application/project"
	"github.com/s4084228/toc-backend/internal/domain"
	"github.com/s4084228/toc-backend/internal/infrastructure/http/middleware"
)

type ProjectsHandler struct {
	create  *project.CreateProject
	update  *project.UpdateProject
	get     *project.GetProject
	list    *project.ListProjects
	delete  *project.DeleteProject
	emitter ports.WebhookEmitter
	log     zerolog.Logger
}

func NewProjectsHandler(create *project.CreateProject, update *project.UpdateProject, get *project.GetProject, list *project.ListProjects, del *project.DeleteProject, emitter ports.WebhookEmitter, log zerolog.Logger) *ProjectsHandler {
	return &ProjectsHandler{
		create:  create,
		update:  update,
		get:     get,
		list:    list,
		delete:  del,
		emitter: emitter,
		log:     log,
	}
}

// ownerFromContext resolves the authenticated caller into a UserID.
func ownerFromContext(w http.ResponseWriter, r *http.Request) (domain.UserID, bool) {
	auth := middleware.AuthFromContext(r.Context())
	if auth == nil {
		writeErr(w, http.StatusUnauthorized, "", "unauthorized")
		return domain.UserID{}, false
	}
	id, err := uuid.Parse(auth.UserID)
	if err != nil {
		writeErr(w, http.StatusUnauthorized, "", "invalid token subject")
		return domain.UserID{}, false
	}
	return domain.NewUserID(id), true
}

func projectJSON(p *domain.Project) map[string]interface{} {
	return map[string]interface{}{
		"projectId":   p.ProjectID,
		"title":       p.Title,
		"status":      p.Status,
		"content":     p.Content,
		"colorConfig": p.ColorConfig,
		"createdAt":   p.CreatedAt,
		"updatedAt":   p.UpdatedAt,
	}
}

func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFromContext(w, r)
	if !ok {
		return
	}
	var body struct {
		Title       string         `json:"title"`
		Content     map[string]any `json:"content"`
		ColorConfig map[string]any `json:"colorConfig"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if len(body.Title) > MaxTitleLength {
		writeErr(w, http.StatusBadRequest, "", "title too long")
		return
	}
	result, err := h.create.Execute(r.Context(), project.CreateProjectInput{
		OwnerID:     owner,
		Title:       body.Title,
		Content:     body.Content,
		ColorConfig: body.ColorConfig,
	})
	if err != nil {
		middleware.RecordProjectWrite("create", false)
		if writeDomainErr(w, err) {
			return
		}
		h.log.Error().Err(err).Msg("create project failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	middleware.RecordProjectWrite("create", true)
	AuditEmit(h.log, r, h.emitter, "project.create", owner.String(), true, "")
	writeJSON(w, http.StatusCreated, projectJSON(result.Project))
}

func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFromContext(w, r)
	if !ok {
		return
	}
	projectID := chi.URLParam(r, "projectID")
	var body struct {
		Title         string         `json:"title"`
		ConfirmRename bool           `json:"confirmRename"`
		Status        string         `json:"status"`
		Content       map[string]any `json:"content"`
		ColorConfig   map[string]any `json:"colorConfig"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if len(body.Title) > MaxTitleLength {
		writeErr(w, http.StatusBadRequest, "", "title too long")
		return
	}
	result, err := h.update.Execute(r.Context(), project.UpdateProjectInput{
		OwnerID:       owner,
		ProjectID:     projectID,
		Title:         body.Title,
		ConfirmRename: body.ConfirmRename,
		Content:       body.Content,
		ColorConfig:   body.ColorConfig,
		Status:        domain.ProjectStatus(body.Status),
	})
	if err != nil {
		middleware.RecordProjectWrite("update", false)
		if writeDomainErr(w, err) {
			return
		}
		h.log.Error().Err(err).Msg("update project failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	middleware.RecordProjectWrite("update", true)
	AuditEmit(h.log, r, h.emitter, "project.update", owner.String(), true, "")
	writeJSON(w, http.StatusOK, projectJSON(result.Project))
}

func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFromContext(w, r)
	if !ok {
		return
	}
	p, err := h.get.Execute(r.Context(), owner, chi.URLParam(r, "projectID"))
	if err != nil {
		if writeDomainErr(w, err) {
			return
		}
		h.log.Error().Err(err).Msg("get project failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, projectJSON(p))
}

func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFromContext(w, r)
	if !ok {
		return
	}
	list, err := h.list.Execute(r.Context(), owner)
	if err != nil {
		h.log.Error().Err(err).Msg("list projects failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	out := make([]map[string]interface{}, 0, len(list))
	for _, p := range list {
		out = append(out, projectJSON(p))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"projects": out})
}

func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFromContext(w, r)
	if !ok {
		return
	}
	if err := h.delete.Execute(r.Context(), owner, chi.URLParam(r, "projectID")); err != nil {
		if writeDomainErr(w, err) {
			return
		}
		h.log.Error().Err(err).Msg("delete project failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	AuditEmit(h.log, r, h.emitter, "project.delete", owner.String(), true, "")
	w.WriteHeader(http.StatusNoContent)
}
