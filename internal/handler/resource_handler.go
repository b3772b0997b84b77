package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"pawhaven/internal/app/db"
	"pawhaven/internal/app/resource"
	"pawhaven/internal/pkg/errs"
	"pawhaven/internal/pkg/logx"
	"pawhaven/internal/pkg/req"
	"pawhaven/internal/pkg/resp"
)

// HandleListResources returns care guides, optionally filtered by category.
func HandleListResources(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("category")))

		resources, err := deps.Resources.List(r.Context(), category)
		if err != nil {
			logx.Error(err, "failed to list resources")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, resources)
	}
}

// HandleGetResource returns one care guide.
func HandleGetResource(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(chi.URLParam(r, "id"))
		if !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		res, err := deps.Resources.Get(r.Context(), id)
		if err != nil {
			if db.IsNotFound(err) {
				resp.RespondError(w, r, errs.NewError(errs.ErrResourceNotFound))
				return
			}
			logx.Error(err, "failed to fetch resource", "resource_id", id)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, res)
	}
}

type ResourceInput struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Body     string `json:"body"`
	URL      string `json:"url"`
}

// HandleCreateResource publishes a new care guide. Admin only.
func HandleCreateResource(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireAdmin(w, r); !ok {
			return
		}

		var input ResourceInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		input.Title = strings.TrimSpace(input.Title)
		input.Category = strings.ToLower(strings.TrimSpace(input.Category))
		if input.Title == "" || input.Category == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		created, err := deps.Resources.Create(r.Context(), &resource.Resource{
			Title:    input.Title,
			Category: input.Category,
			Body:     input.Body,
			URL:      input.URL,
		})
		if err != nil {
			logx.Error(err, "failed to create resource")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, created)
	}
}

// HandleUpdateResource replaces a care guide's content. Admin only.
func HandleUpdateResource(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireAdmin(w, r); !ok {
			return
		}

		id, ok := pathID(chi.URLParam(r, "id"))
		if !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		var input ResourceInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		input.Title = strings.TrimSpace(input.Title)
		input.Category = strings.ToLower(strings.TrimSpace(input.Category))
		if input.Title == "" || input.Category == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		updated, err := deps.Resources.Update(r.Context(), &resource.Resource{
			ID:       id,
			Title:    input.Title,
			Category: input.Category,
			Body:     input.Body,
			URL:      input.URL,
		})
		if err != nil {
			if db.IsNotFound(err) {
				resp.RespondError(w, r, errs.NewError(errs.ErrResourceNotFound))
				return
			}
			logx.Error(err, "failed to update resource", "resource_id", id)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, updated)
	}
}

// HandleDeleteResource removes a care guide. Admin only.
func HandleDeleteResource(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireAdmin(w, r); !ok {
			return
		}

		id, ok := pathID(chi.URLParam(r, "id"))
		if !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		if err := deps.Resources.Delete(r.Context(), id); err != nil {
			if db.IsNotFound(err) {
				resp.RespondError(w, r, errs.NewError(errs.ErrResourceNotFound))
				return
			}
			logx.Error(err, "failed to delete resource", "resource_id", id)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"deleted": id})
	}
}
