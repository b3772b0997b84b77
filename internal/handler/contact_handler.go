package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"pawhaven/internal/app/contact"
	"pawhaven/internal/app/db"
	"pawhaven/internal/pkg/errs"
	"pawhaven/internal/pkg/logx"
	"pawhaven/internal/pkg/req"
	"pawhaven/internal/pkg/resp"
)

// HandleListContacts returns the caller's emergency contacts.
func HandleListContacts(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _, ok := requireUser(w, r)
		if !ok {
			return
		}

		contacts, err := deps.Contacts.ListByUser(r.Context(), userID)
		if err != nil {
			logx.Error(err, "failed to list contacts", "user_id", userID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, contacts)
	}
}

type ContactInput struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

// HandleCreateContact adds an emergency contact to the caller's account.
func HandleCreateContact(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _, ok := requireUser(w, r)
		if !ok {
			return
		}

		var input ContactInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		input.Name = strings.TrimSpace(input.Name)
		input.Phone = strings.TrimSpace(input.Phone)
		if input.Name == "" || input.Phone == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		created, err := deps.Contacts.Create(r.Context(), &contact.Contact{
			UserID:       userID,
			Name:         input.Name,
			Phone:        input.Phone,
			Relationship: input.Relationship,
		})
		if err != nil {
			logx.Error(err, "failed to create contact", "user_id", userID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, created)
	}
}

// HandleUpdateContact replaces one of the caller's own contacts.
func HandleUpdateContact(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _, ok := requireUser(w, r)
		if !ok {
			return
		}

		id, ok := pathID(chi.URLParam(r, "id"))
		if !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		var input ContactInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		input.Name = strings.TrimSpace(input.Name)
		input.Phone = strings.TrimSpace(input.Phone)
		if input.Name == "" || input.Phone == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		updated, err := deps.Contacts.Update(r.Context(), &contact.Contact{
			ID:           id,
			UserID:       userID,
			Name:         input.Name,
			Phone:        input.Phone,
			Relationship: input.Relationship,
		})
		if err != nil {
			if db.IsNotFound(err) {
				resp.RespondError(w, r, errs.NewError(errs.ErrContactNotFound))
				return
			}
			logx.Error(err, "failed to update contact", "contact_id", id)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, updated)
	}
}

// HandleDeleteContact removes one of the caller's own contacts.
func HandleDeleteContact(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _, ok := requireUser(w, r)
		if !ok {
			return
		}

		id, ok := pathID(chi.URLParam(r, "id"))
		if !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		if err := deps.Contacts.Delete(r.Context(), id, userID); err != nil {
			if db.IsNotFound(err) {
				resp.RespondError(w, r, errs.NewError(errs.ErrContactNotFound))
				return
			}
			logx.Error(err, "failed to delete contact", "contact_id", id)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"deleted": id})
	}
}
