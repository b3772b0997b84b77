package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pawhaven/internal/app/application"
	"pawhaven/internal/app/db"
	"pawhaven/internal/app/pet"
	"pawhaven/internal/pkg/errs"
	"pawhaven/internal/pkg/logx"
	"pawhaven/internal/pkg/req"
	"pawhaven/internal/pkg/resp"
)

// HandleListApplications returns the caller's own adoption applications.
func HandleListApplications(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _, ok := requireUser(w, r)
		if !ok {
			return
		}

		applications, err := deps.Applications.ListByUser(r.Context(), userID)
		if err != nil {
			logx.Error(err, "failed to list applications", "user_id", userID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, applications)
	}
}

type SubmitApplicationInput struct {
	PetID   int64  `json:"petId"`
	Message string `json:"message"`
}

// HandleSubmitApplication files an adoption application for an adoptable pet.
func HandleSubmitApplication(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _, ok := requireUser(w, r)
		if !ok {
			return
		}

		var input SubmitApplicationInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if input.PetID <= 0 {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		p, err := deps.Pets.Get(r.Context(), input.PetID)
		if err != nil {
			if db.IsNotFound(err) {
				resp.RespondError(w, r, errs.NewError(errs.ErrPetNotFound))
				return
			}
			logx.Error(err, "application: pet fetch failed", "pet_id", input.PetID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if p.Status != pet.StatusAdoptable {
			resp.RespondError(w, r, errs.NewError(errs.ErrPetNotAdoptable))
			return
		}

		created, err := deps.Applications.Create(r.Context(), userID, input.PetID, input.Message)
		if err != nil {
			if db.IsUniqueViolation(err) {
				resp.RespondError(w, r, errs.NewError(errs.ErrApplicationExists))
				return
			}
			logx.Error(err, "application: insert failed", "user_id", userID, "pet_id", input.PetID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, created)
	}
}

// HandleListPendingApplications returns the review queue, oldest first.
// Admin only.
func HandleListPendingApplications(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireAdmin(w, r); !ok {
			return
		}

		pending, err := deps.Applications.ListByStatus(r.Context(), application.StatusPending)
		if err != nil {
			logx.Error(err, "failed to list pending applications")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, pending)
	}
}

type DecideApplicationInput struct {
	Approve bool `json:"approve"`
}

// HandleDecideApplication records an admin verdict. Approval moves the pet to
// the pending state so other applicants see it is spoken for.
func HandleDecideApplication(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireAdmin(w, r); !ok {
			return
		}

		id, ok := pathID(chi.URLParam(r, "id"))
		if !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		var input DecideApplicationInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		status := application.StatusRejected
		if input.Approve {
			status = application.StatusApproved
		}

		decided, err := deps.Applications.Decide(r.Context(), id, status)
		if err != nil {
			if db.IsNotFound(err) {
				// Either the application does not exist or it has already
				// been decided. Disambiguate for a useful error.
				if _, getErr := deps.Applications.Get(r.Context(), id); getErr != nil {
					resp.RespondError(w, r, errs.NewError(errs.ErrApplicationNotFound))
					return
				}
				resp.RespondError(w, r, errs.NewError(errs.ErrApplicationClosed))
				return
			}
			logx.Error(err, "application: decision failed", "application_id", id)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if decided.Status == application.StatusApproved {
			if err := deps.Pets.SetStatus(r.Context(), decided.PetID, pet.StatusPending); err != nil {
				logx.Error(err, "application: failed to mark pet pending", "pet_id", decided.PetID)
			} else {
				deps.Catalog.Invalidate(r.Context())
			}
		}

		resp.RespondSuccess(w, r, decided)
	}
}
