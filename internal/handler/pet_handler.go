/*
Package handler provides HTTP handler functions for browsing and managing
pet listings.
*/
package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"pawhaven/internal/app/db"
	"pawhaven/internal/app/pet"
	"pawhaven/internal/pkg/errs"
	"pawhaven/internal/pkg/logx"
	"pawhaven/internal/pkg/req"
	"pawhaven/internal/pkg/resp"
)

var petStatuses = map[string]struct{}{
	pet.StatusAdoptable: {},
	pet.StatusPending:   {},
	pet.StatusAdopted:   {},
}

// HandleListPets returns the catalog, optionally filtered by species and
// status. Results are served from the Redis cache when available.
func HandleListPets(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		filter := pet.Filter{
			Species: strings.ToLower(strings.TrimSpace(query.Get("species"))),
			Status:  strings.ToLower(strings.TrimSpace(query.Get("status"))),
		}

		if filter.Status != "" {
			if _, ok := petStatuses[filter.Status]; !ok {
				resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
				return
			}
		}

		if pets, ok := deps.Catalog.GetList(r.Context(), filter); ok {
			resp.RespondSuccess(w, r, pets)
			return
		}

		pets, err := deps.Pets.List(r.Context(), filter)
		if err != nil {
			logx.Error(err, "failed to list pets")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		deps.Catalog.SetList(r.Context(), filter, pets)
		resp.RespondSuccess(w, r, pets)
	}
}

// HandleGetPet returns one listing.
func HandleGetPet(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(chi.URLParam(r, "id"))
		if !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		p, err := deps.Pets.Get(r.Context(), id)
		if err != nil {
			if db.IsNotFound(err) {
				resp.RespondError(w, r, errs.NewError(errs.ErrPetNotFound))
				return
			}
			logx.Error(err, "failed to fetch pet", "pet_id", id)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, p)
	}
}

type PetInput struct {
	Name        string `json:"name"`
	Species     string `json:"species"`
	Breed       string `json:"breed"`
	AgeMonths   int    `json:"ageMonths"`
	Gender      string `json:"gender"`
	Description string `json:"description"`
	PhotoKey    string `json:"photoKey"`
	Status      string `json:"status"`
}

func (in *PetInput) validate() *errs.CustomError {
	in.Name = strings.TrimSpace(in.Name)
	in.Species = strings.ToLower(strings.TrimSpace(in.Species))

	if in.Name == "" || in.Species == "" {
		return errs.NewError(errs.ErrInvalidParams)
	}
	if in.AgeMonths < 0 {
		return errs.NewError(errs.ErrInvalidParams)
	}
	if in.Status != "" {
		if _, ok := petStatuses[in.Status]; !ok {
			return errs.NewError(errs.ErrInvalidParams)
		}
	}
	return nil
}

// HandleCreatePet adds a listing. Admin only.
func HandleCreatePet(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireAdmin(w, r); !ok {
			return
		}

		var input PetInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		if customErr := input.validate(); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		created, err := deps.Pets.Create(r.Context(), &pet.Pet{
			Name:        input.Name,
			Species:     input.Species,
			Breed:       input.Breed,
			AgeMonths:   input.AgeMonths,
			Gender:      input.Gender,
			Description: input.Description,
			PhotoKey:    input.PhotoKey,
		})
		if err != nil {
			logx.Error(err, "failed to create pet listing")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		deps.Catalog.Invalidate(r.Context())
		resp.RespondSuccess(w, r, created)
	}
}

// HandleUpdatePet replaces the mutable fields of a listing. Admin only.
func HandleUpdatePet(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireAdmin(w, r); !ok {
			return
		}

		id, ok := pathID(chi.URLParam(r, "id"))
		if !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		var input PetInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		if customErr := input.validate(); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		if input.Status == "" {
			input.Status = pet.StatusAdoptable
		}

		updated, err := deps.Pets.Update(r.Context(), &pet.Pet{
			ID:          id,
			Name:        input.Name,
			Species:     input.Species,
			Breed:       input.Breed,
			AgeMonths:   input.AgeMonths,
			Gender:      input.Gender,
			Description: input.Description,
			PhotoKey:    input.PhotoKey,
			Status:      input.Status,
		})
		if err != nil {
			if db.IsNotFound(err) {
				resp.RespondError(w, r, errs.NewError(errs.ErrPetNotFound))
				return
			}
			logx.Error(err, "failed to update pet listing", "pet_id", id)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		deps.Catalog.Invalidate(r.Context())
		resp.RespondSuccess(w, r, updated)
	}
}

// HandleDeletePet removes a listing. Admin only.
func HandleDeletePet(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireAdmin(w, r); !ok {
			return
		}

		id, ok := pathID(chi.URLParam(r, "id"))
		if !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		if err := deps.Pets.Delete(r.Context(), id); err != nil {
			if db.IsNotFound(err) {
				resp.RespondError(w, r, errs.NewError(errs.ErrPetNotFound))
				return
			}
			logx.Error(err, "failed to delete pet listing", "pet_id", id)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		deps.Catalog.Invalidate(r.Context())
		resp.RespondSuccess(w, r, map[string]any{"deleted": id})
	}
}
