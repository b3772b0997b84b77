package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"pawhaven/internal/app/db"
	"pawhaven/internal/app/medical"
	"pawhaven/internal/pkg/errs"
	"pawhaven/internal/pkg/logx"
	"pawhaven/internal/pkg/req"
	"pawhaven/internal/pkg/resp"
)

// HandleListMedicalRecords returns a pet's veterinary history.
func HandleListMedicalRecords(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := pathID(chi.URLParam(r, "id"))
		if !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		if _, err := deps.Pets.Get(r.Context(), petID); err != nil {
			if db.IsNotFound(err) {
				resp.RespondError(w, r, errs.NewError(errs.ErrPetNotFound))
				return
			}
			logx.Error(err, "medical: pet fetch failed", "pet_id", petID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		records, err := deps.Medical.ListByPet(r.Context(), petID)
		if err != nil {
			logx.Error(err, "failed to list medical records", "pet_id", petID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, records)
	}
}

type MedicalRecordInput struct {
	RecordType  string `json:"recordType"`
	Description string `json:"description"`
	VetName     string `json:"vetName"`
	RecordDate  string `json:"recordDate"`
}

// HandleCreateMedicalRecord adds an entry to a pet's history. Admin only.
// RecordDate uses the YYYY-MM-DD form.
func HandleCreateMedicalRecord(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireAdmin(w, r); !ok {
			return
		}

		petID, ok := pathID(chi.URLParam(r, "id"))
		if !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		var input MedicalRecordInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		input.RecordType = strings.ToLower(strings.TrimSpace(input.RecordType))
		if input.RecordType == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		recordDate, err := time.Parse("2006-01-02", input.RecordDate)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		if _, err := deps.Pets.Get(r.Context(), petID); err != nil {
			if db.IsNotFound(err) {
				resp.RespondError(w, r, errs.NewError(errs.ErrPetNotFound))
				return
			}
			logx.Error(err, "medical: pet fetch failed", "pet_id", petID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		created, err := deps.Medical.Create(r.Context(), &medical.Record{
			PetID:       petID,
			RecordType:  input.RecordType,
			Description: input.Description,
			VetName:     input.VetName,
			RecordDate:  recordDate,
		})
		if err != nil {
			logx.Error(err, "failed to create medical record", "pet_id", petID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, created)
	}
}

// HandleDeleteMedicalRecord removes an entry. Admin only.
func HandleDeleteMedicalRecord(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireAdmin(w, r); !ok {
			return
		}

		id, ok := pathID(chi.URLParam(r, "id"))
		if !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		if err := deps.Medical.Delete(r.Context(), id); err != nil {
			if db.IsNotFound(err) {
				resp.RespondError(w, r, errs.NewError(errs.ErrMedicalRecordNotFound))
				return
			}
			logx.Error(err, "failed to delete medical record", "record_id", id)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"deleted": id})
	}
}
