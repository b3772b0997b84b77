package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pawhaven/internal/app/appointment"
	"pawhaven/internal/app/db"
	"pawhaven/internal/app/pet"
	"pawhaven/internal/pkg/errs"
	"pawhaven/internal/pkg/logx"
	"pawhaven/internal/pkg/randx"
	"pawhaven/internal/pkg/req"
	"pawhaven/internal/pkg/resp"
)

// HandleListAppointments returns the caller's own bookings.
func HandleListAppointments(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _, ok := requireUser(w, r)
		if !ok {
			return
		}

		appointments, err := deps.Appointments.ListByUser(r.Context(), userID)
		if err != nil {
			logx.Error(err, "failed to list appointments", "user_id", userID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, appointments)
	}
}

// HandleListAllAppointments returns every booking for the shelter's day
// planning. Admin only.
func HandleListAllAppointments(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireAdmin(w, r); !ok {
			return
		}

		appointments, err := deps.Appointments.ListAll(r.Context())
		if err != nil {
			logx.Error(err, "failed to list all appointments")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, appointments)
	}
}

type BookAppointmentInput struct {
	PetID       int64     `json:"petId"`
	ScheduledAt time.Time `json:"scheduledAt"`
}

// HandleBookAppointment books a meet-and-greet visit for a future time and
// returns the booking with its confirmation code.
func HandleBookAppointment(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _, ok := requireUser(w, r)
		if !ok {
			return
		}

		var input BookAppointmentInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if input.PetID <= 0 {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		if !input.ScheduledAt.After(time.Now()) {
			resp.RespondError(w, r, errs.NewError(errs.ErrAppointmentInPast))
			return
		}

		p, err := deps.Pets.Get(r.Context(), input.PetID)
		if err != nil {
			if db.IsNotFound(err) {
				resp.RespondError(w, r, errs.NewError(errs.ErrPetNotFound))
				return
			}
			logx.Error(err, "booking: pet fetch failed", "pet_id", input.PetID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if p.Status == pet.StatusAdopted {
			resp.RespondError(w, r, errs.NewError(errs.ErrPetNotAdoptable))
			return
		}

		code, err := randx.ConfirmationCode()
		if err != nil {
			logx.Error(err, "booking: confirmation code generation failed")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		booking, err := deps.Appointments.Create(r.Context(), userID, input.PetID, input.ScheduledAt, code)
		if err != nil {
			logx.Error(err, "booking: insert failed", "user_id", userID, "pet_id", input.PetID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, booking)
	}
}

// HandleCancelAppointment cancels one of the caller's own bookings. Admins
// may cancel anyone's.
func HandleCancelAppointment(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, payload, ok := requireUser(w, r)
		if !ok {
			return
		}

		id, ok := pathID(chi.URLParam(r, "id"))
		if !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		booking, err := deps.Appointments.Get(r.Context(), id)
		if err != nil {
			if db.IsNotFound(err) {
				resp.RespondError(w, r, errs.NewError(errs.ErrAppointmentNotFound))
				return
			}
			logx.Error(err, "cancel: appointment fetch failed", "appointment_id", id)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if booking.UserID != userID && !payload.IsAdmin {
			resp.RespondError(w, r, errs.NewError(errs.ErrForbidden))
			return
		}

		if err := deps.Appointments.SetStatus(r.Context(), id, appointment.StatusCancelled); err != nil {
			if db.IsNotFound(err) {
				resp.RespondError(w, r, errs.NewError(errs.ErrAppointmentNotFound))
				return
			}
			logx.Error(err, "cancel: status update failed", "appointment_id", id)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		booking.Status = appointment.StatusCancelled
		resp.RespondSuccess(w, r, booking)
	}
}
