package handler

import (
	"net/http"
	"strconv"

	"pawhaven/internal/app/application"
	"pawhaven/internal/app/appointment"
	"pawhaven/internal/app/cache"
	"pawhaven/internal/app/chat"
	"pawhaven/internal/app/contact"
	"pawhaven/internal/app/medical"
	"pawhaven/internal/app/pet"
	"pawhaven/internal/app/resource"
	"pawhaven/internal/app/storage"
	"pawhaven/internal/app/user"
	"pawhaven/internal/configs"
	"pawhaven/internal/pkg/auth/jwt"
	"pawhaven/internal/pkg/errs"
	"pawhaven/internal/pkg/pow"
	"pawhaven/internal/pkg/resp"
)

// AppDeps bundles everything the HTTP layer needs. One value is built in main
// and threaded through every handler constructor.
type AppDeps struct {
	Hub     *chat.Hub
	Config  *configs.AppConfig
	Photos  storage.PhotoStore
	Catalog *cache.Catalog
	Pow     *pow.Manager

	Users        *user.Repository
	Pets         *pet.Repository
	Resources    *resource.Repository
	Appointments *appointment.Repository
	Applications *application.Repository
	Medical      *medical.Repository
	Contacts     *contact.Repository
}

// requireUser returns the authenticated user's id, or writes an unauthorized
// response and returns false.
func requireUser(w http.ResponseWriter, r *http.Request) (int64, *jwt.Payload, bool) {
	payload := jwt.GetPayloadFromContext(r)
	if payload == nil {
		resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
		return 0, nil, false
	}

	id, err := strconv.ParseInt(payload.ID, 10, 64)
	if err != nil {
		resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
		return 0, nil, false
	}

	return id, payload, true
}

// requireAdmin is requireUser plus an admin check.
func requireAdmin(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, payload, ok := requireUser(w, r)
	if !ok {
		return 0, false
	}

	if !payload.IsAdmin {
		resp.RespondError(w, r, errs.NewError(errs.ErrForbidden))
		return 0, false
	}

	return id, true
}

// pathID parses a numeric {id} URL parameter.
func pathID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
