package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/timeeasy/backend/api/middleware"
	"github.com/timeeasy/backend/api/responses"
	"github.com/timeeasy/backend/api/validators"
	"github.com/timeeasy/backend/internal/records"
	pkgerrors "github.com/timeeasy/backend/pkg/errors"
	"github.com/timeeasy/backend/pkg/logger"
	"github.com/timeeasy/backend/pkg/pagination"
)

// ownerRef is the open-mode body fragment naming the record owner. With the
// bearer gate enabled the owner always comes from the token and this field
// is ignored.
type ownerRef struct {
	UserID *uint `json:"user_id"`
}

// RecordAdd creates a leave/overtime record owned by the resolved caller.
func RecordAdd(svc records.Service, openMode bool, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "records service unavailable"))
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read request body"))
			return
		}

		var payload records.RecordPayload
		if err := json.Unmarshal(body, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body"))
			return
		}

		ownerID := middleware.UserIDFromContext(r.Context())
		if openMode {
			var ref ownerRef
			if err := json.Unmarshal(body, &ref); err == nil && ref.UserID != nil {
				ownerID = *ref.UserID
			}
		}
		if ownerID == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "user_id is required").
				WithDetails(map[string]any{"field": "user_id"}))
			return
		}

		result, err := svc.Create(r.Context(), ownerID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// RecordList returns the caller-scoped, filtered pagination envelope.
func RecordList(svc records.Service, openMode bool, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "records service unavailable"))
			return
		}

		query := records.ListQuery{
			Category: validators.QueryString(r, "leave_or_overtime"),
			Type:     validators.QueryString(r, "leave_or_overtime_type"),
			Page:     pagination.FromQuery(r.URL.Query()).Normalize(),
		}

		if openMode {
			query.Name = validators.QueryString(r, "name")
			if raw := validators.QueryString(r, "user_id"); raw != nil {
				parsed, err := strconv.ParseUint(*raw, 10, 32)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").
						WithDetails(map[string]any{"field": "user_id"}))
					return
				}
				ownerID := uint(parsed)
				query.OwnerID = &ownerID
			}
		} else {
			ownerID := middleware.UserIDFromContext(r.Context())
			if ownerID == 0 {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}
			query.OwnerID = &ownerID
		}

		result, err := svc.List(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// RecordUpdate applies a partial patch to the record named in the path.
func RecordUpdate(svc records.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "records service unavailable"))
			return
		}

		id, err := recordIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload records.RecordPayload
		if err := validators.DecodeJSONBodyAllowUnknown(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Update(r.Context(), id, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// RecordDelete removes the record named in the path.
func RecordDelete(svc records.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "records service unavailable"))
			return
		}

		id, err := recordIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "Record deleted successfully"})
	}
}

func recordIDFromPath(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "id")
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || parsed == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid record id").
			WithDetails(map[string]any{"field": "id", "value": raw})
	}
	return uint(parsed), nil
}
