package controllers

import (
	"net/http"

	"github.com/alnoorestates/saleledger-backend/api/responses"
	"github.com/alnoorestates/saleledger-backend/api/validators"
	"github.com/alnoorestates/saleledger-backend/internal/projects"
	"github.com/alnoorestates/saleledger-backend/internal/users"
	pkgerrors "github.com/alnoorestates/saleledger-backend/pkg/errors"
	"github.com/alnoorestates/saleledger-backend/pkg/logger"
)

// AdminListBuilders lists every builder account on the platform.
func AdminListBuilders(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

		list, err := svc.ListBuilders(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// AdminListProjects lists every project, optionally scoped to one builder via
// the builder_id query parameter.
func AdminListProjects(svc projects.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "project service unavailable"))
			return
		}

		builderID, err := validators.ParseQueryUUID(r, "builder_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListAll(r.Context(), builderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]projectResponse, 0, len(list))
		for i := range list {
			out = append(out, toProjectResponse(&list[i]))
		}
		responses.WriteSuccess(w, out)
	}
}
