package controllers

import (
	"net/http"

	"github.com/alnoorestates/saleledger-backend/api/responses"
	"github.com/alnoorestates/saleledger-backend/internal/dashboard"
	pkgerrors "github.com/alnoorestates/saleledger-backend/pkg/errors"
	"github.com/alnoorestates/saleledger-backend/pkg/logger"
)

// BuilderDashboard returns the calling builder's aggregate counters, all read
// inside one transaction so the numbers line up with each other.
func BuilderDashboard(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		builderID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot, err := svc.Metrics(r.Context(), builderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, snapshot)
	}
}

// BuilderDashboardProjects returns the per-project breakdown of the same
// counters.
func BuilderDashboardProjects(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		builderID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		breakdown, err := svc.PerProject(r.Context(), builderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, breakdown)
	}
}
