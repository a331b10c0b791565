package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alnoorestates/saleledger-backend/api/responses"
	"github.com/alnoorestates/saleledger-backend/api/validators"
	"github.com/alnoorestates/saleledger-backend/internal/projects"
	"github.com/alnoorestates/saleledger-backend/pkg/db/models"
	pkgerrors "github.com/alnoorestates/saleledger-backend/pkg/errors"
	"github.com/alnoorestates/saleledger-backend/pkg/logger"
)

type createProjectRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=160"`
	Location string `json:"location" validate:"required,max=160"`
}

type createUnitRequest struct {
	Code  string          `json:"code" validate:"required,max=40"`
	Floor int             `json:"floor"`
	Area  float64         `json:"area" validate:"gt=0"`
	Price decimal.Decimal `json:"price"`
}

type projectResponse struct {
	ID        uuid.UUID `json:"id"`
	BuilderID uuid.UUID `json:"builder_id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	NumUnits  int       `json:"num_units"`
	CreatedAt time.Time `json:"created_at"`
}

type unitResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProjectID uuid.UUID       `json:"project_id"`
	Code      string          `json:"code"`
	Floor     int             `json:"floor"`
	Area      float64         `json:"area"`
	Price     decimal.Decimal `json:"price"`
	Booked    bool            `json:"booked"`
	CreatedAt time.Time       `json:"created_at"`
}

func toProjectResponse(p *models.Project) projectResponse {
	return projectResponse{
		ID:        p.ID,
		BuilderID: p.BuilderID,
		Name:      p.Name,
		Location:  p.Location,
		NumUnits:  p.NumUnits,
		CreatedAt: p.CreatedAt,
	}
}

func toUnitResponse(u *models.Unit) unitResponse {
	return unitResponse{
		ID:        u.ID,
		ProjectID: u.ProjectID,
		Code:      u.Code,
		Floor:     u.Floor,
		Area:      u.Area,
		Price:     u.Price,
		Booked:    u.Booked,
		CreatedAt: u.CreatedAt,
	}
}

// BuilderCreateProject registers a new development under the calling builder.
func BuilderCreateProject(svc projects.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "project service unavailable"))
			return
		}

		builderID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createProjectRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		project, err := svc.Create(r.Context(), builderID, projects.CreateProjectInput{
			Name:     body.Name,
			Location: body.Location,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, toProjectResponse(project))
	}
}

// BuilderListProjects lists the calling builder's projects.
func BuilderListProjects(svc projects.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "project service unavailable"))
			return
		}

		builderID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListByBuilder(r.Context(), builderID)
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

// BuilderAddUnit adds a unit to one of the builder's projects. The project's
// unit counter moves in the same transaction as the insert.
func BuilderAddUnit(svc projects.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "project service unavailable"))
			return
		}

		builderID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		projectID, err := validators.ParsePathUUID(chi.URLParam(r, "projectID"), "projectID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createUnitRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		unit, err := svc.AddUnit(r.Context(), builderID, projectID, projects.CreateUnitInput{
			Code:  body.Code,
			Floor: body.Floor,
			Area:  body.Area,
			Price: body.Price,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, toUnitResponse(unit))
	}
}

// BuilderListUnits lists the units of one of the builder's projects.
func BuilderListUnits(svc projects.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "project service unavailable"))
			return
		}

		builderID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		projectID, err := validators.ParsePathUUID(chi.URLParam(r, "projectID"), "projectID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListUnits(r.Context(), builderID, projectID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]unitResponse, 0, len(list))
		for i := range list {
			out = append(out, toUnitResponse(&list[i]))
		}
		responses.WriteSuccess(w, out)
	}
}
