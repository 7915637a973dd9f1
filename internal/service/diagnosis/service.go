package diagnosis

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/nutri-api/internal/gateway"
	"github.com/jwalitptl/nutri-api/internal/model"
	"github.com/jwalitptl/nutri-api/internal/repository"
	"github.com/jwalitptl/nutri-api/pkg/httputil"
	"github.com/jwalitptl/nutri-api/pkg/validator"
)

type DiagnosisServicer interface {
	GetByID(ctx context.Context, id uuid.UUID) httputil.Response[model.Diagnosis]
	GetByPatient(ctx context.Context, patientID uuid.UUID) httputil.Response[model.Diagnosis]
	Create(ctx context.Context, req *model.CreateDiagnosisRequest) httputil.Response[model.Diagnosis]
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateDiagnosisRequest) httputil.Response[model.Diagnosis]
	UpsertByPatient(ctx context.Context, patientID uuid.UUID, req *model.UpdateDiagnosisRequest) httputil.Response[model.Diagnosis]
}

var latest = repository.Desc(model.ColumnCreatedAt)

type Service struct {
	gw        *gateway.Gateway[model.Diagnosis]
	validator validator.Validator
}

func NewService(table repository.Table[model.Diagnosis], deps gateway.Deps, v validator.Validator) *Service {
	return &Service{
		gw: gateway.New(table, gateway.Options{
			Resource:     "Diagnosis",
			ParentColumn: model.ColumnPatientID,
			OwnerColumn:  model.ColumnNutritionistID,
			Order:        []repository.Order{latest},
		}, deps),
		validator: v,
	}
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) httputil.Response[model.Diagnosis] {
	return s.gw.GetByID(ctx, id)
}

// GetByPatient returns the patient's current diagnosis, if any
func (s *Service) GetByPatient(ctx context.Context, patientID uuid.UUID) httputil.Response[model.Diagnosis] {
	if patientID == uuid.Nil {
		return httputil.BadRequest[model.Diagnosis]("Patient ID is required")
	}
	return s.gw.FindOne(ctx, repository.NewQuery().Eq(model.ColumnPatientID, patientID).OrderBy(latest))
}

func (s *Service) Create(ctx context.Context, req *model.CreateDiagnosisRequest) httputil.Response[model.Diagnosis] {
	if req.PatientID == uuid.Nil {
		return httputil.BadRequest[model.Diagnosis]("Patient ID is required")
	}
	if err := s.validator.Validate(req); err != nil {
		return httputil.Fail[model.Diagnosis](err)
	}
	return s.gw.Create(ctx, repository.ValuesOf(req))
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateDiagnosisRequest) httputil.Response[model.Diagnosis] {
	return s.gw.Update(ctx, id, repository.ValuesOf(req))
}

// UpsertByPatient changes the patient's current diagnosis, creating it on
// first use. Flags missing from req keep their stored or default value.
func (s *Service) UpsertByPatient(ctx context.Context, patientID uuid.UUID, req *model.UpdateDiagnosisRequest) httputil.Response[model.Diagnosis] {
	values := repository.ValuesOf(req)
	return s.gw.Upsert(ctx, model.ColumnPatientID, patientID, latest, values, values)
}
