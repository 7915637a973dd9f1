package recordcontrol

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jwalitptl/nutri-api/internal/gateway"
	"github.com/jwalitptl/nutri-api/internal/model"
	"github.com/jwalitptl/nutri-api/internal/repository"
	"github.com/jwalitptl/nutri-api/pkg/httputil"
)

type RecordControlServicer interface {
	GetByID(ctx context.Context, id uuid.UUID) httputil.Response[model.MedicalRecordsControl]
	GetByPatient(ctx context.Context, patientID uuid.UUID) httputil.Response[model.MedicalRecordsControl]
	Create(ctx context.Context, req *model.CreateRecordsControlRequest) httputil.Response[model.MedicalRecordsControl]
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateRecordsControlRequest) httputil.Response[model.MedicalRecordsControl]
	UpsertByPatient(ctx context.Context, patientID uuid.UUID, req *model.UpdateRecordsControlRequest) httputil.Response[model.MedicalRecordsControl]
}

var latest = repository.Desc(model.ColumnCreatedAt)

type Service struct {
	gw *gateway.Gateway[model.MedicalRecordsControl]
}

func NewService(table repository.Table[model.MedicalRecordsControl], deps gateway.Deps) *Service {
	return &Service{
		gw: gateway.New(table, gateway.Options{
			Resource:     "Medical records control",
			ParentColumn: model.ColumnPatientID,
			OwnerColumn:  model.ColumnNutritionistID,
			Order:        []repository.Order{latest},
		}, deps),
	}
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) httputil.Response[model.MedicalRecordsControl] {
	return s.gw.GetByID(ctx, id)
}

func (s *Service) GetByPatient(ctx context.Context, patientID uuid.UUID) httputil.Response[model.MedicalRecordsControl] {
	if patientID == uuid.Nil {
		return httputil.BadRequest[model.MedicalRecordsControl]("Patient ID is required")
	}
	return s.gw.FindOne(ctx, repository.NewQuery().Eq(model.ColumnPatientID, patientID).OrderBy(latest))
}

func (s *Service) Create(ctx context.Context, req *model.CreateRecordsControlRequest) httputil.Response[model.MedicalRecordsControl] {
	if req.PatientID == uuid.Nil {
		return httputil.BadRequest[model.MedicalRecordsControl]("Patient ID is required")
	}
	return s.gw.Create(ctx, trimmed(repository.ValuesOf(req)))
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateRecordsControlRequest) httputil.Response[model.MedicalRecordsControl] {
	return s.gw.Update(ctx, id, trimmed(repository.ValuesOf(req)))
}

func (s *Service) UpsertByPatient(ctx context.Context, patientID uuid.UUID, req *model.UpdateRecordsControlRequest) httputil.Response[model.MedicalRecordsControl] {
	values := trimmed(repository.ValuesOf(req))
	return s.gw.Upsert(ctx, model.ColumnPatientID, patientID, latest, values, values)
}

// trimmed strips surrounding whitespace from text columns, storing blank
// text as null.
func trimmed(values repository.Values) repository.Values {
	for _, col := range []string{"orientations", "hcn", "meal_plan_type"} {
		v, ok := values[col].(string)
		if !ok {
			continue
		}
		if v = strings.TrimSpace(v); v == "" {
			values[col] = nil
		} else {
			values[col] = v
		}
	}
	return values
}
