package anthropometry

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/nutri-api/internal/config"
	"github.com/jwalitptl/nutri-api/internal/gateway"
	"github.com/jwalitptl/nutri-api/internal/model"
	"github.com/jwalitptl/nutri-api/internal/repository"
	apperrors "github.com/jwalitptl/nutri-api/pkg/errors"
	"github.com/jwalitptl/nutri-api/pkg/httputil"
	"github.com/jwalitptl/nutri-api/pkg/validator"
)

type AnthropometryServicer interface {
	GetByID(ctx context.Context, id uuid.UUID) httputil.Response[model.Anthropometry]
	GetByPatient(ctx context.Context, patientID uuid.UUID) httputil.Response[model.Anthropometry]
	History(ctx context.Context, patientID uuid.UUID) httputil.Response[[]model.Anthropometry]
	Create(ctx context.Context, req *model.CreateAnthropometryRequest) httputil.Response[model.Anthropometry]
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateAnthropometryRequest) httputil.Response[model.Anthropometry]
	UpsertByPatient(ctx context.Context, patientID uuid.UUID, req *model.CreateAnthropometryRequest) httputil.Response[model.Anthropometry]
}

var latest = repository.Desc("measured_at")

type Service struct {
	gw      *gateway.Gateway[model.Anthropometry]
	bmiMode string
	now     func() time.Time
}

// NewService builds the anthropometry service. bmiMode is
// config.BMIApplication to compute BMI here, or config.BMIDatabase to
// leave it to the schema trigger.
func NewService(table repository.Table[model.Anthropometry], deps gateway.Deps, bmiMode string) *Service {
	return &Service{
		gw: gateway.New(table, gateway.Options{
			Resource:     "Anthropometry",
			ParentColumn: model.ColumnPatientID,
			OwnerColumn:  model.ColumnNutritionistID,
			Order:        []repository.Order{latest},
		}, deps),
		bmiMode: bmiMode,
		now:     time.Now,
	}
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) httputil.Response[model.Anthropometry] {
	return s.gw.GetByID(ctx, id)
}

// GetByPatient returns the latest measurement, or no data when the patient
// has none.
func (s *Service) GetByPatient(ctx context.Context, patientID uuid.UUID) httputil.Response[model.Anthropometry] {
	if patientID == uuid.Nil {
		return httputil.BadRequest[model.Anthropometry]("Patient ID is required")
	}
	return s.gw.FindOne(ctx, repository.NewQuery().Eq(model.ColumnPatientID, patientID).OrderBy(latest))
}

func (s *Service) History(ctx context.Context, patientID uuid.UUID) httputil.Response[[]model.Anthropometry] {
	return s.gw.GetByParent(ctx, model.ColumnPatientID, patientID, latest)
}

func (s *Service) Create(ctx context.Context, req *model.CreateAnthropometryRequest) httputil.Response[model.Anthropometry] {
	if req.PatientID == uuid.Nil {
		return httputil.BadRequest[model.Anthropometry]("Patient ID is required")
	}
	values, err := s.createValues(req)
	if err != nil {
		return httputil.Fail[model.Anthropometry](err)
	}
	values[model.ColumnPatientID] = req.PatientID
	return s.gw.Create(ctx, values)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateAnthropometryRequest) httputil.Response[model.Anthropometry] {
	values, err := updateValues(req)
	if err != nil {
		return httputil.Fail[model.Anthropometry](err)
	}

	if s.bmiMode == config.BMIApplication && (req.Weight.Present() || req.Height.Present()) {
		current := s.gw.GetByID(ctx, id)
		if !current.OK() {
			return current
		}
		weight, height := current.Value().Weight, current.Value().Height
		if req.Weight.Present() {
			weight = req.Weight.Value
		}
		if req.Height.Present() {
			height = req.Height.Value
		}
		values["bmi"] = model.ComputeBMI(weight, height)
	}

	return s.gw.Update(ctx, id, values)
}

// UpsertByPatient updates the patient's latest measurement or records the
// first one.
func (s *Service) UpsertByPatient(ctx context.Context, patientID uuid.UUID, req *model.CreateAnthropometryRequest) httputil.Response[model.Anthropometry] {
	values, err := s.createValues(req)
	if err != nil {
		return httputil.Fail[model.Anthropometry](err)
	}
	return s.gw.Upsert(ctx, model.ColumnPatientID, patientID, latest, values, values)
}

func (s *Service) createValues(req *model.CreateAnthropometryRequest) (repository.Values, error) {
	if err := validator.Positive("Weight", req.Weight); err != nil {
		return nil, err
	}
	if err := validator.Positive("Height", req.Height); err != nil {
		return nil, err
	}

	measuredAt := s.now().UTC()
	if req.MeasuredAt != nil {
		t, err := validator.ParseTimestamp("measured_at", *req.MeasuredAt)
		if err != nil {
			return nil, err
		}
		measuredAt = t
	}

	values := repository.Values{
		"weight":      req.Weight,
		"height":      req.Height,
		"measured_at": measuredAt,
	}
	if s.bmiMode == config.BMIApplication {
		values["bmi"] = model.ComputeBMI(req.Weight, req.Height)
	}
	return values, nil
}

func updateValues(req *model.UpdateAnthropometryRequest) (repository.Values, error) {
	values := repository.ValuesOf(req)
	if req.Weight.Present() {
		if err := validator.Positive("Weight", req.Weight.Value); err != nil {
			return nil, err
		}
	}
	if req.Height.Present() {
		if err := validator.Positive("Height", req.Height.Value); err != nil {
			return nil, err
		}
	}
	if req.MeasuredAt.Present() {
		v, ok := req.MeasuredAt.Get()
		if !ok {
			return nil, apperrors.BadRequest("measured_at is required")
		}
		t, err := validator.ParseTimestamp("measured_at", v)
		if err != nil {
			return nil, err
		}
		values["measured_at"] = t
	}
	return values, nil
}
