package progress

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/jwalitptl/nutri-api/internal/gateway"
	"github.com/jwalitptl/nutri-api/internal/model"
	"github.com/jwalitptl/nutri-api/internal/repository"
	apperrors "github.com/jwalitptl/nutri-api/pkg/errors"
	"github.com/jwalitptl/nutri-api/pkg/httputil"
	"github.com/jwalitptl/nutri-api/pkg/validator"
)

type ProgressServicer interface {
	GetAll(ctx context.Context) httputil.Response[[]model.ProgressTracking]
	GetByID(ctx context.Context, id uuid.UUID) httputil.Response[model.ProgressTracking]
	GetByPatient(ctx context.Context, patientID uuid.UUID) httputil.Response[[]model.ProgressTracking]
	GetLatestByPatient(ctx context.Context, patientID uuid.UUID) httputil.Response[model.ProgressTracking]
	GetByDateRange(ctx context.Context, patientID uuid.UUID, from, to string) httputil.Response[[]model.ProgressTracking]
	Create(ctx context.Context, req *model.CreateProgressRequest) httputil.Response[model.ProgressTracking]
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateProgressRequest) httputil.Response[model.ProgressTracking]
	Delete(ctx context.Context, id uuid.UUID) httputil.Response[model.ProgressTracking]
}

var newestFirst = repository.Desc("tracking_date")

type Service struct {
	gw        *gateway.Gateway[model.ProgressTracking]
	validator validator.Validator
}

func NewService(table repository.Table[model.ProgressTracking], deps gateway.Deps, v validator.Validator) *Service {
	return &Service{
		gw: gateway.New(table, gateway.Options{
			Resource:     "Progress tracking",
			ParentColumn: model.ColumnPatientID,
			OwnerColumn:  model.ColumnNutritionistID,
			Order:        []repository.Order{newestFirst, repository.Desc(model.ColumnCreatedAt)},
		}, deps),
		validator: v,
	}
}

func (s *Service) GetAll(ctx context.Context) httputil.Response[[]model.ProgressTracking] {
	return s.gw.GetAll(ctx)
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) httputil.Response[model.ProgressTracking] {
	return s.gw.GetByID(ctx, id)
}

func (s *Service) GetByPatient(ctx context.Context, patientID uuid.UUID) httputil.Response[[]model.ProgressTracking] {
	return s.gw.GetByParent(ctx, model.ColumnPatientID, patientID)
}

func (s *Service) GetLatestByPatient(ctx context.Context, patientID uuid.UUID) httputil.Response[model.ProgressTracking] {
	if patientID == uuid.Nil {
		return httputil.BadRequest[model.ProgressTracking]("Patient ID is required")
	}
	return s.gw.FindOne(ctx, repository.NewQuery().Eq(model.ColumnPatientID, patientID))
}

// GetByDateRange lists the patient's entries with from <= tracking_date <= to,
// oldest first.
func (s *Service) GetByDateRange(ctx context.Context, patientID uuid.UUID, from, to string) httputil.Response[[]model.ProgressTracking] {
	if patientID == uuid.Nil {
		return httputil.BadRequest[[]model.ProgressTracking]("Patient ID is required")
	}
	if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
		return httputil.BadRequest[[]model.ProgressTracking]("Start date and end date are required")
	}
	start, err := validator.ParseDate("from", from)
	if err != nil {
		return httputil.Fail[[]model.ProgressTracking](err)
	}
	end, err := validator.ParseDate("to", to)
	if err != nil {
		return httputil.Fail[[]model.ProgressTracking](err)
	}
	if end.Before(start) {
		return httputil.BadRequest[[]model.ProgressTracking]("to must not be before from")
	}

	q := repository.NewQuery().
		Eq(model.ColumnPatientID, patientID).
		Gte("tracking_date", datatypes.Date(start)).
		Lte("tracking_date", datatypes.Date(end)).
		OrderBy(repository.Asc("tracking_date"))
	return s.gw.List(ctx, q)
}

func (s *Service) Create(ctx context.Context, req *model.CreateProgressRequest) httputil.Response[model.ProgressTracking] {
	if req.PatientID == uuid.Nil {
		return httputil.BadRequest[model.ProgressTracking]("Patient ID is required")
	}
	if strings.TrimSpace(req.TrackingDate) == "" {
		return httputil.BadRequest[model.ProgressTracking]("Tracking date is required")
	}
	if err := s.validator.Validate(req); err != nil {
		return httputil.Fail[model.ProgressTracking](err)
	}
	date, err := validator.ParseDate("tracking_date", req.TrackingDate)
	if err != nil {
		return httputil.Fail[model.ProgressTracking](err)
	}

	values := repository.ValuesOf(req)
	values["tracking_date"] = datatypes.Date(date)
	return s.gw.Create(ctx, values)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateProgressRequest) httputil.Response[model.ProgressTracking] {
	values, err := updateValues(req)
	if err != nil {
		return httputil.Fail[model.ProgressTracking](err)
	}
	return s.gw.Update(ctx, id, values)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) httputil.Response[model.ProgressTracking] {
	return s.gw.Delete(ctx, id)
}

func updateValues(req *model.UpdateProgressRequest) (repository.Values, error) {
	values := repository.ValuesOf(req)

	if req.TrackingDate.Present() {
		v, ok := req.TrackingDate.Get()
		if !ok {
			return nil, apperrors.BadRequest("Tracking date is required")
		}
		date, err := validator.ParseDate("tracking_date", v)
		if err != nil {
			return nil, err
		}
		values["tracking_date"] = datatypes.Date(date)
	}

	for _, m := range []struct {
		field string
		value model.Optional[float64]
	}{
		{"weight", req.Weight},
		{"muscle_mass", req.MuscleMass},
		{"waist_circumference", req.WaistCircumference},
		{"hip_circumference", req.HipCircumference},
		{"chest_circumference", req.ChestCircumference},
		{"arm_circumference", req.ArmCircumference},
		{"thigh_circumference", req.ThighCircumference},
	} {
		if v, ok := m.value.Get(); ok {
			if err := validator.Positive(m.field, v); err != nil {
				return nil, err
			}
		}
	}
	if v, ok := req.BodyFatPercentage.Get(); ok {
		if err := validator.Range("body_fat_percentage", v, 0, 100); err != nil {
			return nil, err
		}
	}
	if v, ok := req.SleepHours.Get(); ok {
		if err := validator.Range("sleep_hours", v, 0, 24); err != nil {
			return nil, err
		}
	}
	if v, ok := req.EnergyLevel.Get(); ok {
		if err := validator.Range("energy_level", float64(v), 1, 10); err != nil {
			return nil, err
		}
	}
	for field, o := range map[string]model.Optional[int]{
		"water_intake_ml":  req.WaterIntakeMl,
		"exercise_minutes": req.ExerciseMinutes,
	} {
		if v, ok := o.Get(); ok && v < 0 {
			return nil, apperrors.BadRequest(field + " must be at least 0")
		}
	}
	if v, ok := req.Mood.Get(); ok {
		err := validator.OneOf("mood", v,
			model.MoodExcellent, model.MoodGood, model.MoodNeutral, model.MoodBad, model.MoodTerrible)
		if err != nil {
			return nil, err
		}
	}
	return values, nil
}
