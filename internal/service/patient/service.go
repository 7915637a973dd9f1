package patient

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/jwalitptl/nutri-api/internal/gateway"
	"github.com/jwalitptl/nutri-api/internal/model"
	"github.com/jwalitptl/nutri-api/internal/repository"
	"github.com/jwalitptl/nutri-api/pkg/httputil"
	"github.com/jwalitptl/nutri-api/pkg/validator"
)

type PatientServicer interface {
	GetAll(ctx context.Context) httputil.Response[[]model.Patient]
	GetByID(ctx context.Context, id uuid.UUID) httputil.Response[model.Patient]
	Search(ctx context.Context, term string) httputil.Response[[]model.Patient]
	Create(ctx context.Context, req *model.CreatePatientRequest) httputil.Response[model.Patient]
	Update(ctx context.Context, id uuid.UUID, req *model.UpdatePatientRequest) httputil.Response[model.Patient]
	Delete(ctx context.Context, id uuid.UUID) httputil.Response[model.Patient]
}

type Service struct {
	gw        *gateway.Gateway[model.Patient]
	validator validator.Validator
}

// NewService builds the patient service. With softDelete, deleting a
// patient marks it inactive and inactive patients are hidden.
func NewService(table repository.Table[model.Patient], deps gateway.Deps, v validator.Validator, softDelete bool) *Service {
	return &Service{
		gw: gateway.New(table, gateway.Options{
			Resource:      "Patient",
			OwnerColumn:   model.ColumnNutritionistID,
			SoftDelete:    softDelete,
			Order:         []repository.Order{repository.Desc(model.ColumnCreatedAt)},
			SearchColumns: []string{"full_name", "email", "control_number"},
			SearchOrder:   []repository.Order{repository.Asc("full_name")},
		}, deps),
		validator: v,
	}
}

func (s *Service) GetAll(ctx context.Context) httputil.Response[[]model.Patient] {
	return s.gw.GetAll(ctx)
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) httputil.Response[model.Patient] {
	return s.gw.GetByID(ctx, id)
}

// Visible reports whether the caller can see patient id. Child resources
// use it before attaching rows to a patient.
func (s *Service) Visible(ctx context.Context, id uuid.UUID) error {
	return s.gw.Visible(ctx, id)
}

func (s *Service) Search(ctx context.Context, term string) httputil.Response[[]model.Patient] {
	return s.gw.Search(ctx, term)
}

func (s *Service) Create(ctx context.Context, req *model.CreatePatientRequest) httputil.Response[model.Patient] {
	req.Normalize()
	if err := s.validator.Validate(req); err != nil {
		return httputil.Fail[model.Patient](err)
	}
	name, err := validator.RequiredText("full_name", req.FullName)
	if err != nil {
		return httputil.Fail[model.Patient](err)
	}

	values := repository.ValuesOf(req)
	values["full_name"] = name
	if req.BirthDate != nil {
		d, err := validator.ParseDate("birth_date", *req.BirthDate)
		if err != nil {
			return httputil.Fail[model.Patient](err)
		}
		values["birth_date"] = datatypes.Date(d)
	}
	if req.Weight != nil && req.Height != nil {
		values["bmi"] = model.ComputeBMI(*req.Weight, *req.Height)
	}

	return s.gw.Create(ctx, values)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdatePatientRequest) httputil.Response[model.Patient] {
	req.Normalize()
	values, err := updateValues(req)
	if err != nil {
		return httputil.Fail[model.Patient](err)
	}

	if req.Weight.Present() || req.Height.Present() {
		current := s.gw.GetByID(ctx, id)
		if !current.OK() {
			return current
		}
		weight, height := current.Value().Weight, current.Value().Height
		if req.Weight.Present() {
			weight = optionalPtr(req.Weight)
		}
		if req.Height.Present() {
			height = optionalPtr(req.Height)
		}
		var bmi *float64
		if weight != nil && height != nil {
			bmi = model.ComputeBMI(*weight, *height)
		}
		values["bmi"] = bmi
	}

	return s.gw.Update(ctx, id, values)
}

// Delete marks the patient inactive, or removes it when soft delete is off
func (s *Service) Delete(ctx context.Context, id uuid.UUID) httputil.Response[model.Patient] {
	return s.gw.Delete(ctx, id)
}

// updateValues validates the fields present in req and returns the
// columns to write.
func updateValues(req *model.UpdatePatientRequest) (repository.Values, error) {
	values := repository.ValuesOf(req)

	if req.FullName.Present() {
		name, err := validator.RequiredText("full_name", req.FullName.Value)
		if err != nil {
			return nil, err
		}
		values["full_name"] = name
	}
	measures := []struct {
		field string
		value model.Optional[float64]
	}{
		{"height", req.Height},
		{"weight", req.Weight},
		{"muscle_mass", req.MuscleMass},
		{"waist_circumference", req.WaistCircumference},
		{"hip_circumference", req.HipCircumference},
		{"chest_circumference", req.ChestCircumference},
		{"arm_circumference", req.ArmCircumference},
		{"thigh_circumference", req.ThighCircumference},
	}
	for _, m := range measures {
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
	if v, ok := req.Age.Get(); ok {
		if err := validator.Range("age", float64(v), 0, 150); err != nil {
			return nil, err
		}
	}
	if v, ok := req.Gender.Get(); ok {
		if err := validator.OneOf("gender", v, model.GenderMale, model.GenderFemale, model.GenderOther); err != nil {
			return nil, err
		}
	}
	if req.BirthDate.Present() {
		values["birth_date"] = nil
		if v, ok := req.BirthDate.Get(); ok {
			d, err := validator.ParseDate("birth_date", v)
			if err != nil {
				return nil, err
			}
			values["birth_date"] = datatypes.Date(d)
		}
	}
	return values, nil
}

func optionalPtr[T any](o model.Optional[T]) *T {
	if v, ok := o.Get(); ok {
		return &v
	}
	return nil
}
