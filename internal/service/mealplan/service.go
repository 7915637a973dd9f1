package mealplan

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/jwalitptl/nutri-api/internal/gateway"
	"github.com/jwalitptl/nutri-api/internal/model"
	"github.com/jwalitptl/nutri-api/internal/repository"
	apperrors "github.com/jwalitptl/nutri-api/pkg/errors"
	"github.com/jwalitptl/nutri-api/pkg/httputil"
	"github.com/jwalitptl/nutri-api/pkg/validator"
)

type MealPlanServicer interface {
	GetAll(ctx context.Context) httputil.Response[[]model.MealPlan]
	GetByID(ctx context.Context, id uuid.UUID) httputil.Response[model.MealPlan]
	GetByPatient(ctx context.Context, patientID uuid.UUID) httputil.Response[[]model.MealPlan]
	GetActiveByPatient(ctx context.Context, patientID uuid.UUID) httputil.Response[model.MealPlan]
	Create(ctx context.Context, req *model.CreateMealPlanRequest) httputil.Response[model.MealPlan]
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateMealPlanRequest) httputil.Response[model.MealPlan]
	Activate(ctx context.Context, id uuid.UUID) httputil.Response[model.MealPlan]
	Delete(ctx context.Context, id uuid.UUID) httputil.Response[model.MealPlan]
}

const columnIsActive = "is_active"

var newestFirst = repository.Desc(model.ColumnCreatedAt)

type Service struct {
	gw        *gateway.Gateway[model.MealPlan]
	validator validator.Validator
}

func NewService(table repository.Table[model.MealPlan], deps gateway.Deps, v validator.Validator) *Service {
	return &Service{
		gw: gateway.New(table, gateway.Options{
			Resource:     "Meal plan",
			ParentColumn: model.ColumnPatientID,
			OwnerColumn:  model.ColumnNutritionistID,
			Order:        []repository.Order{newestFirst},
		}, deps),
		validator: v,
	}
}

func (s *Service) GetAll(ctx context.Context) httputil.Response[[]model.MealPlan] {
	return s.gw.GetAll(ctx)
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) httputil.Response[model.MealPlan] {
	return s.gw.GetByID(ctx, id)
}

func (s *Service) GetByPatient(ctx context.Context, patientID uuid.UUID) httputil.Response[[]model.MealPlan] {
	return s.gw.GetByParent(ctx, model.ColumnPatientID, patientID, newestFirst)
}

// GetActiveByPatient returns the patient's active plan; having none is
// NOT_FOUND.
func (s *Service) GetActiveByPatient(ctx context.Context, patientID uuid.UUID) httputil.Response[model.MealPlan] {
	if patientID == uuid.Nil {
		return httputil.BadRequest[model.MealPlan]("Patient ID is required")
	}
	resp := s.gw.FindOne(ctx, repository.NewQuery().
		Eq(model.ColumnPatientID, patientID).
		Eq(columnIsActive, true).
		OrderBy(newestFirst))
	if resp.OK() && resp.Data == nil {
		return httputil.NotFound[model.MealPlan]("Active meal plan")
	}
	return resp
}

// Create stores a plan. An active plan first deactivates the patient's
// other plans.
func (s *Service) Create(ctx context.Context, req *model.CreateMealPlanRequest) httputil.Response[model.MealPlan] {
	if req.PatientID == uuid.Nil {
		return httputil.BadRequest[model.MealPlan]("Patient ID is required")
	}
	name, err := validator.RequiredText("name", req.Name)
	if err != nil {
		return httputil.BadRequest[model.MealPlan]("Meal plan name is required")
	}
	if err := s.validator.Validate(req); err != nil {
		return httputil.Fail[model.MealPlan](err)
	}

	values := repository.ValuesOf(req)
	values["name"] = name
	if err := setDate(values, "start_date", req.StartDate); err != nil {
		return httputil.Fail[model.MealPlan](err)
	}
	if err := setDate(values, "end_date", req.EndDate); err != nil {
		return httputil.Fail[model.MealPlan](err)
	}

	if err := s.gw.CheckParent(ctx, req.PatientID); err != nil {
		return httputil.Fail[model.MealPlan](err)
	}
	if req.IsActive {
		if resp := s.deactivateOthers(ctx, req.PatientID, uuid.Nil); !resp.OK() {
			return httputil.Forward[model.MealPlan](resp)
		}
	}
	return s.gw.Create(ctx, values)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateMealPlanRequest) httputil.Response[model.MealPlan] {
	values, err := s.updateValues(req)
	if err != nil {
		return httputil.Fail[model.MealPlan](err)
	}

	if active, ok := req.IsActive.Get(); ok && active {
		current := s.gw.GetByID(ctx, id)
		if !current.OK() {
			return current
		}
		if resp := s.deactivateOthers(ctx, current.Value().PatientID, id); !resp.OK() {
			return httputil.Forward[model.MealPlan](resp)
		}
	}
	return s.gw.Update(ctx, id, values)
}

// Activate makes id the patient's only active plan
func (s *Service) Activate(ctx context.Context, id uuid.UUID) httputil.Response[model.MealPlan] {
	return s.Update(ctx, id, &model.UpdateMealPlanRequest{IsActive: model.Some(true)})
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) httputil.Response[model.MealPlan] {
	return s.gw.Delete(ctx, id)
}

// deactivateOthers clears is_active on the patient's plans except keep.
// It runs as its own statement before the write that activates a plan.
func (s *Service) deactivateOthers(ctx context.Context, patientID, keep uuid.UUID) httputil.Response[int64] {
	q := repository.NewQuery().Eq(model.ColumnPatientID, patientID).Eq(columnIsActive, true)
	if keep != uuid.Nil {
		q = q.Neq(model.ColumnID, keep)
	}
	return s.gw.UpdateWhere(ctx, q, repository.Values{columnIsActive: false})
}

func (s *Service) updateValues(req *model.UpdateMealPlanRequest) (repository.Values, error) {
	values := repository.ValuesOf(req)

	if req.Name.Present() {
		name, err := validator.RequiredText("name", req.Name.Value)
		if err != nil {
			return nil, apperrors.BadRequest("Meal plan name is required")
		}
		values["name"] = name
	}
	if req.IsActive.Present() && req.IsActive.Null {
		return nil, apperrors.BadRequest("is_active must be true or false")
	}
	if meals, ok := req.Meals.Get(); ok {
		wrapper := struct {
			Meals model.Meals `json:"meals" validate:"dive"`
		}{meals}
		if err := s.validator.Validate(&wrapper); err != nil {
			return nil, err
		}
	} else if req.Meals.Present() {
		values["meals"] = model.Meals{}
	}
	if v, ok := req.DailyCalories.Get(); ok {
		if err := validator.Positive("daily_calories", v); err != nil {
			return nil, err
		}
	}
	for _, m := range []struct {
		field string
		value model.Optional[float64]
	}{
		{"daily_protein_g", req.DailyProteinG},
		{"daily_carbs_g", req.DailyCarbsG},
		{"daily_fat_g", req.DailyFatG},
	} {
		if v, ok := m.value.Get(); ok && v < 0 {
			return nil, apperrors.BadRequest(m.field + " must be at least 0")
		}
	}
	for col, o := range map[string]model.Optional[string]{"start_date": req.StartDate, "end_date": req.EndDate} {
		if !o.Present() {
			continue
		}
		values[col] = nil
		if v, ok := o.Get(); ok {
			if err := setDate(values, col, &v); err != nil {
				return nil, err
			}
		}
	}
	return values, nil
}

func setDate(values repository.Values, col string, raw *string) error {
	if raw == nil {
		return nil
	}
	d, err := validator.ParseDate(col, *raw)
	if err != nil {
		return err
	}
	values[col] = datatypes.Date(d)
	return nil
}
