package consultation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/nutri-api/internal/gateway"
	"github.com/jwalitptl/nutri-api/internal/model"
	"github.com/jwalitptl/nutri-api/internal/repository"
	apperrors "github.com/jwalitptl/nutri-api/pkg/errors"
	"github.com/jwalitptl/nutri-api/pkg/httputil"
	"github.com/jwalitptl/nutri-api/pkg/validator"
)

// DefaultUpcomingDays is the window used when the caller gives none
const DefaultUpcomingDays = 7

type ConsultationServicer interface {
	GetAll(ctx context.Context) httputil.Response[[]model.Consultation]
	GetByID(ctx context.Context, id uuid.UUID) httputil.Response[model.Consultation]
	GetByPatient(ctx context.Context, patientID uuid.UUID) httputil.Response[[]model.Consultation]
	Upcoming(ctx context.Context, days int) httputil.Response[[]model.Consultation]
	Create(ctx context.Context, req *model.CreateConsultationRequest) httputil.Response[model.Consultation]
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateConsultationRequest) httputil.Response[model.Consultation]
	Delete(ctx context.Context, id uuid.UUID) httputil.Response[model.Consultation]
}

var newestFirst = repository.Desc("consultation_date")

type Service struct {
	gw        *gateway.Gateway[model.Consultation]
	validator validator.Validator
	now       func() time.Time
}

func NewService(table repository.Table[model.Consultation], deps gateway.Deps, v validator.Validator) *Service {
	return &Service{
		gw: gateway.New(table, gateway.Options{
			Resource:     "Consultation",
			ParentColumn: model.ColumnPatientID,
			OwnerColumn:  model.ColumnNutritionistID,
			Order:        []repository.Order{newestFirst},
		}, deps),
		validator: v,
		now:       time.Now,
	}
}

func (s *Service) GetAll(ctx context.Context) httputil.Response[[]model.Consultation] {
	return s.gw.GetAll(ctx)
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) httputil.Response[model.Consultation] {
	return s.gw.GetByID(ctx, id)
}

func (s *Service) GetByPatient(ctx context.Context, patientID uuid.UUID) httputil.Response[[]model.Consultation] {
	return s.gw.GetByParent(ctx, model.ColumnPatientID, patientID, newestFirst)
}

// Upcoming lists consultations between now and the given number of days
// ahead, soonest first.
func (s *Service) Upcoming(ctx context.Context, days int) httputil.Response[[]model.Consultation] {
	if err := validator.Positive("days", float64(days)); err != nil {
		return httputil.Fail[[]model.Consultation](err)
	}
	from := s.now().UTC()
	to := from.AddDate(0, 0, days)
	q := repository.NewQuery().
		Gte("consultation_date", from).
		Lte("consultation_date", to).
		OrderBy(repository.Asc("consultation_date"))
	return s.gw.List(ctx, q)
}

func (s *Service) Create(ctx context.Context, req *model.CreateConsultationRequest) httputil.Response[model.Consultation] {
	if req.PatientID == uuid.Nil {
		return httputil.BadRequest[model.Consultation]("Patient ID is required")
	}
	if err := s.validator.Validate(req); err != nil {
		return httputil.Fail[model.Consultation](err)
	}

	values := repository.ValuesOf(req)
	date, err := validator.ParseTimestamp("consultation_date", req.ConsultationDate)
	if err != nil {
		return httputil.Fail[model.Consultation](err)
	}
	values["consultation_date"] = date
	if req.NextAppointment != nil {
		next, err := validator.ParseTimestamp("next_appointment", *req.NextAppointment)
		if err != nil {
			return httputil.Fail[model.Consultation](err)
		}
		values["next_appointment"] = next
	}
	return s.gw.Create(ctx, values)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateConsultationRequest) httputil.Response[model.Consultation] {
	values, err := updateValues(req)
	if err != nil {
		return httputil.Fail[model.Consultation](err)
	}
	return s.gw.Update(ctx, id, values)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) httputil.Response[model.Consultation] {
	return s.gw.Delete(ctx, id)
}

func updateValues(req *model.UpdateConsultationRequest) (repository.Values, error) {
	values := repository.ValuesOf(req)

	if req.ConsultationDate.Present() {
		v, ok := req.ConsultationDate.Get()
		if !ok {
			return nil, apperrors.BadRequest("Consultation date is required")
		}
		date, err := validator.ParseTimestamp("consultation_date", v)
		if err != nil {
			return nil, err
		}
		values["consultation_date"] = date
	}
	if req.NextAppointment.Present() {
		values["next_appointment"] = nil
		if v, ok := req.NextAppointment.Get(); ok {
			next, err := validator.ParseTimestamp("next_appointment", v)
			if err != nil {
				return nil, err
			}
			values["next_appointment"] = next
		}
	}
	if req.Type.Present() {
		err := validator.OneOf("type", req.Type.Value,
			model.ConsultationInitial, model.ConsultationFollowUp, model.ConsultationEmergency)
		if err != nil {
			return nil, err
		}
	}
	for _, m := range []struct {
		field string
		value model.Optional[float64]
	}{
		{"weight", req.Weight},
		{"height_cm", req.HeightCm},
		{"muscle_mass", req.MuscleMass},
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
	return values, nil
}
