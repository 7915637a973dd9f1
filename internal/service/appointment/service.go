package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/jwalitptl/nutri-api/internal/gateway"
	"github.com/jwalitptl/nutri-api/internal/model"
	"github.com/jwalitptl/nutri-api/internal/repository"
	"github.com/jwalitptl/nutri-api/pkg/httputil"
	"github.com/jwalitptl/nutri-api/pkg/validator"
)

type AppointmentServicer interface {
	GetAll(ctx context.Context) httputil.Response[[]model.Appointment]
	GetByID(ctx context.Context, id uuid.UUID) httputil.Response[model.Appointment]
	GetByPatient(ctx context.Context, patientID uuid.UUID) httputil.Response[[]model.Appointment]
	Upcoming(ctx context.Context) httputil.Response[[]model.Appointment]
	Create(ctx context.Context, req *model.CreateAppointmentRequest) httputil.Response[model.Appointment]
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateAppointmentRequest) httputil.Response[model.Appointment]
	Delete(ctx context.Context, id uuid.UUID) httputil.Response[model.Appointment]
}

var chronological = []repository.Order{repository.Asc("date"), repository.Asc("time")}

type Service struct {
	gw        *gateway.Gateway[model.Appointment]
	validator validator.Validator
	now       func() time.Time
}

func NewService(table repository.Table[model.Appointment], deps gateway.Deps, v validator.Validator) *Service {
	return &Service{
		gw: gateway.New(table, gateway.Options{
			Resource:     "Appointment",
			ParentColumn: model.ColumnPatientID,
			OwnerColumn:  model.ColumnNutritionistID,
			Order:        chronological,
		}, deps),
		validator: v,
		now:       time.Now,
	}
}

func (s *Service) GetAll(ctx context.Context) httputil.Response[[]model.Appointment] {
	return s.gw.GetAll(ctx)
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) httputil.Response[model.Appointment] {
	return s.gw.GetByID(ctx, id)
}

// GetByPatient lists the patient's appointments, most recent day first
func (s *Service) GetByPatient(ctx context.Context, patientID uuid.UUID) httputil.Response[[]model.Appointment] {
	return s.gw.GetByParent(ctx, model.ColumnPatientID, patientID, repository.Desc("date"), repository.Asc("time"))
}

// Upcoming lists appointments from today on
func (s *Service) Upcoming(ctx context.Context) httputil.Response[[]model.Appointment] {
	return s.gw.List(ctx, repository.NewQuery().Gte("date", today(s.now())).OrderBy(chronological...))
}

func (s *Service) Create(ctx context.Context, req *model.CreateAppointmentRequest) httputil.Response[model.Appointment] {
	if req.PatientID == uuid.Nil {
		return httputil.BadRequest[model.Appointment]("Patient ID is required")
	}
	if err := s.validator.Validate(req); err != nil {
		return httputil.Fail[model.Appointment](err)
	}
	date, err := validator.ParseDate("date", req.Date)
	if err != nil {
		return httputil.Fail[model.Appointment](err)
	}

	values := repository.ValuesOf(req)
	values["date"] = datatypes.Date(date)
	values["status"] = model.AppointmentStatusPending
	if req.Status != nil {
		values["status"] = *req.Status
	}
	return s.gw.Create(ctx, values)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateAppointmentRequest) httputil.Response[model.Appointment] {
	values := repository.ValuesOf(req)
	if req.Date.Present() {
		v, ok := req.Date.Get()
		if !ok {
			return httputil.BadRequest[model.Appointment]("date is required")
		}
		date, err := validator.ParseDate("date", v)
		if err != nil {
			return httputil.Fail[model.Appointment](err)
		}
		values["date"] = datatypes.Date(date)
	}
	if req.Time.Present() {
		if err := validator.TimeOfDay("time", req.Time.Value); err != nil {
			return httputil.Fail[model.Appointment](err)
		}
	}
	if req.Status.Present() {
		if err := validStatus(req.Status.Value); err != nil {
			return httputil.Fail[model.Appointment](err)
		}
	}
	return s.gw.Update(ctx, id, values)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) httputil.Response[model.Appointment] {
	return s.gw.Delete(ctx, id)
}

func validStatus(status model.AppointmentStatus) error {
	return validator.OneOf("status", status,
		model.AppointmentStatusConfirmed,
		model.AppointmentStatusPending,
		model.AppointmentStatusCancelled,
		model.AppointmentStatusCompleted,
	)
}

func today(now time.Time) datatypes.Date {
	y, m, d := now.UTC().Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}
