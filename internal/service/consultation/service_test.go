package consultation

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/nutri-api/internal/model"
	"github.com/jwalitptl/nutri-api/internal/repository"
	"github.com/jwalitptl/nutri-api/internal/storage"
	"github.com/jwalitptl/nutri-api/internal/storage/storagetest"
	"github.com/jwalitptl/nutri-api/pkg/validator"
)

var fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*Service, uuid.UUID) {
	t.Helper()
	b := storagetest.Open(t, false)
	deps, _ := storagetest.Deps()

	p, err := storage.Table[model.Patient](b, model.TablePatients).Insert(context.Background(), repository.Values{
		"id": uuid.New(), "full_name": "Ana", "active": true, "created_at": fixedNow, "updated_at": fixedNow,
	})
	require.NoError(t, err)

	svc := NewService(storage.Table[model.Consultation](b, model.TableConsultations), deps, validator.New())
	svc.now = func() time.Time { return fixedNow }
	return svc, p.ID
}

func create(t *testing.T, svc *Service, patientID uuid.UUID, date string) model.Consultation {
	t.Helper()
	resp := svc.Create(context.Background(), &model.CreateConsultationRequest{
		PatientID: patientID, ConsultationDate: date, Type: model.ConsultationFollowUp,
	})
	require.True(t, resp.OK(), "%+v", resp.Error)
	return resp.Value()
}

func TestCreate(t *testing.T) {
	svc, patientID := setup(t)
	next := "2024-07-01T10:00:00Z"
	weight := 72.5

	resp := svc.Create(context.Background(), &model.CreateConsultationRequest{
		PatientID:        patientID,
		ConsultationDate: "2024-06-15T10:00:00-03:00",
		Type:             model.ConsultationInitial,
		Weight:           &weight,
		NextAppointment:  &next,
	})
	require.True(t, resp.OK(), "%+v", resp.Error)
	c := resp.Value()
	assert.True(t, c.ConsultationDate.Equal(time.Date(2024, 6, 15, 13, 0, 0, 0, time.UTC)))
	require.NotNil(t, c.NextAppointment)
	assert.Equal(t, 1, c.NextAppointment.Day())
}

func TestCreateValidation(t *testing.T) {
	svc, patientID := setup(t)
	ctx := context.Background()
	zero := 0.0

	for i, req := range []model.CreateConsultationRequest{
		{ConsultationDate: "2024-06-15", Type: model.ConsultationInitial},
		{PatientID: patientID, Type: model.ConsultationInitial},
		{PatientID: patientID, ConsultationDate: "2024-06-15"},
		{PatientID: patientID, ConsultationDate: "2024-06-15", Type: "routine"},
		{PatientID: patientID, ConsultationDate: "15/06/2024", Type: model.ConsultationInitial},
		{PatientID: patientID, ConsultationDate: "2024-06-15", Type: model.ConsultationInitial, Weight: &zero},
	} {
		resp := svc.Create(ctx, &req)
		assert.Equal(t, http.StatusBadRequest, resp.Status, "case %d", i)
	}
}

func TestUpcomingWindow(t *testing.T) {
	svc, patientID := setup(t)
	ctx := context.Background()
	create(t, svc, patientID, "2024-06-14T12:00:00Z")
	create(t, svc, patientID, "2024-06-20T12:00:00Z")
	create(t, svc, patientID, "2024-06-16T12:00:00Z")
	create(t, svc, patientID, "2024-06-30T12:00:00Z")

	week := svc.Upcoming(ctx, DefaultUpcomingDays)
	require.True(t, week.OK())
	require.Len(t, week.Value(), 2)
	assert.Equal(t, 16, week.Value()[0].ConsultationDate.Day())

	month := svc.Upcoming(ctx, 30)
	assert.Len(t, month.Value(), 3)

	assert.Equal(t, http.StatusBadRequest, svc.Upcoming(ctx, 0).Status)

	all := svc.GetByPatient(ctx, patientID).Value()
	require.Len(t, all, 4)
	assert.Equal(t, 30, all[0].ConsultationDate.Day())
}

func TestUpdate(t *testing.T) {
	svc, patientID := setup(t)
	ctx := context.Background()
	c := create(t, svc, patientID, "2024-06-16T12:00:00Z")

	var req model.UpdateConsultationRequest
	require.NoError(t, json.Unmarshal([]byte(`{"notes": "better sleep", "type": "emergency"}`), &req))
	resp := svc.Update(ctx, c.ID, &req)
	require.True(t, resp.OK(), "%+v", resp.Error)
	assert.Equal(t, model.ConsultationEmergency, resp.Value().Type)
	require.NotNil(t, resp.Value().Notes)
	assert.True(t, resp.Value().ConsultationDate.Equal(c.ConsultationDate))

	for _, body := range []string{`{"consultation_date": null}`, `{"type": "x"}`, `{"height_cm": 0}`} {
		req = model.UpdateConsultationRequest{}
		require.NoError(t, json.Unmarshal([]byte(body), &req))
		assert.Equal(t, http.StatusBadRequest, svc.Update(ctx, c.ID, &req).Status, body)
	}

	assert.Equal(t, http.StatusNoContent, svc.Delete(ctx, c.ID).Status)
	assert.Equal(t, http.StatusNotFound, svc.Delete(ctx, c.ID).Status)
}
