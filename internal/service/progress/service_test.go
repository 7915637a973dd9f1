package progress

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

func setup(t *testing.T) (*Service, uuid.UUID) {
	t.Helper()
	b := storagetest.Open(t, false)
	deps, _ := storagetest.Deps()

	now := time.Now().UTC()
	p, err := storage.Table[model.Patient](b, model.TablePatients).Insert(context.Background(), repository.Values{
		"id": uuid.New(), "full_name": "Ana", "active": true, "created_at": now, "updated_at": now,
	})
	require.NoError(t, err)
	return NewService(storage.Table[model.ProgressTracking](b, model.TableProgressTrackings), deps, validator.New()), p.ID
}

func track(t *testing.T, svc *Service, patientID uuid.UUID, date string, weight float64) model.ProgressTracking {
	t.Helper()
	resp := svc.Create(context.Background(), &model.CreateProgressRequest{
		PatientID: patientID, TrackingDate: date, Weight: &weight,
	})
	require.True(t, resp.OK(), "%+v", resp.Error)
	return resp.Value()
}

func TestLatestAndRange(t *testing.T) {
	svc, patientID := setup(t)
	ctx := context.Background()
	track(t, svc, patientID, "2024-05-01", 80)
	track(t, svc, patientID, "2024-05-15", 79)
	track(t, svc, patientID, "2024-06-01", 78)

	latest := svc.GetLatestByPatient(ctx, patientID)
	require.NotNil(t, latest.Data)
	assert.Equal(t, 78.0, *latest.Data.Weight)

	all := svc.GetByPatient(ctx, patientID).Value()
	require.Len(t, all, 3)
	assert.Equal(t, 80.0, *all[2].Weight)

	inRange := svc.GetByDateRange(ctx, patientID, "2024-05-01", "2024-05-31")
	require.True(t, inRange.OK(), "%+v", inRange.Error)
	require.Len(t, inRange.Value(), 2)
	assert.Equal(t, 80.0, *inRange.Value()[0].Weight)

	resp := svc.GetByDateRange(ctx, patientID, "", "2024-05-31")
	assert.Equal(t, "Start date and end date are required", resp.Error.Message)
	assert.Equal(t, http.StatusBadRequest, svc.GetByDateRange(ctx, patientID, "2024-06-01", "2024-05-01").Status)
}

func TestCreateValidation(t *testing.T) {
	svc, patientID := setup(t)
	ctx := context.Background()
	energy := 11
	mood := model.Mood("meh")

	resp := svc.Create(ctx, &model.CreateProgressRequest{PatientID: patientID})
	assert.Equal(t, "Tracking date is required", resp.Error.Message)

	for i, req := range []model.CreateProgressRequest{
		{TrackingDate: "2024-05-01"},
		{PatientID: patientID, TrackingDate: "May 1st"},
		{PatientID: patientID, TrackingDate: "2024-05-01", EnergyLevel: &energy},
		{PatientID: patientID, TrackingDate: "2024-05-01", Mood: &mood},
	} {
		assert.Equal(t, http.StatusBadRequest, svc.Create(ctx, &req).Status, "case %d", i)
	}
	assert.Empty(t, svc.GetAll(ctx).Value())
}

func TestUpdate(t *testing.T) {
	svc, patientID := setup(t)
	ctx := context.Background()
	p := track(t, svc, patientID, "2024-05-01", 80)

	var req model.UpdateProgressRequest
	require.NoError(t, json.Unmarshal([]byte(`{"mood": "good", "energy_level": 7, "weight": null}`), &req))
	resp := svc.Update(ctx, p.ID, &req)
	require.True(t, resp.OK(), "%+v", resp.Error)
	assert.Nil(t, resp.Value().Weight)
	require.NotNil(t, resp.Value().EnergyLevel)
	assert.Equal(t, 7, *resp.Value().EnergyLevel)

	for _, body := range []string{`{"tracking_date": null}`, `{"energy_level": 0}`, `{"water_intake_ml": -5}`, `{"mood": "meh"}`} {
		req = model.UpdateProgressRequest{}
		require.NoError(t, json.Unmarshal([]byte(body), &req))
		assert.Equal(t, http.StatusBadRequest, svc.Update(ctx, p.ID, &req).Status, body)
	}

	assert.Equal(t, http.StatusNoContent, svc.Delete(ctx, p.ID).Status)
	assert.Equal(t, http.StatusNotFound, svc.GetByID(ctx, p.ID).Status)
}
