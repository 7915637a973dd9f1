package anthropometry

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/nutri-api/internal/config"
	"github.com/jwalitptl/nutri-api/internal/model"
	"github.com/jwalitptl/nutri-api/internal/repository"
	"github.com/jwalitptl/nutri-api/internal/storage"
	"github.com/jwalitptl/nutri-api/internal/storage/storagetest"
)

type fixture struct {
	svc       *Service
	patientID uuid.UUID
}

func newFixture(t *testing.T, mode string) fixture {
	t.Helper()
	b := storagetest.Open(t, mode == config.BMIDatabase)
	deps, _ := storagetest.Deps()

	patients := storage.Table[model.Patient](b, model.TablePatients)
	now := time.Now().UTC()
	p, err := patients.Insert(context.Background(), repository.Values{
		"id": uuid.New(), "full_name": "Ana", "active": true, "created_at": now, "updated_at": now,
	})
	require.NoError(t, err)

	return fixture{
		svc:       NewService(storage.Table[model.Anthropometry](b, model.TableAnthropometries), deps, mode),
		patientID: p.ID,
	}
}

func TestBMIModesAgree(t *testing.T) {
	for _, mode := range []string{config.BMIApplication, config.BMIDatabase} {
		t.Run(mode, func(t *testing.T) {
			f := newFixture(t, mode)
			ctx := context.Background()

			resp := f.svc.Create(ctx, &model.CreateAnthropometryRequest{PatientID: f.patientID, Weight: 65.5, Height: 1.65})
			require.True(t, resp.OK(), "%+v", resp.Error)
			require.NotNil(t, resp.Value().BMI)
			assert.Equal(t, 24.06, *resp.Value().BMI)

			var req model.UpdateAnthropometryRequest
			require.NoError(t, json.Unmarshal([]byte(`{"weight": 70}`), &req))
			updated := f.svc.Update(ctx, resp.Value().ID, &req)
			require.True(t, updated.OK(), "%+v", updated.Error)
			require.NotNil(t, updated.Value().BMI)
			assert.Equal(t, 25.71, *updated.Value().BMI)
			assert.Equal(t, 1.65, updated.Value().Height)
		})
	}
}

func TestCreateRejectsNonPositiveMeasures(t *testing.T) {
	f := newFixture(t, config.BMIApplication)
	ctx := context.Background()

	cases := []struct {
		weight, height float64
		message        string
	}{
		{0, 1.7, "Weight must be greater than 0"},
		{-3, 1.7, "Weight must be greater than 0"},
		{70, 0, "Height must be greater than 0"},
		{70, -1.7, "Height must be greater than 0"},
	}
	for _, tc := range cases {
		resp := f.svc.Create(ctx, &model.CreateAnthropometryRequest{PatientID: f.patientID, Weight: tc.weight, Height: tc.height})
		assert.Equal(t, http.StatusBadRequest, resp.Status)
		assert.Equal(t, tc.message, resp.Error.Message)
	}

	resp := f.svc.Create(ctx, &model.CreateAnthropometryRequest{Weight: 70, Height: 1.7})
	assert.Equal(t, "Patient ID is required", resp.Error.Message)

	history := f.svc.History(ctx, f.patientID)
	require.True(t, history.OK())
	assert.Empty(t, history.Value())
}

func TestLatestAndHistory(t *testing.T) {
	f := newFixture(t, config.BMIApplication)
	ctx := context.Background()

	none := f.svc.GetByPatient(ctx, f.patientID)
	require.True(t, none.OK())
	assert.Nil(t, none.Data)

	older := "2024-01-10T08:00:00Z"
	newer := "2024-03-10T08:00:00Z"
	require.True(t, f.svc.Create(ctx, &model.CreateAnthropometryRequest{PatientID: f.patientID, Weight: 80, Height: 1.8, MeasuredAt: &newer}).OK())
	require.True(t, f.svc.Create(ctx, &model.CreateAnthropometryRequest{PatientID: f.patientID, Weight: 82, Height: 1.8, MeasuredAt: &older}).OK())

	latest := f.svc.GetByPatient(ctx, f.patientID)
	require.NotNil(t, latest.Data)
	assert.Equal(t, 80.0, latest.Data.Weight)

	history := f.svc.History(ctx, f.patientID)
	require.Len(t, history.Value(), 2)
	assert.Equal(t, 82.0, history.Value()[1].Weight)
}

func TestUpsertByPatient(t *testing.T) {
	f := newFixture(t, config.BMIApplication)
	ctx := context.Background()

	first := f.svc.UpsertByPatient(ctx, f.patientID, &model.CreateAnthropometryRequest{Weight: 60, Height: 1.6})
	require.True(t, first.OK(), "%+v", first.Error)
	assert.Equal(t, http.StatusCreated, first.Status)
	assert.Equal(t, f.patientID, first.Value().PatientID)

	second := f.svc.UpsertByPatient(ctx, f.patientID, &model.CreateAnthropometryRequest{Weight: 62, Height: 1.6})
	require.True(t, second.OK())
	assert.Equal(t, first.Value().ID, second.Value().ID)
	require.NotNil(t, second.Value().BMI)
	assert.Equal(t, 24.22, *second.Value().BMI)

	bad := f.svc.UpsertByPatient(ctx, f.patientID, &model.CreateAnthropometryRequest{Weight: 0, Height: 1.6})
	assert.Equal(t, http.StatusBadRequest, bad.Status)
}
