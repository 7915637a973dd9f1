package recordcontrol

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
	return NewService(storage.Table[model.MedicalRecordsControl](b, model.TableMedicalRecordsControls), deps), p.ID
}

func TestCreateTrimsText(t *testing.T) {
	svc, patientID := setup(t)
	hcn := "  HC-0042 "
	blank := "   "

	resp := svc.Create(context.Background(), &model.CreateRecordsControlRequest{
		PatientID: patientID, HCN: &hcn, Orientations: &blank, FirstVisit: true,
	})
	require.True(t, resp.OK(), "%+v", resp.Error)
	require.NotNil(t, resp.Value().HCN)
	assert.Equal(t, "HC-0042", *resp.Value().HCN)
	assert.Nil(t, resp.Value().Orientations)
	assert.True(t, resp.Value().FirstVisit)
}

func TestUpsertByPatient(t *testing.T) {
	svc, patientID := setup(t)
	ctx := context.Background()

	var req model.UpdateRecordsControlRequest
	require.NoError(t, json.Unmarshal([]byte(`{"meal_plan_type": "hypocaloric", "first_visit": true}`), &req))
	first := svc.UpsertByPatient(ctx, patientID, &req)
	require.True(t, first.OK(), "%+v", first.Error)
	assert.Equal(t, http.StatusCreated, first.Status)

	req = model.UpdateRecordsControlRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"follow_up": true, "first_visit": false}`), &req))
	second := svc.UpsertByPatient(ctx, patientID, &req)
	require.True(t, second.OK())
	assert.Equal(t, first.Value().ID, second.Value().ID)
	assert.True(t, second.Value().FollowUp)
	assert.False(t, second.Value().FirstVisit)
	require.NotNil(t, second.Value().MealPlanType)
	assert.Equal(t, "hypocaloric", *second.Value().MealPlanType)

	latest := svc.GetByPatient(ctx, patientID)
	require.NotNil(t, latest.Data)
	assert.Equal(t, first.Value().ID, latest.Data.ID)
}

func TestUpdateMissing(t *testing.T) {
	svc, _ := setup(t)
	resp := svc.Update(context.Background(), uuid.New(), &model.UpdateRecordsControlRequest{})
	assert.Equal(t, http.StatusNotFound, resp.Status)
	assert.Equal(t, "Medical records control not found", resp.Error.Message)
}
