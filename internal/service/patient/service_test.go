package patient

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
	"github.com/jwalitptl/nutri-api/internal/storage"
	"github.com/jwalitptl/nutri-api/internal/storage/storagetest"
	"github.com/jwalitptl/nutri-api/pkg/validator"
)

func newService(t *testing.T, softDelete bool) *Service {
	t.Helper()
	b := storagetest.Open(t, false)
	deps, _ := storagetest.Deps()
	return NewService(storage.Table[model.Patient](b, model.TablePatients), deps, validator.New(), softDelete)
}

func ptr[T any](v T) *T { return &v }

func decodeUpdate(t *testing.T, body string) *model.UpdatePatientRequest {
	t.Helper()
	var req model.UpdatePatientRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return &req
}

func TestCreateRejectsBlankName(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, true)

	for _, name := range []string{"", "   ", "\t\n"} {
		resp := svc.Create(ctx, &model.CreatePatientRequest{FullName: name})
		assert.Equal(t, http.StatusBadRequest, resp.Status, "name %q", name)
		assert.Equal(t, "BAD_REQUEST", resp.Error.Code)
	}

	all := svc.GetAll(ctx)
	require.True(t, all.OK())
	assert.Empty(t, all.Value())
}

func TestCreateComputesBMIAndTrims(t *testing.T) {
	svc := newService(t, true)

	resp := svc.Create(context.Background(), &model.CreatePatientRequest{
		FullName:  "  Ana López ",
		Weight:    ptr(65.5),
		Height:    ptr(1.65),
		BirthDate: ptr("1990-04-12"),
		Gender:    ptr(model.GenderFemale),
	})
	require.True(t, resp.OK(), "%+v", resp.Error)
	assert.Equal(t, http.StatusCreated, resp.Status)

	p := resp.Value()
	assert.Equal(t, "Ana López", p.FullName)
	require.NotNil(t, p.BMI)
	assert.Equal(t, 24.06, *p.BMI)
	require.NotNil(t, p.BirthDate)
	assert.Equal(t, "1990-04-12", time.Time(*p.BirthDate).Format("2006-01-02"))
}

func TestCreateRejectsInvalidFields(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, true)

	resp := svc.Create(ctx, &model.CreatePatientRequest{FullName: "Ana", Weight: ptr(0.0)})
	assert.Equal(t, http.StatusBadRequest, resp.Status)

	resp = svc.Create(ctx, &model.CreatePatientRequest{FullName: "Ana", BirthDate: ptr("1990-13-01")})
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, "birth_date must be a valid date", resp.Error.Message)

	resp = svc.Create(ctx, &model.CreatePatientRequest{FullName: "Ana", Email: ptr("nope")})
	assert.Equal(t, http.StatusBadRequest, resp.Status)
}

func TestUpdateMergesPresentFields(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, true)
	created := svc.Create(ctx, &model.CreatePatientRequest{
		FullName: "Ana", Goals: ptr("run"), Weight: ptr(65.5), Height: ptr(1.65),
	}).Value()

	resp := svc.Update(ctx, created.ID, decodeUpdate(t, `{"weight": 70}`))
	require.True(t, resp.OK(), "%+v", resp.Error)
	p := resp.Value()
	assert.Equal(t, "Ana", p.FullName)
	require.NotNil(t, p.Goals)
	assert.Equal(t, "run", *p.Goals)
	require.NotNil(t, p.BMI)
	assert.Equal(t, 25.71, *p.BMI)

	resp = svc.Update(ctx, created.ID, decodeUpdate(t, `{"goals": null, "height": null}`))
	require.True(t, resp.OK())
	assert.Nil(t, resp.Value().Goals)
	assert.Nil(t, resp.Value().Height)
	assert.Nil(t, resp.Value().BMI)
}

func TestUpdateEmptyKeepsFields(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, true)
	created := svc.Create(ctx, &model.CreatePatientRequest{FullName: "Ana", Phone: ptr("555-0100")}).Value()

	resp := svc.Update(ctx, created.ID, decodeUpdate(t, `{}`))
	require.True(t, resp.OK())
	updated := resp.Value()
	assert.Equal(t, created.FullName, updated.FullName)
	assert.Equal(t, created.Phone, updated.Phone)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
}

func TestUpdateRejectsBlankName(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, true)
	created := svc.Create(ctx, &model.CreatePatientRequest{FullName: "Ana"}).Value()

	for _, body := range []string{`{"full_name": "  "}`, `{"full_name": null}`, `{"weight": -1}`} {
		resp := svc.Update(ctx, created.ID, decodeUpdate(t, body))
		assert.Equal(t, http.StatusBadRequest, resp.Status, body)
	}
	assert.Equal(t, "Ana", svc.GetByID(ctx, created.ID).Value().FullName)
}

func TestUpdateUnknownPatient(t *testing.T) {
	svc := newService(t, true)
	resp := svc.Update(context.Background(), uuid.New(), decodeUpdate(t, `{"weight": 70}`))
	assert.Equal(t, http.StatusNotFound, resp.Status)
	assert.Equal(t, "Patient not found", resp.Error.Message)
}

func TestDeleteVariants(t *testing.T) {
	ctx := context.Background()

	soft := newService(t, true)
	p := soft.Create(ctx, &model.CreatePatientRequest{FullName: "Ana"}).Value()
	assert.Equal(t, http.StatusNoContent, soft.Delete(ctx, p.ID).Status)
	assert.Empty(t, soft.GetAll(ctx).Value())
	assert.Equal(t, http.StatusNotFound, soft.GetByID(ctx, p.ID).Status)

	hard := newService(t, false)
	p = hard.Create(ctx, &model.CreatePatientRequest{FullName: "Ana"}).Value()
	assert.Equal(t, http.StatusNoContent, hard.Delete(ctx, p.ID).Status)
	assert.Equal(t, http.StatusNotFound, hard.GetByID(ctx, p.ID).Status)
}

func TestSearchIsLiteral(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, true)
	svc.Create(ctx, &model.CreatePatientRequest{FullName: "Promo 100% off"})
	svc.Create(ctx, &model.CreatePatientRequest{FullName: "Bruno", ControlNumber: ptr("100-off")})
	svc.Create(ctx, &model.CreatePatientRequest{FullName: "Carla", Email: ptr("carla_1@example.com")})

	resp := svc.Search(ctx, "100% off")
	require.True(t, resp.OK())
	require.Len(t, resp.Value(), 1)
	assert.Equal(t, "Promo 100% off", resp.Value()[0].FullName)

	resp = svc.Search(ctx, "A_1")
	require.True(t, resp.OK())
	require.Len(t, resp.Value(), 1)
	assert.Equal(t, "Carla", resp.Value()[0].FullName)

	assert.Empty(t, svc.Search(ctx, `\`).Value())
}

func TestBlankOptionalTextIsStoredAsNull(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, true)

	var req model.CreatePatientRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"full_name": "Ana", "email": "", "gender": "", "phone": "  ",
		"birth_date": "", "goals": " run "
	}`), &req))
	resp := svc.Create(ctx, &req)
	require.True(t, resp.OK(), "%+v", resp.Error)
	assert.Equal(t, http.StatusCreated, resp.Status)

	p := resp.Value()
	assert.Nil(t, p.Email)
	assert.Nil(t, p.Gender)
	assert.Nil(t, p.Phone)
	assert.Nil(t, p.BirthDate)
	require.NotNil(t, p.Goals)
	assert.Equal(t, "run", *p.Goals)

	updated := svc.Update(ctx, p.ID, decodeUpdate(t, `{"goals": "", "email": "", "gender": "  "}`))
	require.True(t, updated.OK(), "%+v", updated.Error)
	assert.Nil(t, updated.Value().Goals)
	assert.Nil(t, updated.Value().Email)
	assert.Nil(t, updated.Value().Gender)

	bad := svc.Create(ctx, &model.CreatePatientRequest{FullName: "Ana", Email: ptr("not-an-email")})
	assert.Equal(t, http.StatusBadRequest, bad.Status)
}
