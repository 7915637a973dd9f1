package auth

import (
	"context"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jwalitptl/nutri-api/internal/email"
	"github.com/jwalitptl/nutri-api/internal/model"
	"github.com/jwalitptl/nutri-api/internal/storage"
	"github.com/jwalitptl/nutri-api/internal/storage/storagetest"
	"github.com/jwalitptl/nutri-api/pkg/auth"
	"github.com/jwalitptl/nutri-api/pkg/security"
	"github.com/jwalitptl/nutri-api/pkg/validator"
)

type fixture struct {
	svc    *Service
	outbox *email.Outbox
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	b := storagetest.Open(t, false)
	deps, _ := storagetest.Deps()
	outbox := &email.Outbox{}
	svc := NewService(
		storage.Table[model.Nutritionist](b, model.TableNutritionists),
		deps,
		auth.NewJWTService("test-secret", "nutri-api", time.Hour),
		security.NewBcryptHasher(bcrypt.MinCost),
		outbox,
		validator.New(),
		"http://app.local/reset",
	)
	return fixture{svc: svc, outbox: outbox}
}

func (f fixture) register(t *testing.T, address string) model.Session {
	t.Helper()
	resp := f.svc.Register(context.Background(), &model.RegisterRequest{
		Email: address, Password: "s3cret-pass", FullName: "Ana Nutri",
	})
	require.True(t, resp.OK(), "%+v", resp.Error)
	return resp.Value()
}

func (f fixture) login(t *testing.T, token string) context.Context {
	t.Helper()
	id, err := f.svc.Authenticate(token)
	require.NoError(t, err)
	return auth.WithIdentity(context.Background(), id)
}

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp := f.svc.Register(ctx, &model.RegisterRequest{Email: " Ana@Example.com ", Password: "s3cret-pass", FullName: "Ana"})
	require.True(t, resp.OK(), "%+v", resp.Error)
	assert.Equal(t, http.StatusCreated, resp.Status)
	session := resp.Value()
	assert.Equal(t, "Bearer", session.TokenType)
	assert.NotEmpty(t, session.AccessToken)
	assert.Equal(t, "ana@example.com", session.Nutritionist.Email)
	assert.NotEqual(t, "s3cret-pass", session.Nutritionist.PasswordHash)

	require.Len(t, f.outbox.Messages(), 1)
	assert.Equal(t, "ana@example.com", f.outbox.Messages()[0].To)

	login := f.svc.Login(ctx, &model.LoginRequest{Email: "ANA@example.com", Password: "s3cret-pass"})
	require.True(t, login.OK(), "%+v", login.Error)
	assert.Equal(t, session.Nutritionist.ID, login.Value().Nutritionist.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ana@example.com")

	resp := f.svc.Register(context.Background(), &model.RegisterRequest{Email: "ana@example.com", Password: "another-pass", FullName: "Ana"})
	assert.Equal(t, http.StatusConflict, resp.Status)
	assert.Equal(t, "CONFLICT", resp.Error.Code)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []model.RegisterRequest{
		{Email: "not-an-email", Password: "s3cret-pass", FullName: "Ana"},
		{Email: "ana@example.com", Password: "short", FullName: "Ana"},
		{Email: "ana@example.com", Password: "s3cret-pass", FullName: "  "},
	}
	for _, req := range cases {
		req := req
		resp := f.svc.Register(ctx, &req)
		assert.Equal(t, http.StatusBadRequest, resp.Status, "%+v", req)
	}
	assert.Empty(t, f.outbox.Messages())
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ana@example.com")
	ctx := context.Background()

	for _, req := range []model.LoginRequest{
		{Email: "ana@example.com", Password: "wrong-pass"},
		{Email: "nobody@example.com", Password: "s3cret-pass"},
	} {
		req := req
		resp := f.svc.Login(ctx, &req)
		assert.Equal(t, http.StatusUnauthorized, resp.Status)
		assert.Equal(t, "AUTH_ERROR", resp.Error.Code)
		assert.Equal(t, "Invalid login credentials", resp.Error.Message)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	f := newFixture(t)
	session := f.register(t, "ana@example.com")
	ctx := f.login(t, session.AccessToken)

	info := f.svc.Session(ctx)
	require.True(t, info.OK())
	assert.Equal(t, session.Nutritionist.ID, info.Value().NutritionistID)

	require.True(t, f.svc.Logout(ctx).OK())
	_, err := f.svc.Authenticate(session.AccessToken)
	assert.ErrorIs(t, err, ErrRevokedToken)

	assert.Equal(t, http.StatusUnauthorized, f.svc.Logout(context.Background()).Status)
	assert.Equal(t, http.StatusUnauthorized, f.svc.Session(context.Background()).Status)
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Authenticate("not.a.token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestProfile(t *testing.T) {
	f := newFixture(t)
	session := f.register(t, "ana@example.com")
	ctx := f.login(t, session.AccessToken)

	profile := f.svc.Profile(ctx)
	require.True(t, profile.OK())
	assert.Equal(t, "Ana Nutri", profile.Value().FullName)

	spec := "sports"
	updated := f.svc.UpdateProfile(ctx, &model.UpdateProfileRequest{
		FullName:       model.Some(" Ana Maria "),
		Specialization: model.Some(spec),
	})
	require.True(t, updated.OK(), "%+v", updated.Error)
	assert.Equal(t, "Ana Maria", updated.Value().FullName)
	require.NotNil(t, updated.Value().Specialization)
	assert.Equal(t, spec, *updated.Value().Specialization)
	assert.Equal(t, "ana@example.com", updated.Value().Email)

	blank := f.svc.UpdateProfile(ctx, &model.UpdateProfileRequest{FullName: model.Some("")})
	assert.Equal(t, http.StatusBadRequest, blank.Status)

	assert.Equal(t, http.StatusUnauthorized, f.svc.Profile(context.Background()).Status)
}

var tokenPattern = regexp.MustCompile(`token=([0-9a-f]+)`)

func TestPasswordReset(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ana@example.com")
	ctx := context.Background()

	unknown := f.svc.RequestPasswordReset(ctx, &model.ResetPasswordRequest{Email: "nobody@example.com"})
	require.True(t, unknown.OK())
	require.Len(t, f.outbox.Messages(), 1)

	resp := f.svc.RequestPasswordReset(ctx, &model.ResetPasswordRequest{Email: "ana@example.com"})
	require.True(t, resp.OK())
	assert.Equal(t, unknown.Value(), resp.Value())

	msgs := f.outbox.Messages()
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[1].Body, "http://app.local/reset?token=")
	match := tokenPattern.FindStringSubmatch(msgs[1].Body)
	require.Len(t, match, 2)
	token := match[1]

	bad := f.svc.ConfirmPasswordReset(ctx, &model.ConfirmResetRequest{Token: "nope", Password: "brand-new-pass"})
	assert.Equal(t, http.StatusUnauthorized, bad.Status)

	ok := f.svc.ConfirmPasswordReset(ctx, &model.ConfirmResetRequest{Token: token, Password: "brand-new-pass"})
	require.True(t, ok.OK(), "%+v", ok.Error)

	again := f.svc.ConfirmPasswordReset(ctx, &model.ConfirmResetRequest{Token: token, Password: "brand-new-pass"})
	assert.Equal(t, http.StatusUnauthorized, again.Status)

	assert.Equal(t, http.StatusUnauthorized, f.svc.Login(ctx, &model.LoginRequest{Email: "ana@example.com", Password: "s3cret-pass"}).Status)
	assert.True(t, f.svc.Login(ctx, &model.LoginRequest{Email: "ana@example.com", Password: "brand-new-pass"}).OK())
}
