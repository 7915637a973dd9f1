package auth

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/jwalitptl/nutri-api/internal/config"
	"github.com/jwalitptl/nutri-api/internal/email"
	"github.com/jwalitptl/nutri-api/internal/gateway"
	"github.com/jwalitptl/nutri-api/internal/model"
	"github.com/jwalitptl/nutri-api/internal/repository"
	"github.com/jwalitptl/nutri-api/pkg/auth"
	apperrors "github.com/jwalitptl/nutri-api/pkg/errors"
	"github.com/jwalitptl/nutri-api/pkg/httputil"
	"github.com/jwalitptl/nutri-api/pkg/security"
	"github.com/jwalitptl/nutri-api/pkg/validator"
)

var (
	ErrRevokedToken = errors.New("token revoked")
)

const (
	resetTokenExpiry = 1 * time.Hour
	resetTokenBytes  = 32
	cleanupInterval  = 10 * time.Minute
	tokenType        = "Bearer"
)

// Ack is the body of operations that only confirm
type Ack struct {
	Message string `json:"message"`
}

type AuthServicer interface {
	Register(ctx context.Context, req *model.RegisterRequest) httputil.Response[model.Session]
	Login(ctx context.Context, req *model.LoginRequest) httputil.Response[model.Session]
	Logout(ctx context.Context) httputil.Response[Ack]
	Session(ctx context.Context) httputil.Response[model.SessionInfo]
	Profile(ctx context.Context) httputil.Response[model.Nutritionist]
	UpdateProfile(ctx context.Context, req *model.UpdateProfileRequest) httputil.Response[model.Nutritionist]
	RequestPasswordReset(ctx context.Context, req *model.ResetPasswordRequest) httputil.Response[Ack]
	ConfirmPasswordReset(ctx context.Context, req *model.ConfirmResetRequest) httputil.Response[Ack]
	Authenticate(token string) (auth.Identity, error)
}

type Service struct {
	gw        *gateway.Gateway[model.Nutritionist]
	jwtSvc    auth.JWTService
	hasher    security.PasswordHasher
	emailSvc  email.Service
	validator validator.Validator
	resetURL  string
	revoked   *cache.Cache
	resets    *cache.Cache
	logger    zerolog.Logger
}

func NewService(table repository.Table[model.Nutritionist], deps gateway.Deps, jwtSvc auth.JWTService,
	hasher security.PasswordHasher, emailSvc email.Service, v validator.Validator, resetURL string) *Service {
	// accounts are not owned by anyone, so they are never scoped
	deps.Tenancy = config.TenancySingle
	return &Service{
		gw: gateway.New(table, gateway.Options{
			Resource: "Nutritionist profile",
			Order:    []repository.Order{repository.Asc("email")},
		}, deps),
		jwtSvc:    jwtSvc,
		hasher:    hasher,
		emailSvc:  emailSvc,
		validator: v,
		resetURL:  resetURL,
		revoked:   cache.New(cache.NoExpiration, cleanupInterval),
		resets:    cache.New(resetTokenExpiry, cleanupInterval),
		logger:    deps.Logger.With().Str("component", "auth").Logger(),
	}
}

func invalidCredentials() *apperrors.AppError {
	return apperrors.New(apperrors.CodeAuth, "Invalid login credentials", http.StatusUnauthorized)
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) httputil.Response[model.Session] {
	req.Email = normalizeEmail(req.Email)
	if err := s.validator.Validate(req); err != nil {
		return httputil.Fail[model.Session](err)
	}

	existing := s.byEmail(ctx, req.Email)
	if !existing.OK() {
		return httputil.Forward[model.Session](existing)
	}
	if existing.Data != nil {
		return httputil.Fail[model.Session](apperrors.Conflict("Email already registered"))
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, security.ErrPasswordTooShort) {
			return httputil.BadRequest[model.Session]("password must be at least 8 characters")
		}
		return httputil.Fail[model.Session](apperrors.Internal(err))
	}

	created := s.gw.Create(ctx, repository.Values{
		"email":          req.Email,
		"full_name":      strings.TrimSpace(req.FullName),
		"license_number": req.LicenseNumber,
		"specialization": req.Specialization,
		"phone":          req.Phone,
		"password_hash":  hash,
	})
	if !created.OK() {
		return httputil.Forward[model.Session](created)
	}

	n := created.Value()
	if err := s.emailSvc.SendWelcome(ctx, n.Email, n.FullName); err != nil {
		s.logger.Warn().Err(err).Str("nutritionist_id", n.ID.String()).Msg("failed to send welcome mail")
	}

	resp := s.session(&n)
	if resp.OK() {
		resp.Status = http.StatusCreated
		resp.StatusText = apperrors.StatusText(http.StatusCreated)
	}
	return resp
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) httputil.Response[model.Session] {
	req.Email = normalizeEmail(req.Email)
	if err := s.validator.Validate(req); err != nil {
		return httputil.Fail[model.Session](err)
	}

	found := s.byEmail(ctx, req.Email)
	if !found.OK() {
		return httputil.Forward[model.Session](found)
	}
	if found.Data == nil {
		return httputil.Fail[model.Session](invalidCredentials())
	}
	if err := s.hasher.Compare(found.Data.PasswordHash, req.Password); err != nil {
		return httputil.Fail[model.Session](invalidCredentials())
	}

	return s.session(found.Data)
}

// Logout revokes the token the request was authenticated with
func (s *Service) Logout(ctx context.Context) httputil.Response[Ack] {
	id, ok := auth.FromContext(ctx)
	if !ok {
		return httputil.Unauthorized[Ack]()
	}
	if ttl := time.Until(id.ExpiresAt); id.TokenID != "" && ttl > 0 {
		s.revoked.Set(id.TokenID, struct{}{}, ttl)
	}
	return httputil.Success(Ack{Message: "Logged out"})
}

func (s *Service) Session(ctx context.Context) httputil.Response[model.SessionInfo] {
	id, ok := auth.FromContext(ctx)
	if !ok {
		return httputil.Unauthorized[model.SessionInfo]()
	}
	return httputil.Success(model.SessionInfo{
		NutritionistID: id.NutritionistID,
		Email:          id.Email,
		ExpiresAt:      id.ExpiresAt,
	})
}

func (s *Service) Profile(ctx context.Context) httputil.Response[model.Nutritionist] {
	id, ok := auth.FromContext(ctx)
	if !ok {
		return httputil.Unauthorized[model.Nutritionist]()
	}
	return s.gw.GetByID(ctx, id.NutritionistID)
}

func (s *Service) UpdateProfile(ctx context.Context, req *model.UpdateProfileRequest) httputil.Response[model.Nutritionist] {
	id, ok := auth.FromContext(ctx)
	if !ok {
		return httputil.Unauthorized[model.Nutritionist]()
	}
	values := repository.ValuesOf(req)
	if req.FullName.Present() {
		name, err := validator.RequiredText("full_name", req.FullName.Value)
		if err != nil {
			return httputil.Fail[model.Nutritionist](err)
		}
		values["full_name"] = name
	}
	return s.gw.Update(ctx, id.NutritionistID, values)
}

// RequestPasswordReset mails a one-time reset link. The answer is the same
// whether or not the address belongs to an account.
func (s *Service) RequestPasswordReset(ctx context.Context, req *model.ResetPasswordRequest) httputil.Response[Ack] {
	req.Email = normalizeEmail(req.Email)
	if err := s.validator.Validate(req); err != nil {
		return httputil.Fail[Ack](err)
	}
	ack := httputil.Success(Ack{Message: "If the email is registered, a reset link has been sent"})

	found := s.byEmail(ctx, req.Email)
	if !found.OK() {
		return httputil.Forward[Ack](found)
	}
	if found.Data == nil {
		return ack
	}

	token, err := security.RandomToken(resetTokenBytes)
	if err != nil {
		return httputil.Fail[Ack](apperrors.Internal(err))
	}
	s.resets.Set(token, found.Data.ID, cache.DefaultExpiration)

	if err := s.emailSvc.SendPasswordReset(ctx, found.Data.Email, found.Data.FullName, s.resetLink(token)); err != nil {
		s.resets.Delete(token)
		return httputil.Fail[Ack](apperrors.Internal(err))
	}
	return ack
}

func (s *Service) ConfirmPasswordReset(ctx context.Context, req *model.ConfirmResetRequest) httputil.Response[Ack] {
	if err := s.validator.Validate(req); err != nil {
		return httputil.Fail[Ack](err)
	}
	v, ok := s.resets.Get(req.Token)
	if !ok {
		return httputil.Fail[Ack](apperrors.New(apperrors.CodeAuth, "Invalid or expired reset token", http.StatusUnauthorized))
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return httputil.BadRequest[Ack]("password must be at least 8 characters")
	}
	updated := s.gw.Update(ctx, v.(uuid.UUID), repository.Values{"password_hash": hash})
	if !updated.OK() {
		return httputil.Forward[Ack](updated)
	}
	s.resets.Delete(req.Token)
	return httputil.Success(Ack{Message: "Password updated"})
}

// Authenticate validates an access token and returns its identity
func (s *Service) Authenticate(token string) (auth.Identity, error) {
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return auth.Identity{}, err
	}
	if _, revoked := s.revoked.Get(claims.ID); revoked {
		return auth.Identity{}, ErrRevokedToken
	}
	id := auth.Identity{
		NutritionistID: claims.NutritionistID(),
		Email:          claims.Email,
		TokenID:        claims.ID,
	}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return id, nil
}

func (s *Service) byEmail(ctx context.Context, address string) httputil.Response[model.Nutritionist] {
	return s.gw.FindOne(ctx, repository.NewQuery().Eq("email", address))
}

func (s *Service) session(n *model.Nutritionist) httputil.Response[model.Session] {
	token, claims, err := s.jwtSvc.GenerateAccessToken(n.ID, n.Email)
	if err != nil {
		return httputil.Fail[model.Session](apperrors.Internal(err))
	}
	return httputil.Success(model.Session{
		AccessToken:  token,
		TokenType:    tokenType,
		ExpiresAt:    claims.ExpiresAt.Time,
		Nutritionist: n,
	})
}

func (s *Service) resetLink(token string) string {
	u, err := url.Parse(s.resetURL)
	if err != nil {
		return s.resetURL + "?token=" + url.QueryEscape(token)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String()
}
