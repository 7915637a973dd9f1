// Package app assembles the storage backend, services and HTTP router from
// configuration.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/nutri-api/internal/config"
	"github.com/jwalitptl/nutri-api/internal/email"
	"github.com/jwalitptl/nutri-api/internal/gateway"
	anthropometryHandler "github.com/jwalitptl/nutri-api/internal/handler/anthropometry"
	appointmentHandler "github.com/jwalitptl/nutri-api/internal/handler/appointment"
	authHandler "github.com/jwalitptl/nutri-api/internal/handler/auth"
	consultationHandler "github.com/jwalitptl/nutri-api/internal/handler/consultation"
	diagnosisHandler "github.com/jwalitptl/nutri-api/internal/handler/diagnosis"
	"github.com/jwalitptl/nutri-api/internal/handler/health"
	mealplanHandler "github.com/jwalitptl/nutri-api/internal/handler/mealplan"
	patientHandler "github.com/jwalitptl/nutri-api/internal/handler/patient"
	progressHandler "github.com/jwalitptl/nutri-api/internal/handler/progress"
	promHandler "github.com/jwalitptl/nutri-api/internal/handler/prometheus"
	recordcontrolHandler "github.com/jwalitptl/nutri-api/internal/handler/recordcontrol"
	"github.com/jwalitptl/nutri-api/internal/middleware"
	"github.com/jwalitptl/nutri-api/internal/model"
	"github.com/jwalitptl/nutri-api/internal/router"
	"github.com/jwalitptl/nutri-api/internal/service/anthropometry"
	"github.com/jwalitptl/nutri-api/internal/service/appointment"
	authService "github.com/jwalitptl/nutri-api/internal/service/auth"
	"github.com/jwalitptl/nutri-api/internal/service/consultation"
	"github.com/jwalitptl/nutri-api/internal/service/diagnosis"
	"github.com/jwalitptl/nutri-api/internal/service/mealplan"
	"github.com/jwalitptl/nutri-api/internal/service/patient"
	"github.com/jwalitptl/nutri-api/internal/service/progress"
	"github.com/jwalitptl/nutri-api/internal/service/recordcontrol"
	"github.com/jwalitptl/nutri-api/internal/storage"
	"github.com/jwalitptl/nutri-api/pkg/auth"
	"github.com/jwalitptl/nutri-api/pkg/messaging"
	"github.com/jwalitptl/nutri-api/pkg/messaging/redis"
	"github.com/jwalitptl/nutri-api/pkg/metrics"
	"github.com/jwalitptl/nutri-api/pkg/security"
	"github.com/jwalitptl/nutri-api/pkg/validator"
)

const (
	ServiceName    = "nutri-api"
	Version        = "1.0.0"
	metricsPrefix  = "nutri"
	secretBytes    = 32
	connectTimeout = 5 * time.Second
)

// Options carries the process-level collaborators
type Options struct {
	Logger   zerolog.Logger
	Registry *prometheus.Registry
	// Email overrides the SMTP mailer built from config
	Email email.Service
}

type App struct {
	Config  *config.Config
	Logger  zerolog.Logger
	Backend *storage.Backend
	Broker  messaging.Broker
	Metrics *metrics.Metrics

	Patients       *patient.Service
	Anthropometry  *anthropometry.Service
	Diagnoses      *diagnosis.Service
	RecordControls *recordcontrol.Service
	Appointments   *appointment.Service
	Consultations  *consultation.Service
	MealPlans      *mealplan.Service
	Progress       *progress.Service
	Auth           *authService.Service

	Router *router.Router
}

// Open connects storage and the event broker. Services and routes are
// built by Build once the schema is in place.
func Open(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}

	backend, err := storage.Open(cfg.Database, opts.Logger)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:  cfg,
		Logger:  opts.Logger,
		Backend: backend,
		Metrics: metrics.New(opts.Registry, metricsPrefix),
	}

	if cfg.Redis.URL != "" {
		connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		broker, err := redis.NewRedisBroker(connectCtx, redis.Config{
			URL:     cfg.Redis.URL,
			Channel: cfg.Redis.Channel,
		}, opts.Logger)
		if err != nil {
			_ = backend.Close()
			return nil, err
		}
		a.Broker = broker
	}

	if err := a.build(opts); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

// Migrate brings the schema up to date. BMI is derived by a trigger when
// the anthropometry BMI mode is "database".
func (a *App) Migrate(ctx context.Context) error {
	return a.Backend.Migrate(ctx, a.Config.Anthropometry.BMI == config.BMIDatabase)
}

func (a *App) build(opts Options) error {
	cfg := a.Config
	var publisher messaging.Publisher = messaging.NopPublisher{}
	if a.Broker != nil {
		publisher = a.Broker
	}
	deps := gateway.Deps{
		Tenancy:   cfg.Tenancy.Mode,
		Publisher: publisher,
		Metrics:   a.Metrics,
		Logger:    a.Logger,
	}
	v := validator.New()

	a.Patients = patient.NewService(storage.Table[model.Patient](a.Backend, model.TablePatients), deps, v, cfg.Patients.SoftDelete)
	// child rows may only reference patients the caller can see
	deps.Parents = a.Patients
	a.Anthropometry = anthropometry.NewService(storage.Table[model.Anthropometry](a.Backend, model.TableAnthropometries), deps, cfg.Anthropometry.BMI)
	a.Diagnoses = diagnosis.NewService(storage.Table[model.Diagnosis](a.Backend, model.TableDiagnoses), deps, v)
	a.RecordControls = recordcontrol.NewService(storage.Table[model.MedicalRecordsControl](a.Backend, model.TableMedicalRecordsControls), deps)
	a.Appointments = appointment.NewService(storage.Table[model.Appointment](a.Backend, model.TableAppointments), deps, v)
	a.Consultations = consultation.NewService(storage.Table[model.Consultation](a.Backend, model.TableConsultations), deps, v)
	a.MealPlans = mealplan.NewService(storage.Table[model.MealPlan](a.Backend, model.TableMealPlans), deps, v)
	a.Progress = progress.NewService(storage.Table[model.ProgressTracking](a.Backend, model.TableProgressTrackings), deps, v)

	secret := cfg.JWT.Secret
	if secret == "" {
		generated, err := security.RandomToken(secretBytes)
		if err != nil {
			return fmt.Errorf("failed to generate signing secret: %w", err)
		}
		secret = generated
		a.Logger.Warn().Msg("jwt.secret not set, tokens will not survive a restart")
	}
	mailer := opts.Email
	if mailer == nil {
		mailer = email.New(cfg.SMTP, a.Logger)
	}
	a.Auth = authService.NewService(
		storage.Table[model.Nutritionist](a.Backend, model.TableNutritionists),
		deps,
		auth.NewJWTService(secret, cfg.JWT.Issuer, time.Duration(cfg.JWT.ExpiryHours)*time.Hour),
		security.NewBcryptHasher(bcrypt.DefaultCost),
		mailer,
		v,
		cfg.SMTP.ResetURL,
	)

	a.Router = router.NewRouter(
		a.Logger,
		a.Metrics,
		a.Auth,
		[]router.RootHandler{
			health.NewHandler(a.Backend, ServiceName, Version),
			promHandler.New(opts.Registry),
		},
		[]router.Handler{
			authHandler.NewHandler(a.Auth),
			patientHandler.NewHandler(a.Patients),
			anthropometryHandler.NewHandler(a.Anthropometry),
			diagnosisHandler.NewHandler(a.Diagnoses),
			recordcontrolHandler.NewHandler(a.RecordControls),
			appointmentHandler.NewHandler(a.Appointments),
			consultationHandler.NewHandler(a.Consultations),
			mealplanHandler.NewHandler(a.MealPlans),
			progressHandler.NewHandler(a.Progress),
		},
		router.RouterConfig{
			RateLimitEnabled: cfg.RateLimit.Enabled,
			RateLimit:        rate.Limit(cfg.RateLimit.RPS),
			RateBurst:        cfg.RateLimit.Burst,
			CORSConfig:       middleware.DefaultCORSConfig(cfg.Server.CORSOrigin),
			Timeout:          time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		},
	)
	a.Router.Setup()
	return nil
}

func (a *App) Close() error {
	if a.Broker != nil {
		if err := a.Broker.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("failed to close event broker")
		}
	}
	return a.Backend.Close()
}
