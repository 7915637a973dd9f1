package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jwalitptl/nutri-api/internal/config"
	"github.com/jwalitptl/nutri-api/internal/model"
	"github.com/jwalitptl/nutri-api/internal/repository"
	"github.com/jwalitptl/nutri-api/pkg/auth"
	apperrors "github.com/jwalitptl/nutri-api/pkg/errors"
	"github.com/jwalitptl/nutri-api/pkg/httputil"
	"github.com/jwalitptl/nutri-api/pkg/messaging"
	"github.com/jwalitptl/nutri-api/pkg/metrics"
)

// Record is a persisted row with a primary key
type Record interface {
	Identifier() uuid.UUID
}

// ParentChecker reports whether a parent row is visible to the caller
type ParentChecker interface {
	Visible(ctx context.Context, id uuid.UUID) error
}

// Options describe one resource
type Options struct {
	// Resource is the display name used in messages, e.g. "Patient"
	Resource string
	// ParentResource names the parent in GetByParent messages
	ParentResource string
	// ParentColumn references the parent row; writes naming a parent the
	// caller cannot see are rejected when Deps.Parents is set
	ParentColumn string
	// OwnerColumn holds the owning nutritionist; empty for unowned tables
	OwnerColumn string
	// SoftDelete marks rows inactive instead of removing them
	SoftDelete    bool
	Order         []repository.Order
	SearchColumns []string
	SearchOrder   []repository.Order
}

// Deps are shared by every gateway of a process
type Deps struct {
	Tenancy   string
	Publisher messaging.Publisher
	Metrics   *metrics.Metrics
	Logger    zerolog.Logger
	Now       func() time.Time
	Parents   ParentChecker
}

// Gateway exposes one table as envelope-returning operations. It never
// returns Go errors: every failure is folded into the response.
type Gateway[T Record] struct {
	table repository.Table[T]
	opts  Options
	deps  Deps
	log   zerolog.Logger
}

const publishTimeout = 2 * time.Second

func New[T Record](table repository.Table[T], opts Options, deps Deps) *Gateway[T] {
	if deps.Publisher == nil {
		deps.Publisher = messaging.NopPublisher{}
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Tenancy == "" {
		deps.Tenancy = config.TenancySingle
	}
	if opts.ParentResource == "" {
		opts.ParentResource = "Patient"
	}
	return &Gateway[T]{
		table: table,
		opts:  opts,
		deps:  deps,
		log:   deps.Logger.With().Str("resource", table.Name()).Logger(),
	}
}

// Resource returns the display name of the gateway's resource
func (g *Gateway[T]) Resource() string {
	return g.opts.Resource
}

// owner resolves the nutritionist the call acts for. In single tenancy
// there is none; in multi tenancy a missing identity is UNAUTHORIZED.
func (g *Gateway[T]) owner(ctx context.Context) (*uuid.UUID, error) {
	if g.deps.Tenancy != config.TenancyMulti {
		return nil, nil
	}
	id, ok := auth.FromContext(ctx)
	if !ok {
		return nil, apperrors.Unauthorized()
	}
	return &id.NutritionistID, nil
}

// scope applies the owner and soft delete filters to q
func (g *Gateway[T]) scope(ctx context.Context, q repository.Query) (repository.Query, *uuid.UUID, error) {
	owner, err := g.owner(ctx)
	if err != nil {
		return q, nil, err
	}
	if owner != nil && g.opts.OwnerColumn != "" {
		q = q.Eq(g.opts.OwnerColumn, *owner)
	}
	if g.opts.SoftDelete {
		q = q.Eq(model.ColumnActive, true)
	}
	return q, owner, nil
}

func (g *Gateway[T]) ordered(q repository.Query, orders []repository.Order) repository.Query {
	if q.Ordered() {
		return q
	}
	return q.OrderBy(orders...)
}

func (g *Gateway[T]) track(op string, started time.Time, status *int) {
	g.deps.Metrics.ObserveGateway(g.table.Name(), op, *status, started)
}

// classify converts a storage failure into an AppError. Backend errors
// keep their code; anything unexpected is logged.
func (g *Gateway[T]) classify(op string, err error) error {
	if appErr, ok := apperrors.As(err); ok {
		return appErr
	}
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound(g.opts.Resource)
	}
	if repoErr, ok := repository.AsError(err); ok {
		g.log.Error().Err(err).Str("op", op).Str("code", repoErr.Code).Msg("storage operation failed")
		var details any
		if repoErr.Details != "" {
			details = repoErr.Details
		}
		return apperrors.FromBackend(repoErr.Code, repoErr.Message, details)
	}
	g.log.Error().Err(err).Str("op", op).Msg("gateway operation failed")
	return err
}

func (g *Gateway[T]) publish(ctx context.Context, action string, id uuid.UUID, owner *uuid.UUID) {
	event := messaging.Event{
		Type:       g.table.Name() + "." + action,
		Resource:   g.table.Name(),
		ID:         id,
		OwnerID:    owner,
		OccurredAt: g.deps.Now().UTC(),
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	err := g.deps.Publisher.Publish(ctx, event)
	g.deps.Metrics.ObserveEvent(event.Type, err)
	if err != nil {
		g.log.Warn().Err(err).Str("event", event.Type).Str("id", id.String()).Msg("failed to publish change event")
	}
}

func (g *Gateway[T]) requireID(id uuid.UUID) error {
	if id == uuid.Nil {
		return apperrors.BadRequest(fmt.Sprintf("%s ID is required", g.opts.Resource))
	}
	return nil
}

// GetAll lists every visible row in the default order
func (g *Gateway[T]) GetAll(ctx context.Context) httputil.Response[[]T] {
	return g.list(ctx, "get_all", repository.NewQuery())
}

// List returns the visible rows matching q. Without an explicit order the
// default order applies.
func (g *Gateway[T]) List(ctx context.Context, q repository.Query) httputil.Response[[]T] {
	return g.list(ctx, "list", q)
}

func (g *Gateway[T]) list(ctx context.Context, op string, q repository.Query) (resp httputil.Response[[]T]) {
	defer g.track(op, time.Now(), &resp.Status)

	q, _, err := g.scope(ctx, q)
	if err != nil {
		return httputil.Fail[[]T](err)
	}
	rows, err := g.table.Find(ctx, g.ordered(q, g.opts.Order))
	if err != nil {
		return httputil.Fail[[]T](g.classify(op, err))
	}
	return httputil.Success(rows)
}

// Visible returns nil when id names a row the caller can see, and the
// NOT_FOUND or UNAUTHORIZED failure otherwise.
func (g *Gateway[T]) Visible(ctx context.Context, id uuid.UUID) error {
	if resp := g.GetByID(ctx, id); !resp.OK() {
		return resp.Err()
	}
	return nil
}

// CheckParent rejects a parentID the caller cannot see
func (g *Gateway[T]) CheckParent(ctx context.Context, parentID uuid.UUID) error {
	if g.opts.ParentColumn == "" || g.deps.Parents == nil || parentID == uuid.Nil {
		return nil
	}
	return g.deps.Parents.Visible(ctx, parentID)
}

// GetByID returns one row; a missing row is NOT_FOUND
func (g *Gateway[T]) GetByID(ctx context.Context, id uuid.UUID) (resp httputil.Response[T]) {
	defer g.track("get_by_id", time.Now(), &resp.Status)

	if err := g.requireID(id); err != nil {
		return httputil.Fail[T](err)
	}
	q, _, err := g.scope(ctx, repository.NewQuery().Eq(model.ColumnID, id))
	if err != nil {
		return httputil.Fail[T](err)
	}
	row, err := g.table.First(ctx, q)
	if err != nil {
		return httputil.Fail[T](g.classify("get_by_id", err))
	}
	return httputil.Success(row)
}

// FindOne returns the first visible row matching q, or a successful
// response with no data when nothing matches.
func (g *Gateway[T]) FindOne(ctx context.Context, q repository.Query) (resp httputil.Response[T]) {
	defer g.track("find_one", time.Now(), &resp.Status)

	q, _, err := g.scope(ctx, q)
	if err != nil {
		return httputil.Fail[T](err)
	}
	row, err := g.table.First(ctx, g.ordered(q, g.opts.Order))
	if errors.Is(err, repository.ErrNotFound) {
		return httputil.Maybe[T](nil)
	}
	if err != nil {
		return httputil.Fail[T](g.classify("find_one", err))
	}
	return httputil.Maybe(&row)
}

// GetByParent lists the rows whose column references parentID
func (g *Gateway[T]) GetByParent(ctx context.Context, column string, parentID uuid.UUID, orders ...repository.Order) httputil.Response[[]T] {
	if parentID == uuid.Nil {
		return httputil.BadRequest[[]T](fmt.Sprintf("%s ID is required", g.opts.ParentResource))
	}
	return g.list(ctx, "get_by_parent", repository.NewQuery().Eq(column, parentID).OrderBy(orders...))
}

// Search matches term against the search columns, case-insensitively
func (g *Gateway[T]) Search(ctx context.Context, term string) httputil.Response[[]T] {
	term = strings.TrimSpace(term)
	if term == "" {
		return httputil.BadRequest[[]T]("Search term is required")
	}
	q := repository.NewQuery().Search(term, g.opts.SearchColumns...).OrderBy(g.opts.SearchOrder...)
	return g.list(ctx, "search", q)
}

// Create inserts a row, stamping its id, owner and timestamps
func (g *Gateway[T]) Create(ctx context.Context, values repository.Values) (resp httputil.Response[T]) {
	defer g.track("create", time.Now(), &resp.Status)

	owner, err := g.owner(ctx)
	if err != nil {
		return httputil.Fail[T](err)
	}

	if parentID, ok := values[g.opts.ParentColumn].(uuid.UUID); ok {
		if err := g.CheckParent(ctx, parentID); err != nil {
			return httputil.Fail[T](err)
		}
	}

	now := g.deps.Now().UTC()
	values = values.Clone()
	values[model.ColumnID] = uuid.New()
	values[model.ColumnCreatedAt] = now
	values[model.ColumnUpdatedAt] = now
	if g.opts.OwnerColumn != "" {
		if owner != nil {
			values[g.opts.OwnerColumn] = *owner
		} else {
			delete(values, g.opts.OwnerColumn)
		}
	}
	if _, ok := values[model.ColumnActive]; g.opts.SoftDelete && !ok {
		values[model.ColumnActive] = true
	}

	row, err := g.table.Insert(ctx, values)
	if err != nil {
		return httputil.Fail[T](g.classify("create", err))
	}
	g.publish(ctx, "created", row.Identifier(), owner)
	return httputil.Created(row)
}

// Update applies a partial change to one row and returns the stored row.
// Only updated_at is stamped, so an empty change still touches it.
func (g *Gateway[T]) Update(ctx context.Context, id uuid.UUID, values repository.Values) (resp httputil.Response[T]) {
	defer g.track("update", time.Now(), &resp.Status)

	if err := g.requireID(id); err != nil {
		return httputil.Fail[T](err)
	}
	q, owner, err := g.scope(ctx, repository.NewQuery().Eq(model.ColumnID, id))
	if err != nil {
		return httputil.Fail[T](err)
	}

	n, err := g.table.Update(ctx, q, g.patch(values))
	if err != nil {
		return httputil.Fail[T](g.classify("update", err))
	}
	if n == 0 {
		return httputil.NotFound[T](g.opts.Resource)
	}

	row, err := g.table.First(ctx, repository.NewQuery().Eq(model.ColumnID, id))
	if err != nil {
		return httputil.Fail[T](g.classify("update", err))
	}
	g.publish(ctx, "updated", id, owner)
	return httputil.Success(row)
}

// UpdateWhere applies values to every visible row matching q and returns
// how many rows changed.
func (g *Gateway[T]) UpdateWhere(ctx context.Context, q repository.Query, values repository.Values) (resp httputil.Response[int64]) {
	defer g.track("update_where", time.Now(), &resp.Status)

	q, _, err := g.scope(ctx, q)
	if err != nil {
		return httputil.Fail[int64](err)
	}
	n, err := g.table.Update(ctx, q, g.patch(values))
	if err != nil {
		return httputil.Fail[int64](g.classify("update_where", err))
	}
	return httputil.Success(n)
}

// patch strips the columns a caller may never change and stamps updated_at
func (g *Gateway[T]) patch(values repository.Values) repository.Values {
	values = values.Clone()
	delete(values, model.ColumnID)
	delete(values, model.ColumnCreatedAt)
	if g.opts.OwnerColumn != "" {
		delete(values, g.opts.OwnerColumn)
	}
	values[model.ColumnUpdatedAt] = g.deps.Now().UTC()
	return values
}

// Delete removes one row, or marks it inactive when soft delete is on
func (g *Gateway[T]) Delete(ctx context.Context, id uuid.UUID) (resp httputil.Response[T]) {
	defer g.track("delete", time.Now(), &resp.Status)

	if err := g.requireID(id); err != nil {
		return httputil.Fail[T](err)
	}
	q, owner, err := g.scope(ctx, repository.NewQuery().Eq(model.ColumnID, id))
	if err != nil {
		return httputil.Fail[T](err)
	}

	var n int64
	if g.opts.SoftDelete {
		n, err = g.table.Update(ctx, q, repository.Values{
			model.ColumnActive:    false,
			model.ColumnUpdatedAt: g.deps.Now().UTC(),
		})
	} else {
		n, err = g.table.Delete(ctx, q)
	}
	if err != nil {
		return httputil.Fail[T](g.classify("delete", err))
	}
	if n == 0 {
		return httputil.NotFound[T](g.opts.Resource)
	}
	g.publish(ctx, "deleted", id, owner)
	return httputil.NoContent[T]()
}

// Upsert updates the latest row referencing parentID, or creates one from
// create when there is none. The read and the write are separate
// statements; concurrent callers may both create.
func (g *Gateway[T]) Upsert(ctx context.Context, column string, parentID uuid.UUID, order repository.Order, patch, create repository.Values) httputil.Response[T] {
	if parentID == uuid.Nil {
		return httputil.BadRequest[T](fmt.Sprintf("%s ID is required", g.opts.ParentResource))
	}
	if err := g.CheckParent(ctx, parentID); err != nil {
		return httputil.Fail[T](err)
	}
	latest := g.FindOne(ctx, repository.NewQuery().Eq(column, parentID).OrderBy(order))
	if !latest.OK() {
		return latest
	}
	if latest.Data != nil {
		row := *latest.Data
		return g.Update(ctx, row.Identifier(), patch)
	}
	create = create.Clone()
	create[column] = parentID
	return g.Create(ctx, create)
}
