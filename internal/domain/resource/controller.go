// internal/domain/resource/controller.go
package resource

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/pkg/apiclient"
)

// ErrStale marks a list response superseded by a newer request. The
// displayed page always corresponds to the most recently issued fetch, never
// to whichever response happened to resolve last.
var ErrStale = errors.New("list response superseded by a newer request")

// ErrNotConfirmed is returned when a deletion was not explicitly confirmed
var ErrNotConfirmed = errors.New("deletion not confirmed")

// Filters are the active filter values for a list fetch. Keys with empty
// values are omitted from the query entirely rather than sent as empty
// strings.
type Filters map[string]string

// API is the backend surface the controller drives
type API interface {
	List(ctx context.Context, resource string, query url.Values, out any) (apiclient.Meta, error)
	Create(ctx context.Context, resource string, payload any, out any) error
	Update(ctx context.Context, resource, id string, payload any, out any) error
	Remove(ctx context.Context, resource, id string) error
}

// Controller is the generic CRUD table pattern shared by every admin and
// merchant resource list: paginated, filtered fetches plus pass-through
// mutations that re-fetch the current page on success.
type Controller[T any] struct {
	mu       sync.Mutex
	api      API
	resource string
	log      *logrus.Logger

	page    int
	limit   int
	filters Filters
	records []T
	meta    apiclient.Meta
	seq     uint64
}

// NewController creates a controller for one backend resource
func NewController[T any](api API, resource string, log *logrus.Logger) *Controller[T] {
	return &Controller[T]{
		api:      api,
		resource: resource,
		log:      log,
		page:     1,
		limit:    10,
	}
}

// List fetches a page of records. The query contains exactly page, limit,
// and the non-empty filter values. A response that has been superseded by a
// newer fetch is discarded and reported as ErrStale.
func (c *Controller[T]) List(ctx context.Context, page, limit int, filters Filters) ([]T, apiclient.Meta, error) {
	c.mu.Lock()
	c.seq++
	issue := c.seq
	c.page = page
	c.limit = limit
	c.filters = filters
	c.mu.Unlock()

	records, meta, err := c.fetch(ctx, page, limit, filters)
	if err != nil {
		c.log.WithError(err).WithField("resource", c.resource).Error("Fetch failed")
		return nil, apiclient.Meta{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if issue != c.seq {
		c.log.WithField("resource", c.resource).Debug("Discarding stale list response")
		return nil, apiclient.Meta{}, ErrStale
	}

	c.records = records
	c.meta = meta
	return records, meta, nil
}

// Create posts a new record and re-fetches the current page on success. On
// failure the error is logged and the displayed records are left untouched.
func (c *Controller[T]) Create(ctx context.Context, payload any) error {
	if err := c.api.Create(ctx, c.resource, payload, nil); err != nil {
		c.log.WithError(err).WithField("resource", c.resource).Error("Create failed")
		return err
	}
	c.refetch(ctx)
	return nil
}

// Update replaces a record's caller-editable fields and re-fetches the
// current page on success.
func (c *Controller[T]) Update(ctx context.Context, id string, payload any) error {
	if err := c.api.Update(ctx, c.resource, id, payload, nil); err != nil {
		c.log.WithError(err).WithField("resource", c.resource).Error("Update failed")
		return err
	}
	c.refetch(ctx)
	return nil
}

// Remove deletes a record after explicit user confirmation and re-fetches
// the current page on success.
func (c *Controller[T]) Remove(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	if err := c.api.Remove(ctx, c.resource, id); err != nil {
		c.log.WithError(err).WithField("resource", c.resource).Error("Delete failed")
		return err
	}
	c.refetch(ctx)
	return nil
}

// Records returns the last successfully applied page
func (c *Controller[T]) Records() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	records := make([]T, len(c.records))
	copy(records, c.records)
	return records
}

// Meta returns the pagination metadata of the last applied page
func (c *Controller[T]) Meta() apiclient.Meta {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.meta
}

// fetch performs one backend list call
func (c *Controller[T]) fetch(ctx context.Context, page, limit int, filters Filters) ([]T, apiclient.Meta, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	for key, value := range filters {
		if value != "" {
			query.Set(key, value)
		}
	}

	var records []T
	meta, err := c.api.List(ctx, c.resource, query, &records)
	if err != nil {
		return nil, apiclient.Meta{}, err
	}
	return records, meta, nil
}

// refetch reloads the current (page, limit, filters) tuple after a mutation
// so the displayed table reflects server state.
func (c *Controller[T]) refetch(ctx context.Context) {
	c.mu.Lock()
	page, limit, filters := c.page, c.limit, c.filters
	c.mu.Unlock()

	if _, _, err := c.List(ctx, page, limit, filters); err != nil && !errors.Is(err, ErrStale) {
		c.log.WithError(err).WithField("resource", c.resource).Warn("Re-fetch after mutation failed")
	}
}
