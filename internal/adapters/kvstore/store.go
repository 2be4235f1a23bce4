// Package kvstore keeps marketplace records as JSON arrays under fixed keys
// of a key-value store, the same layout the browser client writes to local
// storage.
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/localserve/backend/internal/domain/entities"
	"github.com/localserve/backend/internal/domain/providers"
	"github.com/localserve/backend/internal/domain/repositories"
	apperrors "github.com/localserve/backend/pkg/errors"
)

// Collection key suffixes.
const (
	ServicesKey = "services"
	ReviewsKey  = "reviews"
	RequestsKey = "requests"
)

// DefaultPrefix is prepended to collection keys when none is configured.
const DefaultPrefix = "localserve"

// CollectionKey builds the store key of a collection.
func CollectionKey(prefix, collection string) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return prefix + "_" + collection
}

// collection reads and appends one JSON array. Appends are serialized per
// collection within this process.
type collection[R any, E any] struct {
	kv      providers.KeyValueStore
	key     string
	convert func(R) E
	mu      sync.Mutex
}

// errUnreadable marks a stored value that is not a JSON array.
var errUnreadable = errors.New("collection value is not a JSON array")

// readRaw returns the stored array elements undecoded. A missing key is an
// empty collection.
func (c *collection[R, E]) readRaw(ctx context.Context) ([]json.RawMessage, error) {
	data, err := c.kv.Get(ctx, c.key)
	if errors.Is(err, providers.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewExternalError(fmt.Sprintf("failed to read %s", c.key), err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", errUnreadable, err)
	}
	return raw, nil
}

// load returns the stored entities. A missing key is an empty collection;
// a corrupt value is logged and treated as empty, and individual elements
// that are not objects are skipped.
func (c *collection[R, E]) load(ctx context.Context) ([]E, error) {
	raw, err := c.readRaw(ctx)
	if errors.Is(err, errUnreadable) {
		log.Warn().Err(err).Str("key", c.key).Msg("Ignoring unreadable collection")
		return []E{}, nil
	}
	if err != nil {
		return nil, err
	}

	out := make([]E, 0, len(raw))
	for i, item := range raw {
		var rec R
		if err := json.Unmarshal(item, &rec); err != nil {
			log.Debug().Err(err).Str("key", c.key).Int("index", i).Msg("Skipping malformed record")
			continue
		}
		out = append(out, c.convert(rec))
	}
	return out, nil
}

// append adds one entity, keeping every stored element byte for byte. It
// refuses to write when the stored value cannot be read as an array.
func (c *collection[R, E]) append(ctx context.Context, entity E) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, err := c.readRaw(ctx)
	if errors.Is(err, errUnreadable) {
		return apperrors.NewInternalError(fmt.Sprintf("refusing to overwrite unreadable %s", c.key), err)
	}
	if err != nil {
		return err
	}

	item, err := json.Marshal(entity)
	if err != nil {
		return apperrors.NewInternalError(fmt.Sprintf("failed to encode %s", c.key), err)
	}
	raw = append(raw, item)

	data, err := json.Marshal(raw)
	if err != nil {
		return apperrors.NewInternalError(fmt.Sprintf("failed to encode %s", c.key), err)
	}
	if err := c.kv.Set(ctx, c.key, data, 0); err != nil {
		return apperrors.NewExternalError(fmt.Sprintf("failed to write %s", c.key), err)
	}
	return nil
}

// ReviewStore implements repositories.ReviewRepository on a key-value store.
type ReviewStore struct {
	reviews *collection[reviewRecord, entities.Review]
}

// NewReviewStore creates a review store under the given key prefix.
func NewReviewStore(kv providers.KeyValueStore, prefix string) repositories.ReviewRepository {
	return &ReviewStore{reviews: &collection[reviewRecord, entities.Review]{
		kv:      kv,
		key:     CollectionKey(prefix, ReviewsKey),
		convert: reviewRecord.toEntity,
	}}
}

// Create appends a review.
func (s *ReviewStore) Create(ctx context.Context, review *entities.Review) error {
	if review == nil {
		return apperrors.NewInternalError("review is nil", fmt.Errorf("review is nil"))
	}
	return s.reviews.append(ctx, *review)
}

// ListByService returns the reviews of one service in stored order.
func (s *ReviewStore) ListByService(ctx context.Context, serviceID string) ([]entities.Review, error) {
	all, err := s.reviews.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Review, 0, len(all))
	for _, r := range all {
		if r.ServiceID == serviceID {
			out = append(out, r)
		}
	}
	return out, nil
}

// List returns every review in stored order.
func (s *ReviewStore) List(ctx context.Context) ([]entities.Review, error) {
	return s.reviews.load(ctx)
}

// ServiceStore implements repositories.ServiceRepository on a key-value store.
type ServiceStore struct {
	services *collection[serviceRecord, entities.ServiceListing]
}

// NewServiceStore creates a service listing store under the given key prefix.
func NewServiceStore(kv providers.KeyValueStore, prefix string) repositories.ServiceRepository {
	return &ServiceStore{services: &collection[serviceRecord, entities.ServiceListing]{
		kv:      kv,
		key:     CollectionKey(prefix, ServicesKey),
		convert: serviceRecord.toEntity,
	}}
}

// Create appends a service listing.
func (s *ServiceStore) Create(ctx context.Context, service *entities.ServiceListing) error {
	if service == nil {
		return apperrors.NewInternalError("service is nil", fmt.Errorf("service is nil"))
	}
	return s.services.append(ctx, *service)
}

// GetByID returns the first listing with the id.
func (s *ServiceStore) GetByID(ctx context.Context, id string) (*entities.ServiceListing, error) {
	all, err := s.services.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			svc := all[i]
			return &svc, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("service with id %s not found", id))
}

// List returns every listing in stored order.
func (s *ServiceStore) List(ctx context.Context) ([]entities.ServiceListing, error) {
	return s.services.load(ctx)
}

// RequestStore implements repositories.RequestRepository on a key-value store.
type RequestStore struct {
	requests *collection[requestRecord, entities.ContactRequest]
}

// NewRequestStore creates a contact request store under the given key prefix.
func NewRequestStore(kv providers.KeyValueStore, prefix string) repositories.RequestRepository {
	return &RequestStore{requests: &collection[requestRecord, entities.ContactRequest]{
		kv:      kv,
		key:     CollectionKey(prefix, RequestsKey),
		convert: requestRecord.toEntity,
	}}
}

// Create appends a contact request.
func (s *RequestStore) Create(ctx context.Context, request *entities.ContactRequest) error {
	if request == nil {
		return apperrors.NewInternalError("request is nil", fmt.Errorf("request is nil"))
	}
	return s.requests.append(ctx, *request)
}

// List returns every contact request in stored order.
func (s *RequestStore) List(ctx context.Context) ([]entities.ContactRequest, error) {
	return s.requests.load(ctx)
}
