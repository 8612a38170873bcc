package venues

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store is the key-value gateway over the venue table, keyed by venueID.
type Store interface {
	// Put writes v unconditionally, replacing any record with the same key.
	Put(ctx context.Context, v Venue) error
	// Get returns the record for id. The boolean is false when no record
	// exists; that case is not an error.
	Get(ctx context.Context, id string) (Venue, bool, error)
	// Delete removes the record for id. Deleting an absent key succeeds.
	Delete(ctx context.Context, id string) error
	// ScanAll returns every record in the table in no particular order.
	ScanAll(ctx context.Context) ([]Venue, error)
}

// IDFunc generates venue identifiers.
type IDFunc func() string

// Service implements the venue operations on top of a Store.
type Service struct {
	store  Store
	newID  IDFunc
	logger *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithIDFunc replaces the default UUIDv4 generator.
func WithIDFunc(fn IDFunc) Option {
	return func(s *Service) {
		s.newID = fn
	}
}

// NewService creates a new venue service
func NewService(store Store, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		store:  store,
		newID:  uuid.NewString,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create stores a new venue under a freshly generated ID and returns it.
func (s *Service) Create(ctx context.Context, in Input) (Venue, error) {
	if err := in.Validate(); err != nil {
		return Venue{}, err
	}

	venue := in.withID(s.newID())
	if err := s.store.Put(ctx, venue); err != nil {
		s.logger.Error("Failed to create venue", zap.String("venueID", venue.VenueID), zap.Error(err))
		return Venue{}, storeUnavailable("create venue", err)
	}

	s.logger.Debug("Created venue", zap.String("venueID", venue.VenueID))
	return venue, nil
}

// Get returns the venue stored under id.
func (s *Service) Get(ctx context.Context, id string) (Venue, error) {
	venue, err := s.lookup(ctx, id, "retrieve venue")
	if err != nil {
		return Venue{}, err
	}
	return venue, nil
}

// List returns every stored venue. An empty table yields an empty slice.
func (s *Service) List(ctx context.Context) ([]Venue, error) {
	list, err := s.store.ScanAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list venues", zap.Error(err))
		return nil, storeUnavailable("retrieve venues", err)
	}
	if list == nil {
		list = []Venue{}
	}

	s.logger.Debug("Listed venues", zap.Int("count", len(list)))
	return list, nil
}

// Update replaces every field of an existing venue. It never creates a
// record: an unknown id fails with KindNotFound.
func (s *Service) Update(ctx context.Context, id string, in Input) (Venue, error) {
	if err := in.Validate(); err != nil {
		return Venue{}, err
	}
	if _, err := s.lookup(ctx, id, "update venue"); err != nil {
		return Venue{}, err
	}

	venue := in.withID(id)
	if err := s.store.Put(ctx, venue); err != nil {
		s.logger.Error("Failed to update venue", zap.String("venueID", id), zap.Error(err))
		return Venue{}, storeUnavailable("update venue", err)
	}

	s.logger.Debug("Updated venue", zap.String("venueID", id))
	return venue, nil
}

// Delete removes an existing venue. Deleting an id that is not stored,
// including one deleted earlier, fails with KindNotFound.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.lookup(ctx, id, "delete venue"); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete venue", zap.String("venueID", id), zap.Error(err))
		return storeUnavailable("delete venue", err)
	}

	s.logger.Debug("Deleted venue", zap.String("venueID", id))
	return nil
}

// lookup fetches id and turns absence into a KindNotFound error. action
// prefixes the message of store failures.
func (s *Service) lookup(ctx context.Context, id, action string) (Venue, error) {
	venue, ok, err := s.store.Get(ctx, id)
	if err != nil {
		s.logger.Error("Failed to read venue", zap.String("venueID", id), zap.Error(err))
		return Venue{}, storeUnavailable(action, err)
	}
	if !ok {
		return Venue{}, notFound(id)
	}
	return venue, nil
}
