package settings

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Key addresses a persisted setting value.
type Key struct {
	Module string
	ID     string
}

// String returns the dotted form <module>.<id>.
func (k Key) String() string {
	return k.Module + "." + k.ID
}

// Registration configures one key of the persisted store.
type Registration struct {
	Key            Key
	Name           string
	Hint           string
	Scope          Scope
	Config         bool // listed in the host's generic configuration view
	RequiresReload bool
	Type           ValueType
	Default        any
	Choices        []Choice
	Range          *Range
}

// Check coerces a value to the registered type and enforces choices and range.
func (r Registration) Check(value any) (any, error) {
	return constraint{Type: r.Type, Choices: r.Choices, Range: r.Range}.check(value)
}

// Store is the persisted key-value store the engine reads and writes through.
type Store interface {
	// Register configures a key and seeds its default when no value is stored.
	Register(ctx context.Context, reg Registration) error
	// Get returns the stored value and whether one exists.
	Get(ctx context.Context, key Key) (any, bool, error)
	// Set type checks and stores a value.
	Set(ctx context.Context, key Key, value any) error
}

// Partition is the storage partition a value lives in.
type Partition struct {
	Scope  Scope
	Client string
}

// StorageKey returns a flat key for backends without a partition column.
func (p Partition) StorageKey(key Key) string {
	if p.Scope == ScopeClient {
		return string(p.Scope) + "/" + p.Client + "/" + key.String()
	}

	return string(p.Scope) + "/" + key.String()
}

// Backend persists encoded values.
type Backend interface {
	Load(ctx context.Context, p Partition, key Key) ([]byte, bool, error)
	Save(ctx context.Context, p Partition, key Key, data []byte) error
}

type clientKey struct{}

// WithClient attaches the identity client scoped settings are partitioned by.
func WithClient(ctx context.Context, client string) context.Context {
	return context.WithValue(ctx, clientKey{}, client)
}

// ClientFromContext returns the client identity attached by WithClient.
func ClientFromContext(ctx context.Context) string {
	client, _ := ctx.Value(clientKey{}).(string)
	return client
}

// PersistedStore implements Store on top of a Backend. Values are JSON encoded.
type PersistedStore struct {
	backend Backend

	mu         sync.RWMutex
	registered map[Key]Registration
}

// NewStore creates a store writing through backend.
func NewStore(backend Backend) *PersistedStore {
	return &PersistedStore{
		backend:    backend,
		registered: make(map[Key]Registration),
	}
}

// Register implements Store. World scoped keys are seeded with their default
// when absent; client scoped keys resolve to the default until first written.
func (s *PersistedStore) Register(ctx context.Context, reg Registration) error {
	def, err := reg.Check(reg.Default)
	if err != nil {
		return errors.Wrapf(ErrInvalidDefinition, "%s: default: %v", reg.Key, err)
	}

	reg.Default = def
	if reg.Scope == "" {
		reg.Scope = ScopeWorld
	}

	s.mu.Lock()
	s.registered[reg.Key] = reg
	s.mu.Unlock()

	if reg.Scope == ScopeClient {
		return nil
	}

	p := Partition{Scope: reg.Scope}

	_, found, err := s.backend.Load(ctx, p, reg.Key)
	if err != nil {
		return errors.Wrapf(ErrStoreUnavailable, "load %s: %v", reg.Key, err)
	}

	if found {
		return nil
	}

	data, err := json.Marshal(def)
	if err != nil {
		return errors.Wrapf(err, "encode default of %s", reg.Key)
	}

	if err = s.backend.Save(ctx, p, reg.Key, data); err != nil {
		return errors.Wrapf(ErrStoreUnavailable, "seed %s: %v", reg.Key, err)
	}

	log.Debug().Str("key", reg.Key.String()).Interface("default", def).Msg("seeded setting default")

	return nil
}

// Registration returns the registration of a key.
func (s *PersistedStore) Registration(key Key) (Registration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reg, ok := s.registered[key]

	return reg, ok
}

// Get implements Store. A stored value that no longer passes the type check
// is reported as absent.
func (s *PersistedStore) Get(ctx context.Context, key Key) (any, bool, error) {
	reg, ok := s.Registration(key)
	if !ok {
		return nil, false, errors.Wrapf(ErrNotRegistered, "%s", key)
	}

	p, err := partition(ctx, reg.Scope)
	if errors.Is(err, ErrNoClient) {
		return nil, false, nil
	}

	data, found, err := s.backend.Load(ctx, p, key)
	if err != nil {
		return nil, false, errors.Wrapf(ErrStoreUnavailable, "load %s: %v", key, err)
	}

	if !found {
		return nil, false, nil
	}

	var raw any
	if err = json.Unmarshal(data, &raw); err != nil {
		log.Warn().Err(err).Str("key", key.String()).Msg("stored setting value is not decodable")
		return nil, false, nil
	}

	value, err := reg.Check(raw)
	if err != nil {
		log.Warn().Err(err).Str("key", key.String()).Msg("stored setting value does not match its registration")
		return nil, false, nil
	}

	return value, true, nil
}

// Set implements Store.
func (s *PersistedStore) Set(ctx context.Context, key Key, value any) error {
	reg, ok := s.Registration(key)
	if !ok {
		return errors.Wrapf(ErrNotRegistered, "%s", key)
	}

	v, err := reg.Check(value)
	if err != nil {
		return err
	}

	p, err := partition(ctx, reg.Scope)
	if err != nil {
		return err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encode %s", key)
	}

	if err = s.backend.Save(ctx, p, key, data); err != nil {
		return errors.Wrapf(ErrStoreUnavailable, "save %s: %v", key, err)
	}

	return nil
}

func partition(ctx context.Context, scope Scope) (Partition, error) {
	if scope != ScopeClient {
		return Partition{Scope: ScopeWorld}, nil
	}

	client := ClientFromContext(ctx)
	if client == "" {
		return Partition{}, ErrNoClient
	}

	return Partition{Scope: ScopeClient, Client: client}, nil
}
