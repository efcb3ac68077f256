package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/amora-bot/amora/pkg/domain/interfaces"
	"github.com/amora-bot/amora/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// componentKeyPrefix namespaces correlation records against other key
// families sharing the same store.
const componentKeyPrefix = "component/"

// Correlation stashes typed interaction state under opaque ids so a command
// response and a later button click can share context across processes.
// Records are single use: Resolve consumes atomically, and with two racing
// resolutions exactly one wins while the loser observes types.ErrExpired.
type Correlation[T any] struct {
	kvs interfaces.KeyValueStore
	ttl time.Duration
}

// NewCorrelation creates a correlation store with a fixed record TTL
func NewCorrelation[T any](kvs interfaces.KeyValueStore, ttl time.Duration) *Correlation[T] {
	return &Correlation[T]{
		kvs: kvs,
		ttl: ttl,
	}
}

// Issue serializes state, mints a fresh id and stores the record with the
// configured TTL. The returned id is the only handle to the record.
func (x *Correlation[T]) Issue(ctx context.Context, state *T) (types.CorrelationID, error) {
	raw, err := json.Marshal(state)
	if err != nil {
		return "", goerr.Wrap(err, "failed to serialize interaction state")
	}

	id := types.NewCorrelationID()
	if err := x.kvs.Set(ctx, componentKeyPrefix+id.String(), raw, x.ttl); err != nil {
		return "", goerr.Wrap(err, "failed to stash interaction state")
	}

	return id, nil
}

// Resolve consumes the record atomically and returns its state. An absent key
// yields types.ErrExpired whether the record expired, was already consumed or
// never existed; callers must treat these identically.
func (x *Correlation[T]) Resolve(ctx context.Context, id types.CorrelationID) (*T, error) {
	if err := id.Validate(); err != nil {
		return nil, goerr.Wrap(types.ErrExpired, "malformed correlation id")
	}

	raw, err := x.kvs.GetDel(ctx, componentKeyPrefix+id.String())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve interaction state")
	}

	return decodeState[T](raw)
}

// Peek returns the record state without consuming it. It exists for
// pre-consume checks such as authorization; side effects must wait for a
// successful Resolve.
func (x *Correlation[T]) Peek(ctx context.Context, id types.CorrelationID) (*T, error) {
	if err := id.Validate(); err != nil {
		return nil, goerr.Wrap(types.ErrExpired, "malformed correlation id")
	}

	raw, err := x.kvs.Get(ctx, componentKeyPrefix+id.String())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read interaction state")
	}

	return decodeState[T](raw)
}

func decodeState[T any](raw []byte) (*T, error) {
	if raw == nil {
		return nil, goerr.Wrap(types.ErrExpired, "interaction state not found")
	}

	var state T
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, goerr.Wrap(err, "failed to deserialize interaction state")
	}
	return &state, nil
}
