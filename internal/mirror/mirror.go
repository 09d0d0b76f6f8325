// Package mirror keeps a value in the local store and mirrors it to a remote
// per-user record.
//
// The local tier is the source of truth. The remote tier is written after
// every local write when a session exists, and read only to seed the local
// tier when it has no value for the signed-in user. Remote failures are
// logged, never returned.
package mirror

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/pharmacare-storefront/internal/infrastructure/localstore"
	"github.com/rs/zerolog"
)

// RemoteRecord is one field of the remote user record.
type RemoteRecord[T any] interface {
	// Pull returns the field and whether it is populated
	Pull(ctx context.Context, userID string) (T, bool, error)

	// Push overwrites the field
	Push(ctx context.Context, userID string, v T) error
}

// SessionSource reports the signed-in user, if any.
type SessionSource interface {
	UserID(ctx context.Context) (string, bool)
}

// Repository is a two-tier repository for one local key. The user a local
// value belongs to is kept beside it under "<key>:owner"; a value owned by
// another user is treated as absent. A guest value (no owner) is adopted by
// the next user who signs in.
type Repository[T any] struct {
	local    localstore.Store
	key      string
	ownerKey string
	remote   RemoteRecord[T]
	session  SessionSource
	logger   zerolog.Logger
}

func New[T any](local localstore.Store, key string, remote RemoteRecord[T], session SessionSource, logger zerolog.Logger) *Repository[T] {
	return &Repository[T]{
		local:    local,
		key:      key,
		ownerKey: OwnerKey(key),
		remote:   remote,
		session:  session,
		logger:   logger.With().Str("key", key).Logger(),
	}
}

// OwnerKey is the local key recording which user the value under key belongs to.
func OwnerKey(key string) string {
	return key + ":owner"
}

// Load returns the local value, seeding it from the remote record when the
// local tier has nothing for the signed-in user. With neither it returns the
// zero value.
func (r *Repository[T]) Load(ctx context.Context) (T, error) {
	var zero T
	userID, signedIn := r.userID(ctx)

	v, ok, err := localstore.GetJSON[T](ctx, r.local, r.key)
	if err != nil {
		r.logger.Warn().Err(err).Msg("local value unreadable, ignoring it")
	}
	if ok {
		owner, _, err := r.local.Get(ctx, r.ownerKey)
		switch {
		case err != nil:
			r.logger.Warn().Err(err).Msg("local owner unreadable, ignoring local value")
		case owner == userID:
			return v, nil
		case owner == "":
			if err := r.setOwner(ctx, userID); err != nil {
				r.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to adopt guest value")
			}
			return v, nil
		default:
			r.logger.Debug().Str("owner", owner).Str("user_id", userID).Msg("local value belongs to another user")
		}
	}

	if !signedIn {
		return zero, nil
	}

	remote, populated, err := r.remote.Pull(ctx, userID)
	if err != nil {
		r.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to read remote record")
		return zero, nil
	}
	if !populated {
		return zero, nil
	}

	if err := r.store(ctx, remote, userID); err != nil {
		r.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to seed local value from remote")
	}
	return remote, nil
}

// Save writes v locally, then mirrors it. Only the local write can fail.
func (r *Repository[T]) Save(ctx context.Context, v T) error {
	userID, _ := r.userID(ctx)
	if err := r.store(ctx, v, userID); err != nil {
		return err
	}
	r.mirror(ctx, v)
	return nil
}

// Clear empties the value, then mirrors the zero value. While signed in the
// empty value is kept locally so a stale remote record cannot seed it again.
func (r *Repository[T]) Clear(ctx context.Context) error {
	userID, signedIn := r.userID(ctx)
	if !signedIn {
		if err := r.local.Remove(ctx, r.key); err != nil {
			return fmt.Errorf("failed to remove %s locally: %w", r.key, err)
		}
		return r.setOwner(ctx, "")
	}

	if err := r.local.Set(ctx, r.key, emptyJSON[T]()); err != nil {
		return fmt.Errorf("failed to clear %s locally: %w", r.key, err)
	}
	if err := r.setOwner(ctx, userID); err != nil {
		return err
	}
	var zero T
	r.mirror(ctx, zero)
	return nil
}

// store writes the value before its owner.
func (r *Repository[T]) store(ctx context.Context, v T, owner string) error {
	if err := localstore.SetJSON(ctx, r.local, r.key, v); err != nil {
		return fmt.Errorf("failed to persist %s locally: %w", r.key, err)
	}
	return r.setOwner(ctx, owner)
}

func (r *Repository[T]) setOwner(ctx context.Context, owner string) error {
	var err error
	if owner == "" {
		err = r.local.Remove(ctx, r.ownerKey)
	} else {
		err = r.local.Set(ctx, r.ownerKey, owner)
	}
	if err != nil {
		return fmt.Errorf("failed to record owner of %s: %w", r.key, err)
	}
	return nil
}

func (r *Repository[T]) mirror(ctx context.Context, v T) {
	userID, signedIn := r.userID(ctx)
	if !signedIn {
		return
	}
	if err := r.remote.Push(ctx, userID, v); err != nil {
		r.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to mirror to remote record")
	}
}

func (r *Repository[T]) userID(ctx context.Context) (string, bool) {
	if r.session == nil || r.remote == nil {
		return "", false
	}
	return r.session.UserID(ctx)
}

// emptyJSON is the encoding of an empty T: "[]" for slices, "{}" for maps
// and structs.
func emptyJSON[T any]() string {
	for _, candidate := range []string{"[]", "{}"} {
		var v T
		if json.Unmarshal([]byte(candidate), &v) == nil {
			return candidate
		}
	}
	return "null"
}
