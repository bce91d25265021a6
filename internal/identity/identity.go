// Package identity resolves the user id that scopes a challenge collection.
// There is no authentication: the id is either supplied explicitly or an
// anonymous id persisted on first use.
package identity

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/manav03panchal/mitraa/internal/errors"
	"github.com/manav03panchal/mitraa/internal/logging"
	"github.com/manav03panchal/mitraa/internal/model"
	"github.com/manav03panchal/mitraa/internal/storage"
	"github.com/manav03panchal/mitraa/internal/validate"
)

// Source describes where an identity came from.
type Source string

const (
	SourceFlag      Source = "flag"
	SourceEnv       Source = "env"
	SourcePersisted Source = "persisted"
	SourceCreated   Source = "created"
	SourceFallback  Source = "fallback"
)

// Identity is a resolved user id.
type Identity struct {
	UserID string `json:"user_id"`
	Source Source `json:"source"`
}

// Anonymous reports whether the id was generated rather than supplied.
func (i Identity) Anonymous() bool {
	return i.Source == SourcePersisted || i.Source == SourceCreated || i.Source == SourceFallback
}

// Resolver picks the user id in priority order: explicit flag, environment,
// then the anonymous id stored under model.KeyIdentity.
type Resolver struct {
	store storage.Store
	flag  string
	env   string
}

// NewResolver creates a resolver. flag and env may be empty.
func NewResolver(store storage.Store, flag, env string) *Resolver {
	return &Resolver{
		store: store,
		flag:  strings.TrimSpace(flag),
		env:   strings.TrimSpace(env),
	}
}

// Resolve returns the active identity, creating the anonymous id on first use.
// If the store cannot be read or written the shared "anonymous" id is used
// so the session can still proceed.
func (r *Resolver) Resolve(ctx context.Context) (Identity, error) {
	if r.flag != "" {
		if err := validate.UserID(r.flag); err != nil {
			return Identity{}, err
		}
		return Identity{UserID: r.flag, Source: SourceFlag}, nil
	}
	if r.env != "" {
		if err := validate.UserID(r.env); err != nil {
			return Identity{}, err
		}
		return Identity{UserID: r.env, Source: SourceEnv}, nil
	}

	data, err := r.store.Get(ctx, model.KeyIdentity)
	if err == nil {
		if id := strings.TrimSpace(string(data)); validate.UserID(id) == nil {
			return Identity{UserID: id, Source: SourcePersisted}, nil
		}
		logging.WarnContext(ctx, "ignoring malformed stored identity", logging.KeyKey, model.KeyIdentity)
	} else if !storage.IsErrKeyNotFound(err) {
		logging.WarnContext(ctx, "identity store unavailable, using shared anonymous id", logging.KeyError, err)
		return Identity{UserID: model.AnonymousUser, Source: SourceFallback}, nil
	}

	id, err := newAnonymousID()
	if err != nil {
		return Identity{}, err
	}
	if err := r.store.Set(ctx, model.KeyIdentity, []byte(id)); err != nil {
		logging.WarnContext(ctx, "could not persist anonymous id", logging.KeyError, errors.NewStorageError("save", model.KeyIdentity, err))
		return Identity{UserID: model.AnonymousUser, Source: SourceFallback}, nil
	}

	logging.ForUser(id).Info("created anonymous identity")
	return Identity{UserID: id, Source: SourceCreated}, nil
}

func newAnonymousID() (string, error) {
	u, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return model.AnonymousUser + "-" + u.String(), nil
}
