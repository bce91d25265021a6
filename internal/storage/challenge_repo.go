package storage

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/manav03panchal/mitraa/internal/errors"
	"github.com/manav03panchal/mitraa/internal/logging"
	"github.com/manav03panchal/mitraa/internal/model"
)

// ChallengeRepo persists each user's challenges as one JSON array under
// "<namespace>_<userID>". It is the only writer of those keys.
type ChallengeRepo struct {
	store     Store
	namespace string
}

// NewChallengeRepo creates a new challenge repository.
func NewChallengeRepo(store Store, namespace string) *ChallengeRepo {
	if namespace == "" {
		namespace = model.DefaultNamespace
	}
	return &ChallengeRepo{store: store, namespace: namespace}
}

// Namespace returns the key namespace.
func (r *ChallengeRepo) Namespace() string {
	return r.namespace
}

// Key returns the collection key for a user.
func (r *ChallengeRepo) Key(userID string) string {
	return model.CollectionKey(r.namespace, userID)
}

// LoadAll returns every challenge stored for userID. A missing key yields an
// empty list; so does unparseable content, which is logged and otherwise
// treated as absent. Only an unreachable store is reported as an error.
func (r *ChallengeRepo) LoadAll(ctx context.Context, userID string) ([]*model.Challenge, error) {
	key := r.Key(userID)

	data, err := r.store.Get(ctx, key)
	if err != nil {
		if IsErrKeyNotFound(err) {
			return []*model.Challenge{}, nil
		}
		return nil, errors.NewStorageError("load", key, err)
	}

	var raw []*model.Challenge
	if err := json.Unmarshal(data, &raw); err != nil {
		logging.WarnContext(ctx, "discarding unreadable challenge collection",
			logging.KeyKey, key,
			logging.KeyError, errors.NewParseError(key, err))
		return []*model.Challenge{}, nil
	}

	challenges := make([]*model.Challenge, 0, len(raw))
	for _, c := range raw {
		if c == nil {
			continue
		}
		if c.DailyEntries == nil {
			c.DailyEntries = []model.DailyEntry{}
		}
		challenges = append(challenges, c)
	}

	logging.DebugContext(ctx, "loaded challenges", logging.KeyKey, key, logging.KeyCount, len(challenges))
	return challenges, nil
}

// Load returns the user's challenges wrapped in a collection.
func (r *ChallengeRepo) Load(ctx context.Context, userID string) (*model.Collection, error) {
	challenges, err := r.LoadAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	return model.NewCollection(r.namespace, userID, challenges), nil
}

// Save overwrites the collection stored under the collection's key.
func (r *ChallengeRepo) Save(ctx context.Context, c *model.Collection) error {
	key := c.GetKey()
	if key == "" {
		key = r.Key(c.UserID)
	}
	challenges := c.Challenges
	if challenges == nil {
		challenges = []*model.Challenge{}
	}

	data, err := json.Marshal(challenges)
	if err != nil {
		return errors.NewStorageError("encode", key, err)
	}

	if err := r.store.Set(ctx, key, data); err != nil {
		return errors.NewStorageError("save", key, err)
	}

	logging.DebugContext(ctx, "saved challenges", logging.KeyKey, key, logging.KeyCount, len(challenges))
	return nil
}

// Users lists the ids of every user with a stored collection, sorted.
func (r *ChallengeRepo) Users(ctx context.Context) ([]string, error) {
	keys, err := r.store.ListKeys(ctx, r.namespace+"_")
	if err != nil {
		return nil, errors.NewStorageError("list", r.namespace, err)
	}

	users := make([]string, 0, len(keys))
	for _, k := range keys {
		// the identity key shares the prefix when the namespace is "mitraa"
		if k == model.KeyIdentity {
			continue
		}
		if u, ok := model.UserFromKey(r.namespace, k); ok {
			users = append(users, u)
		}
	}
	sort.Strings(users)
	return users, nil
}
