// Package model defines the domain models for Mitraa.
package model

import "strings"

// Key constants for database key generation.
const (
	// DefaultNamespace prefixes every per-user challenge collection.
	DefaultNamespace = "mitraa_challenges"
	// KeyIdentity holds the persisted anonymous identity.
	KeyIdentity = "mitraa_identity"
	// AnonymousUser is the identity used when nothing else is known.
	AnonymousUser = "anonymous"
)

// CollectionKey returns the storage key for a user's challenge collection,
// for example "mitraa_challenges_anonymous".
func CollectionKey(namespace, userID string) string {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if userID == "" {
		userID = AnonymousUser
	}
	return namespace + "_" + userID
}

// UserFromKey extracts the user id from a collection key.
func UserFromKey(namespace, key string) (string, bool) {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	prefix := namespace + "_"
	if !strings.HasPrefix(key, prefix) || len(key) == len(prefix) {
		return "", false
	}
	return key[len(prefix):], true
}

// Collection is the stored unit: every challenge belonging to one user,
// written as a single JSON array.
type Collection struct {
	Key        string
	UserID     string
	Challenges []*Challenge
}

// GetKey returns the database key for this collection.
func (c *Collection) GetKey() string {
	return c.Key
}

// NewCollection creates a collection for the given user.
func NewCollection(namespace, userID string, challenges []*Challenge) *Collection {
	if challenges == nil {
		challenges = []*Challenge{}
	}
	return &Collection{
		Key:        CollectionKey(namespace, userID),
		UserID:     userID,
		Challenges: challenges,
	}
}

// Find returns the challenge with the given id, or nil.
func (c *Collection) Find(id string) *Challenge {
	for _, ch := range c.Challenges {
		if ch.ID == id {
			return ch
		}
	}
	return nil
}

// Replace swaps in a challenge with the same id. It reports false when
// no challenge with that id exists.
func (c *Collection) Replace(updated *Challenge) bool {
	for i, ch := range c.Challenges {
		if ch.ID == updated.ID {
			c.Challenges[i] = updated
			return true
		}
	}
	return false
}
