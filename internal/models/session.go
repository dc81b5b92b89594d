package models

import (
	"context"
	"encoding/json"
	"errors"

	"tdash/internal/storage"
)

// SessionStore keeps the user profile blob next to the board
type SessionStore struct {
	kv storage.KV
}

func NewSessionStore(kv storage.KV) *SessionStore {
	return &SessionStore{kv: kv}
}

func (ss *SessionStore) SaveUser(ctx context.Context, user User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return ss.kv.Put(ctx, storage.KeyUser, data)
}

func (ss *SessionStore) GetUser(ctx context.Context) (User, error) {
	data, err := ss.kv.Get(ctx, storage.KeyUser)
	if errors.Is(err, storage.ErrNotFound) {
		return User{}, ErrNoUser
	}
	if err != nil {
		return User{}, err
	}

	var user User
	if err := json.Unmarshal(data, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// ClearUser forgets the profile; clearing twice is not an error
func (ss *SessionStore) ClearUser(ctx context.Context) error {
	return ss.kv.Delete(ctx, storage.KeyUser)
}
