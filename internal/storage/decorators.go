package storage

import (
	"context"
	"fmt"
	"strings"
)

// Cipher seals and opens stored values
type Cipher interface {
	EncryptString(plaintext string) (string, error)
	DecryptString(ciphertext string) (string, error)
}

type encryptedStore struct {
	Store
	cipher Cipher
}

// Encrypted wraps a store so values are sealed at rest. Keys are left in the
// clear so prefix listing keeps working.
func Encrypted(store Store, cipher Cipher) Store {
	return &encryptedStore{Store: store, cipher: cipher}
}

func (s *encryptedStore) Get(ctx context.Context, key string) (string, error) {
	sealed, err := s.Store.Get(ctx, key)
	if err != nil {
		return "", err
	}

	value, err := s.cipher.DecryptString(sealed)
	if err != nil {
		return "", fmt.Errorf("%w: failed to decrypt value for %s: %v", ErrCorrupt, key, err)
	}
	return value, nil
}

func (s *encryptedStore) Set(ctx context.Context, key, value string) error {
	sealed, err := s.cipher.EncryptString(value)
	if err != nil {
		return fmt.Errorf("failed to encrypt value for %s: %w", key, err)
	}
	return s.Store.Set(ctx, key, sealed)
}

type namespacedStore struct {
	Store
	prefix string
}

// Namespaced prepends prefix + ":" to every key so several deployments can
// share one backend. An empty prefix returns the store unchanged.
func Namespaced(store Store, prefix string) Store {
	if prefix == "" {
		return store
	}
	return &namespacedStore{Store: store, prefix: prefix + ":"}
}

func (s *namespacedStore) Get(ctx context.Context, key string) (string, error) {
	return s.Store.Get(ctx, s.prefix+key)
}

func (s *namespacedStore) Set(ctx context.Context, key, value string) error {
	return s.Store.Set(ctx, s.prefix+key, value)
}

func (s *namespacedStore) Delete(ctx context.Context, key string) error {
	return s.Store.Delete(ctx, s.prefix+key)
}

func (s *namespacedStore) List(ctx context.Context, prefix string) ([]string, error) {
	keys, err := s.Store.List(ctx, s.prefix+prefix)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, strings.TrimPrefix(k, s.prefix))
	}
	return out, nil
}
