// Package storage provides the string key-value stores that back user history.
// They play the role browser local storage plays for a single-page client.
package storage

import (
	"context"
)

// Storage is a string key-value store. A missing key is reported as ok=false,
// never as an error.
type Storage interface {
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

type scoped struct {
	inner  Storage
	prefix string
}

// Scoped namespaces every key of s under prefix.
func Scoped(s Storage, prefix string) Storage {
	return &scoped{inner: s, prefix: prefix + ":"}
}

func (s *scoped) GetItem(ctx context.Context, key string) (string, bool, error) {
	return s.inner.GetItem(ctx, s.prefix+key)
}

func (s *scoped) SetItem(ctx context.Context, key, value string) error {
	return s.inner.SetItem(ctx, s.prefix+key, value)
}

func (s *scoped) RemoveItem(ctx context.Context, key string) error {
	return s.inner.RemoveItem(ctx, s.prefix+key)
}
