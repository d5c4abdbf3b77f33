// Package session persists the identity of the authenticated admin session
// in a single durable key-value slot, so a restart can restore it.
package session

import (
	"context"
	"errors"
)

// Key names the slot holding the serialized session user.
const Key = "currentUser"

var ErrNotFound = errors.New("session not found")

// Store is a single-slot key-value store. Load returns ErrNotFound when the
// slot is empty. Payloads are opaque bytes; callers decide the encoding.
type Store interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, payload []byte) error
	Delete(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
