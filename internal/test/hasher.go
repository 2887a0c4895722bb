package test

import (
	"errors"
	"io"
	"log/slog"

	pkgAuth "github.com/polkiloo/qrorder/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied secret.
func (h HasherStub) Hash(secret string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(secret)
	}
	return "hash:" + secret, nil
}

// Compare validates secret against stored hash.
func (h HasherStub) Compare(hash string, secret string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, secret)
	}
	if hash != "hash:"+secret {
		return errors.New("mismatch")
	}
	return nil
}

// DiscardLogger returns logger that drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

var _ pkgAuth.SecretHasher = HasherStub{}
