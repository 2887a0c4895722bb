package auth

import "go.uber.org/fx"

// Module provides hashing primitives via fx.
var Module = fx.Provide(newSecretHasher)

func newSecretHasher() SecretHasher {
	return NewBcryptHasher(0)
}
