//go:build wireinject

package api

import (
	"context"
	"testing"

	"github.com/google/wire"
	"github.com/in-toto/go-vts/cryptoutil"
	"github.com/in-toto/go-vts/internal/config"
)

// INJECTORS - https://github.com/google/wire/blob/main/docs/guide.md#injectors

var serviceSet = wire.NewSet(
	newServerWithComponents,
	NewClock,
	NewService,
)

// InitNewServer returns a new Server whose key pair comes from the configured
// key provider.
func InitNewServer(
	_ context.Context,
	_ config.Config,
) (*Server, error) {
	wire.Build(serviceSet, NewSignerProvider, NewKeyPair, NoTest)
	return new(Server), nil
}

// InitNewServerWithKeyPair returns a new Server that signs with kp. Passing a
// *testing.T switches the clock to a mock.
func InitNewServerWithKeyPair(
	_ config.Config,
	_ *cryptoutil.KeyPair,
	t ...*testing.T,
) (*Server, error) {
	wire.Build(serviceSet)
	return new(Server), nil
}
