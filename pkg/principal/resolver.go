package principal

import (
	"errors"
	"net/http"
)

// Resolver maps a request to a principal.
// ErrNoCredentials means "not mine"; any other error means the credentials were bad.
type Resolver interface {
	Resolve(r *http.Request) (Principal, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(r *http.Request) (Principal, error)

func (f ResolverFunc) Resolve(r *http.Request) (Principal, error) {
	return f(r)
}

// Chain asks each resolver in turn. The first resolver that does not return
// ErrNoCredentials decides the outcome.
type Chain []Resolver

// NewChain builds a chain, skipping nil resolvers.
func NewChain(resolvers ...Resolver) Chain {
	c := make(Chain, 0, len(resolvers))
	for _, r := range resolvers {
		if r != nil {
			c = append(c, r)
		}
	}
	return c
}

func (c Chain) Resolve(r *http.Request) (Principal, error) {
	for _, res := range c {
		p, err := res.Resolve(r)
		if errors.Is(err, ErrNoCredentials) {
			continue
		}
		return p, err
	}
	return Principal{}, ErrNoCredentials
}
