// Package dnscheck answers one question: does a mail domain exist in DNS?
// It is the cheap local pre-filter that runs before the paid remote
// verification call.
package dnscheck

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

// Resolver is an interface for DNS lookups, allowing dependency injection
// for testing with mock implementations.
type Resolver interface {
	// LookupHost returns the addresses for the given host.
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// DefaultResolver wraps the standard library's net package.
type DefaultResolver struct{}

// LookupHost implements Resolver.LookupHost using net.DefaultResolver.
func (r *DefaultResolver) LookupHost(ctx context.Context, host string) ([]string, error) {
	return net.DefaultResolver.LookupHost(ctx, host)
}

// CustomResolver uses a specific DNS server with a timeout and no retries.
type CustomResolver struct {
	server string
}

// NewCustomResolver creates a resolver that uses the specified DNS server.
// The server should be in the format "host:port" (e.g., "1.1.1.1:53").
func NewCustomResolver(server string) *CustomResolver {
	return &CustomResolver{
		server: server,
	}
}

// LookupHost implements Resolver.LookupHost using a custom DNS server.
func (r *CustomResolver) LookupHost(ctx context.Context, host string) ([]string, error) {
	resolver := &net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, network, address string) (net.Conn, error) {
			d := net.Dialer{
				Timeout: 2 * time.Second,
			}
			return d.DialContext(ctx, "udp", r.server)
		},
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return resolver.LookupHost(ctx, host)
}

// Service checks DNS presence of mail domains.
type Service struct {
	resolver Resolver
}

// NewService creates a DNS check service with the default resolver.
func NewService() *Service {
	return &Service{
		resolver: &DefaultResolver{},
	}
}

// NewServiceWithResolver creates a DNS check service with a custom resolver.
// This is useful for testing with mock resolvers.
func NewServiceWithResolver(resolver Resolver) *Service {
	return &Service{
		resolver: resolver,
	}
}

// HostExists reports whether the domain resolves to at least one address.
//
// A definitive "no such host" answer returns (false, nil); any other lookup
// failure (server unreachable, timeout) returns an error so the caller can
// distinguish "the domain does not exist" from "we could not find out".
func (s *Service) HostExists(ctx context.Context, domain string) (bool, error) {
	if domain == "" {
		return false, fmt.Errorf("domain cannot be empty")
	}

	addrs, err := s.resolver.LookupHost(ctx, domain)
	if err != nil {
		if isNotFoundError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to resolve %s: %w", domain, err)
	}

	return len(addrs) > 0, nil
}

// isNotFoundError checks if the error indicates a DNS record was not found.
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.IsNotFound
	}

	return false
}
