package server

import "context"

// Server defines the lifecycle contract of the transport server.
type Server interface {
	// Run binds the listen address and serves requests until ctx is done,
	// then shuts down gracefully. A listen failure is returned immediately.
	Run(ctx context.Context) error
}
