// Package server runs the HTTP transport of the account service.
//
// It binds the configured address (TCP or a unix socket given as
// "unix:<path>"), serves until its context is cancelled and then shuts the
// server down gracefully within the configured timeout.
package server
