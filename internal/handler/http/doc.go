// Package http implements the REST transport of the account service.
//
// It wires chi routes to the account service and provides the middleware
// chain every request passes through: trace id propagation, access logging,
// response compression, bearer token authentication and role checks.
// Service errors are translated into HTTP statuses by a single mapper so that
// handlers stay free of status bookkeeping.
package http
