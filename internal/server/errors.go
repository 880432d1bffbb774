// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	// ErrListen wraps every failure to bind the listen address.
	ErrListen = errors.New("cannot listen")

	// ErrElevatedPrivileges is returned when binding requires privileges the
	// process does not have.
	ErrElevatedPrivileges = errors.New("requires elevated privileges")

	// ErrAddressInUse is returned when the port or socket is already bound.
	ErrAddressInUse = errors.New("is already in use")

	errEmptyAddress = errors.New("empty listen address")
)
