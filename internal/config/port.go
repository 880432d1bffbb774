// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strconv"
	"strings"
)

// UnixAddressPrefix marks listen addresses that name a unix socket.
const UnixAddressPrefix = "unix:"

// NormalizePort converts a PORT value into a listen address.
//
//   - a non-negative number becomes ":<port>";
//   - a non-numeric value is a named pipe and becomes "unix:<path>";
//   - a negative number is rejected with [ErrInvalidPort].
func NormalizePort(val string) (string, error) {
	val = strings.TrimSpace(val)
	if val == "" {
		return "", fmt.Errorf("%w: empty value", ErrInvalidPort)
	}

	port, err := strconv.Atoi(val)
	if err != nil {
		return UnixAddressPrefix + val, nil
	}

	if port < 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidPort, port)
	}

	return ":" + strconv.Itoa(port), nil
}
