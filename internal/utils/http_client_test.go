// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient(t *testing.T) {
	client := NewHTTPClient("http://localhost:3000", 5*time.Second)

	require.NotNil(t, client)
	require.NotNil(t, client.Client)
	assert.Equal(t, "http://localhost:3000", client.BaseURL)
	assert.Equal(t, "application/json", client.Header.Get("Accept"))
	assert.NotNil(t, client.R())
}

func TestNewHTTPClient_Independence(t *testing.T) {
	client1 := NewHTTPClient("http://a.example.com", 0)
	client2 := NewHTTPClient("http://b.example.com", 0)

	assert.NotSame(t, client1.Client, client2.Client)
}
