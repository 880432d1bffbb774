package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unixClient(path string) *http.Client {
	return &http.Client{
		Timeout: time.Second,
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
				var d net.Dialer
				return d.DialContext(ctx, "unix", path)
			},
		},
	}
}

func TestNewServer_EmptyAddress(t *testing.T) {
	srv, err := NewServer(http.NotFoundHandler(), config.Server{}, logger.Nop())

	assert.Nil(t, srv)
	assert.ErrorIs(t, err, ErrListen)
}

func TestListen_AddressInUse(t *testing.T) {
	first, err := listen("127.0.0.1:0")
	require.NoError(t, err)
	defer first.Close()

	_, err = listen(first.Addr().String())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrListen)
	assert.ErrorIs(t, err, ErrAddressInUse)
	assert.Contains(t, err.Error(), "Port "+first.Addr().String()+" is already in use")
}

func TestListen_UnixSocketInUse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.sock")

	first, err := listen("unix:" + path)
	require.NoError(t, err)
	defer first.Close()

	_, err = listen("unix:" + path)

	assert.ErrorIs(t, err, ErrAddressInUse)
	assert.Contains(t, err.Error(), "Pipe "+path)
}

func TestListen_Empty(t *testing.T) {
	_, err := listen("")
	assert.ErrorIs(t, err, ErrListen)
}

func TestRun_ServesUntilContextDone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.sock")
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "pong")
	})

	srv, err := NewServer(handler, config.Server{
		HTTPAddress:     "unix:" + path,
		RequestTimeout:  time.Second,
		ShutdownTimeout: time.Second,
	}, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	client := unixClient(path)
	require.Eventually(t, func() bool {
		resp, err := client.Get("http://accounts/ping")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && string(body) == "pong"
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}

	_, err = client.Get("http://accounts/ping")
	assert.Error(t, err)
}

func TestRun_ListenFailureReturnsImmediately(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	srv, err := NewServer(http.NotFoundHandler(), config.Server{HTTPAddress: busy.Addr().String()}, logger.Nop())
	require.NoError(t, err)

	err = srv.Run(context.Background())
	assert.ErrorIs(t, err, ErrAddressInUse)
}

func TestRun_RequestContextHasDeadline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.sock")
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Context().Deadline(); ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.WriteHeader(http.StatusTeapot)
	})

	srv, err := NewServer(handler, config.Server{HTTPAddress: "unix:" + path, RequestTimeout: time.Second}, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = srv.Run(ctx) }()

	client := unixClient(path)
	require.Eventually(t, func() bool {
		resp, err := client.Get("http://accounts/")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusNoContent
	}, 2*time.Second, 20*time.Millisecond)
}
