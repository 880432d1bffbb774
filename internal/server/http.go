package server

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/go-chi/chi/v5/middleware"
)

const unixPrefix = "unix:"

func newHTTPServer(handler http.Handler, cfg config.Server) *http.Server {
	if cfg.RequestTimeout > 0 {
		handler = middleware.Timeout(cfg.RequestTimeout)(handler)
	}

	return &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// listen binds address. "unix:<path>" selects a unix socket, anything else
// is a TCP address.
func listen(address string) (net.Listener, error) {
	if address == "" {
		return nil, fmt.Errorf("%w: %w", ErrListen, errEmptyAddress)
	}

	network, addr := "tcp", address
	if path, ok := strings.CutPrefix(address, unixPrefix); ok {
		network, addr = "unix", path
	}

	listener, err := net.Listen(network, addr)
	if err != nil {
		return nil, describeListenError(network, addr, err)
	}

	return listener, nil
}

// describeListenError turns the common bind failures into readable messages
// like "Port :80 requires elevated privileges".
func describeListenError(network, addr string, err error) error {
	bind := "Port " + addr
	if network == "unix" {
		bind = "Pipe " + addr
	}

	switch {
	case errors.Is(err, syscall.EACCES):
		return fmt.Errorf("%w: %s %w", ErrListen, bind, ErrElevatedPrivileges)
	case errors.Is(err, syscall.EADDRINUSE):
		return fmt.Errorf("%w: %s %w", ErrListen, bind, ErrAddressInUse)
	default:
		return fmt.Errorf("%w: %s: %w", ErrListen, bind, err)
	}
}
