// Package memcache queries a memcached server for its statistics snapshot
// over the text protocol. It issues exactly one "stats" request per call.
package memcache

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gorewood/devtools/internal/logging"
)

// Defaults for the stats connection.
const (
	DefaultAddr    = "127.0.0.1:11211"
	DefaultTimeout = 100 * time.Second
)

// ErrNoStats is returned when the server could not be reached or sent no statistics.
var ErrNoStats = errors.New("no stats returned from memcached server")

// Client talks to a single memcached server.
type Client struct {
	Addr    string
	Timeout time.Duration
	Log     logrus.FieldLogger
}

// NewClient returns a Client for addr with the given timeout; blank or
// non-positive values fall back to the defaults.
func NewClient(addr string, timeout time.Duration, log logrus.FieldLogger) *Client {
	if strings.TrimSpace(addr) == "" {
		addr = DefaultAddr
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{Addr: addr, Timeout: timeout, Log: log}
}

// Stats fetches the general-purpose statistics. Connection failures and an
// empty reply both wrap ErrNoStats; protocol errors reported by the server
// do not.
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	log := logging.OrDiscard(c.Log).WithField("addr", c.Addr)

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	dialer := net.Dialer{Timeout: timeout}
	log.Debug("dial memcached")
	conn, err := dialer.DialContext(ctx, "tcp", c.Addr)
	if err != nil {
		log.WithError(err).Debug("dial failed")
		return nil, fmt.Errorf("%w: %w", ErrNoStats, err)
	}
	defer conn.Close() //nolint:errcheck // read-only exchange, nothing to flush

	deadline := time.Now().Add(timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return nil, fmt.Errorf("setting connection deadline: %w", err)
	}

	if _, err := conn.Write([]byte("stats\r\n")); err != nil {
		return nil, fmt.Errorf("%w: sending stats request: %w", ErrNoStats, err)
	}

	stats, err := readStats(bufio.NewReader(conn))
	if err != nil {
		return nil, err
	}
	if len(stats) == 0 {
		return nil, ErrNoStats
	}
	log.WithField("count", len(stats)).Debug("received stats")
	return stats, nil
}

// readStats consumes "STAT <name> <value>" lines up to the terminating END.
func readStats(r *bufio.Reader) (Stats, error) {
	stats := make(Stats)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("%w: reading stats reply: %w", ErrNoStats, err)
		}
		line = strings.TrimRight(line, "\r\n")

		switch {
		case line == "END":
			return stats, nil
		case line == "ERROR":
			return nil, errors.New("memcached rejected the stats command")
		case strings.HasPrefix(line, "CLIENT_ERROR "), strings.HasPrefix(line, "SERVER_ERROR "):
			return nil, fmt.Errorf("memcached error: %s", line)
		case strings.HasPrefix(line, "STAT "):
			name, value, _ := strings.Cut(strings.TrimPrefix(line, "STAT "), " ")
			if name != "" {
				stats[name] = value
			}
		default:
			return nil, fmt.Errorf("unexpected line in stats reply: %q", line)
		}
	}
}
