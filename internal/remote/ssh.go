// Package remote reads files on compute nodes through the ssh binary.
// BatchMode keeps unreachable hosts from hanging the UI on a password
// prompt; every command carries a connect timeout.
package remote

import (
	"bytes"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultTimeout = 5 * time.Second

// connectionErrorPattern matches SSH output that indicates the host itself
// was unreachable rather than the file being unreadable.
var connectionErrorPattern = regexp.MustCompile(`(?i)(connection timed out|no route to host|host is unreachable|connection refused|network is unreachable|could not resolve hostname|name or service not known)`)

// IsConnectionError reports whether SSH output indicates a connection failure.
func IsConnectionError(output string) bool {
	return connectionErrorPattern.MatchString(output)
}

// EscapeForSingleQuotes escapes a string for embedding in single quotes
// by replacing ' with '\'' (end quote, escaped quote, start quote).
func EscapeForSingleQuotes(s string) string {
	return strings.ReplaceAll(s, "'", `'\''`)
}

// Client runs read-only commands on remote hosts.
type Client struct {
	timeout time.Duration
	log     *zap.Logger
}

// NewClient builds a Client. A zero timeout uses the default.
func NewClient(timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{timeout: timeout, log: logger}
}

// run executes a command on host and returns stdout. Stderr is folded into
// the returned error.
func (c *Client) run(host, command string) ([]byte, error) {
	connectTimeout := int(c.timeout / time.Second)
	if connectTimeout < 1 {
		connectTimeout = 1
	}
	cmd := exec.Command("ssh",
		"-o", fmt.Sprintf("ConnectTimeout=%d", connectTimeout),
		"-o", "BatchMode=yes",
		"-o", "StrictHostKeyChecking=no",
		host, command)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		c.log.Debug("ssh command failed",
			zap.String("host", host),
			zap.String("command", command),
			zap.String("stderr", msg))
		if IsConnectionError(msg) {
			return nil, fmt.Errorf("ssh %s: connection failed: %s", host, msg)
		}
		return nil, fmt.Errorf("ssh %s: %s", host, msg)
	}
	return stdout.Bytes(), nil
}

// Readable checks whether path can be read on host.
func (c *Client) Readable(host, path string) error {
	quoted := EscapeForSingleQuotes(path)
	_, err := c.run(host, fmt.Sprintf("test -r '%s'", quoted))
	return err
}

// FileSize returns the size of path on host in bytes.
func (c *Client) FileSize(host, path string) (int64, error) {
	quoted := EscapeForSingleQuotes(path)
	out, err := c.run(host, fmt.Sprintf("wc -c < '%s'", quoted))
	if err != nil {
		return 0, err
	}
	size, err := strconv.ParseInt(strings.TrimSpace(string(out)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("ssh %s: parse size of %s: %w", host, path, err)
	}
	return size, nil
}

// ReadRange reads length bytes of path on host starting at offset.
func (c *Client) ReadRange(host, path string, offset, length int64) ([]byte, error) {
	quoted := EscapeForSingleQuotes(path)
	// tail -c +N is 1-based: +1 means "from the first byte".
	command := fmt.Sprintf("tail -c +%d '%s' | head -c %d", offset+1, quoted, length)
	return c.run(host, command)
}
