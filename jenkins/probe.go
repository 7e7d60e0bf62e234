package jenkins

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

var (
	// ErrUnauthorized is returned when Jenkins rejects the username and token.
	ErrUnauthorized = errors.New("authentication failed, check username and API token")
	// ErrForbidden is returned when the user lacks read permission on Jenkins.
	ErrForbidden = errors.New("permission denied, check the user's permissions")
)

// StatusError reports an unexpected HTTP status from Jenkins.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %d from Jenkins", e.StatusCode)
}

// DefaultProbeTimeout bounds a probe when no timeout is configured.
const DefaultProbeTimeout = 5 * time.Second

// ProbeOptions controls the HTTP client used to reach Jenkins.
type ProbeOptions struct {
	// Timeout bounds both the connect phase and the whole request.
	Timeout time.Duration
	// InsecureSkipVerify disables TLS certificate checks, which corporate
	// proxies on VPN-gated networks frequently require.
	InsecureSkipVerify bool
}

func (o ProbeOptions) client() *http.Client {
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout: timeout,
		}).DialContext,
		TLSHandshakeTimeout: timeout,
		TLSClientConfig:     &tls.Config{InsecureSkipVerify: o.InsecureSkipVerify},
	}
	return &http.Client{Transport: transport, Timeout: timeout}
}

// Probe issues a single unauthenticated GET against url and discards the
// response. Any HTTP response counts as reachable; only transport failures
// are returned.
func Probe(ctx context.Context, url string, opts ProbeOptions) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	client := opts.client()
	defer client.CloseIdleConnections()

	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	io.Copy(io.Discard, io.LimitReader(res.Body, 64<<10))

	log.Debug().Str("url", url).Int("status", res.StatusCode).Msg("Jenkins answered probe")
	return nil
}

// CheckConnection performs an authenticated request against the Jenkins root
// API and reports what the server says about itself.
func CheckConnection(ctx context.Context, c RuntimeConfig, opts ProbeOptions) (ServerInfo, error) {
	url := strings.TrimRight(c.URL, "/") + "/api/json"

	log.Debug().Msgf("Sending request to: %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ServerInfo{}, err
	}
	req.Header.Add("authorization", c.authHeader())

	client := opts.client()
	defer client.CloseIdleConnections()

	res, err := client.Do(req)
	if err != nil {
		if IsTimeout(err) {
			return ServerInfo{}, errors.Wrap(err, "connection timed out, are you connected to the VPN?")
		}
		return ServerInfo{}, err
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusUnauthorized:
		return ServerInfo{}, ErrUnauthorized
	case res.StatusCode == http.StatusForbidden:
		return ServerInfo{}, ErrForbidden
	case res.StatusCode < 200 || res.StatusCode > 299:
		return ServerInfo{}, &StatusError{StatusCode: res.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, 4<<20))
	if err != nil {
		return ServerInfo{}, errors.Wrap(err, "error while receiving response from Jenkins")
	}

	info := ServerInfo{
		Version:      res.Header.Get("X-Jenkins"),
		Mode:         gjson.GetBytes(body, "mode").String(),
		NumExecutors: gjson.GetBytes(body, "numExecutors").Int(),
	}
	log.Debug().Str("version", info.Version).Str("mode", info.Mode).Msg("Received data from Jenkins")
	return info, nil
}

// IsTimeout reports whether err was caused by a network timeout.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
