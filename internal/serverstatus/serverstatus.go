package serverstatus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/goccy/go-json"
	"github.com/pajbot/helperbot/pkg/utils"
)

// DefaultBaseURL is the public mcsrvstat.us API
const DefaultBaseURL = "https://api.mcsrvstat.us"

const (
	requestTimeout = 10 * time.Second
	maxElapsedTime = 15 * time.Second
)

// ErrUnavailable is returned when the status API answered with a non-200 status
var ErrUnavailable = errors.New("server status unavailable")

// Status is the subset of the mcsrvstat.us v2 response the bot uses
type Status struct {
	Online   bool   `json:"online"`
	Hostname string `json:"hostname"`
	Version  string `json:"version"`
	MOTD     struct {
		Clean []string `json:"clean"`
	} `json:"motd"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client

	newBackOff func() backoff.BackOff
}

func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.MaxElapsedTime = maxElapsedTime
			return b
		},
	}
}

// Lookup fetches the status of the Minecraft server at host.
// Network errors and 5xx answers are retried.
func (c *Client) Lookup(ctx context.Context, host string) (*Status, error) {
	endpoint := c.baseURL + "/2/" + url.PathEscape(host)

	operation := func() (*Status, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}

		res, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer res.Body.Close()

		if res.StatusCode >= http.StatusInternalServerError {
			return nil, fmt.Errorf("%w: status api returned %d", ErrUnavailable, res.StatusCode)
		}

		if res.StatusCode != http.StatusOK {
			return nil, backoff.Permanent(fmt.Errorf("%w: status api returned %d", ErrUnavailable, res.StatusCode))
		}

		body, err := io.ReadAll(res.Body)
		if err != nil {
			return nil, err
		}

		var status Status
		if err := json.Unmarshal(body, &status); err != nil {
			return nil, backoff.Permanent(fmt.Errorf("decoding status of %s: %w", host, err))
		}

		return &status, nil
	}

	status, err := backoff.RetryWithData(operation, backoff.WithContext(c.newBackOff(), ctx))
	if err != nil {
		return nil, fmt.Errorf("looking up %s: %w", host, err)
	}

	return status, nil
}

// Reply formats the answer to a status lookup of host
func Reply(host string, status *Status, err error) string {
	if err != nil {
		if errors.Is(err, ErrUnavailable) {
			return fmt.Sprintf("Could not get details for server %s", host)
		}
		return "Error Occurred"
	}

	if !status.Online {
		return fmt.Sprintf("The server %s is offline :(", host)
	}

	return fmt.Sprintf("%s is Online.\nCurrently hosting %s\nGame Ver: %s", status.Hostname, utils.EscapeMarkdown(strings.Join(status.MOTD.Clean, ",")), utils.EscapeMarkdown(status.Version))
}
