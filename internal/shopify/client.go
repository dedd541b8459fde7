// Package shopify is a minimal Admin REST client: the products snapshot
// the matcher diffs against, and the create/inventory calls the upload
// step needs. Rate limits (429, call-limit header) are handled here so
// callers never see them.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const apiVersion = "2025-01"

type Client struct {
	domain   string
	token    string
	http     *http.Client
	log      zerolog.Logger
	throttle time.Duration // pause after each write call
}

func New(domain, token string, throttleMS int, log zerolog.Logger) *Client {
	return &Client{
		domain:   strings.TrimSpace(domain),
		token:    token,
		http:     &http.Client{Timeout: 60 * time.Second},
		log:      log,
		throttle: time.Duration(throttleMS) * time.Millisecond,
	}
}

// Configured reports whether credentials are present; handlers degrade to
// file-only mode when they are not.
func (c *Client) Configured() bool { return c.domain != "" && c.token != "" }

func (c *Client) base() string {
	return fmt.Sprintf("https://%s/admin/api/%s", c.domain, apiVersion)
}

var nextLinkRe = regexp.MustCompile(`<([^>]+)>;\s*rel="next"`)

// do issues one request with retry on 429 and transient errors, pacing
// writes via the call-limit header.
func (c *Client) do(ctx context.Context, method, url string, body []byte) (*http.Response, error) {
	backoff := 500 * time.Millisecond
	const maxRetries = 5
	for attempt := 1; ; attempt++ {
		var rd io.Reader
		if body != nil {
			rd = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, rd)
		if err != nil {
			return nil, err
		}
		req.Header.Set("X-Shopify-Access-Token", c.token)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			if attempt >= maxRetries {
				return nil, err
			}
			if err := sleep(ctx, backoff); err != nil {
				return nil, err
			}
			backoff = nextBackoff(backoff)
			continue
		}
		if resp.StatusCode == http.StatusTooManyRequests && attempt < maxRetries {
			wait := backoff
			if ra := resp.Header.Get("Retry-After"); ra != "" {
				if secs, err := strconv.ParseFloat(ra, 64); err == nil {
					wait = time.Duration(secs * float64(time.Second))
				}
			}
			resp.Body.Close()
			if err := sleep(ctx, wait); err != nil {
				return nil, err
			}
			backoff = nextBackoff(backoff)
			continue
		}
		if resp.StatusCode >= 400 {
			defer resp.Body.Close()
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			return nil, fmt.Errorf("shopify: %s %s: status %d: %s", method, url, resp.StatusCode, strings.TrimSpace(string(b)))
		}
		// pace when near the call limit, e.g. "72/80"
		if lim := resp.Header.Get("X-Shopify-Shop-Api-Call-Limit"); lim != "" {
			if used, capacity, ok := parseCallLimit(lim); ok && capacity > 0 && float64(used)/float64(capacity) > 0.85 {
				_ = sleep(ctx, 500*time.Millisecond)
			}
		}
		return resp, nil
	}
}

func nextBackoff(d time.Duration) time.Duration {
	d = d * 3 / 2
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func parseCallLimit(s string) (used, capacity int, ok bool) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	u, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	c, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	return u, c, err1 == nil && err2 == nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) (next string, err error) {
	resp, err := c.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return "", err
	}
	if m := nextLinkRe.FindStringSubmatch(resp.Header.Get("Link")); m != nil {
		next = m[1]
	}
	return next, nil
}

func (c *Client) writeJSON(ctx context.Context, method, path string, body, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	resp, err := c.do(ctx, method, c.base()+path, b)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return err
		}
	}
	if c.throttle > 0 {
		_ = sleep(ctx, c.throttle)
	}
	return nil
}
