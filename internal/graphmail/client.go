// Package graphmail pulls the distributor feed out of a mailbox: the
// newest message matching a subject, its first ZIP attachment, and the
// spreadsheet inside.
package graphmail

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2/clientcredentials"
)

const graphBase = "https://graph.microsoft.com/v1.0"

type Client struct {
	user string
	http *http.Client
	log  zerolog.Logger
}

// New builds a Graph client with app-only (client credentials) auth.
func New(ctx context.Context, tenantID, clientID, secret, user string, log zerolog.Logger) *Client {
	cc := clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: secret,
		TokenURL:     fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", tenantID),
		Scopes:       []string{"https://graph.microsoft.com/.default"},
	}
	return &Client{user: user, http: cc.Client(ctx), log: log}
}

type message struct {
	ID       string `json:"id"`
	Subject  string `json:"subject"`
	Received string `json:"receivedDateTime"`
}

type messagesPage struct {
	Value []message `json:"value"`
}

type attachment struct {
	Type         string `json:"@odata.type"`
	Name         string `json:"name"`
	ContentBytes string `json:"contentBytes"`
}

type attachmentsPage struct {
	Value []attachment `json:"value"`
}

// FetchFeed finds the newest message whose subject contains subjectPart,
// takes its first .zip attachment, and extracts the first spreadsheet
// inside into dataDir. Returns the extracted file path.
func (c *Client) FetchFeed(ctx context.Context, subjectPart, dataDir string) (string, error) {
	msg, err := c.newestMessage(ctx, subjectPart)
	if err != nil {
		return "", err
	}
	c.log.Info().Str("subject", msg.Subject).Str("received", msg.Received).Msg("feed mail found")

	name, data, err := c.zipAttachment(ctx, msg.ID)
	if err != nil {
		return "", err
	}
	path, err := extractSpreadsheet(data, dataDir)
	if err != nil {
		return "", fmt.Errorf("graphmail: attachment %q: %w", name, err)
	}
	c.log.Info().Str("file", path).Msg("feed extracted")
	return path, nil
}

func (c *Client) newestMessage(ctx context.Context, subjectPart string) (message, error) {
	q := url.Values{}
	q.Set("$search", fmt.Sprintf("%q", "subject:"+subjectPart))
	q.Set("$top", "10")
	q.Set("$select", "id,subject,receivedDateTime")
	u := fmt.Sprintf("%s/users/%s/messages?%s", graphBase, url.PathEscape(c.user), q.Encode())

	var page messagesPage
	if err := c.getJSON(ctx, u, &page); err != nil {
		return message{}, err
	}
	var best message
	for _, m := range page.Value {
		if !strings.Contains(strings.ToLower(m.Subject), strings.ToLower(subjectPart)) {
			continue
		}
		if best.ID == "" || m.Received > best.Received {
			best = m
		}
	}
	if best.ID == "" {
		return message{}, fmt.Errorf("graphmail: no message matching subject %q", subjectPart)
	}
	return best, nil
}

func (c *Client) zipAttachment(ctx context.Context, msgID string) (name string, data []byte, err error) {
	u := fmt.Sprintf("%s/users/%s/messages/%s/attachments", graphBase, url.PathEscape(c.user), msgID)
	var page attachmentsPage
	if err := c.getJSON(ctx, u, &page); err != nil {
		return "", nil, err
	}
	for _, a := range page.Value {
		if !strings.HasSuffix(strings.ToLower(a.Name), ".zip") {
			continue
		}
		if !strings.Contains(a.Type, "fileAttachment") {
			continue
		}
		b, err := base64.StdEncoding.DecodeString(a.ContentBytes)
		if err != nil {
			return "", nil, fmt.Errorf("graphmail: decode attachment %q: %w", a.Name, err)
		}
		return a.Name, b, nil
	}
	return "", nil, fmt.Errorf("graphmail: message has no zip attachment")
}

// extractSpreadsheet writes the first .csv/.xlsx/.xls entry of the
// archive into dir, flattening any path inside the zip.
func extractSpreadsheet(zipData []byte, dir string) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(zipData), int64(len(zipData)))
	if err != nil {
		return "", err
	}
	for _, f := range zr.File {
		ext := strings.ToLower(filepath.Ext(f.Name))
		if ext != ".csv" && ext != ".xlsx" && ext != ".xls" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			rc.Close()
			return "", err
		}
		dst := filepath.Join(dir, filepath.Base(f.Name))
		out, err := os.Create(dst)
		if err != nil {
			rc.Close()
			return "", err
		}
		_, cErr := io.Copy(out, rc)
		rc.Close()
		if err := out.Close(); cErr == nil {
			cErr = err
		}
		if cErr != nil {
			return "", cErr
		}
		return dst, nil
	}
	return "", fmt.Errorf("zip has no spreadsheet entry")
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("graphmail: GET %s: status %d: %s", u, resp.StatusCode, strings.TrimSpace(string(b)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
