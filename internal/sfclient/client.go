package sfclient

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/locvowork/objectdoc/internal/logger"
)

const DefaultAPIVersion = "59.0"

// Credentials are the user login values. The security token is appended
// to the password as the platform expects.
type Credentials struct {
	Username      string
	Password      string
	SecurityToken string
	LoginURL      string
}

// Client talks to one authenticated org over REST and the Metadata API.
// Calls are issued one at a time.
type Client struct {
	instanceURL string
	metadataURL string
	sessionID   string
	cfg         *config
}

// NewClient builds a client from an existing session.
func NewClient(instanceURL, sessionID string, opts ...Option) *Client {
	cfg := applyOptions(opts)
	instanceURL = strings.TrimRight(instanceURL, "/")
	return &Client{
		instanceURL: instanceURL,
		metadataURL: fmt.Sprintf("%s/services/Soap/m/%s", instanceURL, cfg.apiVersion),
		sessionID:   sessionID,
		cfg:         cfg,
	}
}

func (c *Client) InstanceURL() string { return c.instanceURL }

func (c *Client) APIVersion() string { return c.cfg.apiVersion }

const loginEnvelope = `<?xml version="1.0" encoding="utf-8"?>
<env:Envelope xmlns:xsd="http://www.w3.org/2001/XMLSchema" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xmlns:env="http://schemas.xmlsoap.org/soap/envelope/">
<env:Body><n1:login xmlns:n1="urn:partner.soap.sforce.com"><n1:username>%s</n1:username><n1:password>%s</n1:password></n1:login></env:Body>
</env:Envelope>`

type loginResponse struct {
	Body struct {
		Fault  *SOAPFault `xml:"Fault"`
		Result struct {
			ServerURL         string `xml:"serverUrl"`
			MetadataServerURL string `xml:"metadataServerUrl"`
			SessionID         string `xml:"sessionId"`
		} `xml:"loginResponse>result"`
	} `xml:"Body"`
}

// Login opens a session with the partner SOAP login call.
func Login(ctx context.Context, creds Credentials, opts ...Option) (*Client, error) {
	cfg := applyOptions(opts)
	loginURL := strings.TrimRight(creds.LoginURL, "/")
	if loginURL == "" {
		loginURL = "https://login.salesforce.com"
	}
	endpoint := fmt.Sprintf("%s/services/Soap/u/%s", loginURL, cfg.apiVersion)
	body := fmt.Sprintf(loginEnvelope,
		escapeXML(creds.Username),
		escapeXML(creds.Password+creds.SecurityToken))

	c := &Client{cfg: cfg}
	logger.InfoLog(ctx, "logging in to %s as %s", loginURL, creds.Username)
	_, data, err := c.send(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "text/xml; charset=UTF-8")
		req.Header.Set("SOAPAction", "login")
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("login request: %w", err)
	}

	var resp loginResponse
	if err := xml.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}
	if resp.Body.Fault != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthentication, resp.Body.Fault)
	}
	result := resp.Body.Result
	if result.SessionID == "" || result.ServerURL == "" {
		return nil, fmt.Errorf("%w: empty session in login response", ErrAuthentication)
	}

	u, err := url.Parse(result.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	c.instanceURL = u.Scheme + "://" + u.Host
	c.sessionID = result.SessionID
	c.metadataURL = result.MetadataServerURL
	if c.metadataURL == "" {
		c.metadataURL = fmt.Sprintf("%s/services/Soap/m/%s", c.instanceURL, cfg.apiVersion)
	}
	logger.InfoLog(ctx, "logged in, instance %s", c.instanceURL)
	return c, nil
}

// send performs one logical request, rebuilding it for each attempt.
// Network errors and 502/503/504 are retried; everything else is returned
// to the caller with the body read.
func (c *Client) send(ctx context.Context, build func() (*http.Request, error)) (int, []byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.cfg.maxRetries; attempt++ {
		if attempt > 0 {
			if c.cfg.backoff != nil {
				select {
				case <-time.After(c.cfg.backoff(attempt)):
				case <-ctx.Done():
					return 0, nil, ctx.Err()
				}
			}
			logger.DebugLog(ctx, "retrying (attempt %d/%d): %v", attempt, c.cfg.maxRetries, lastErr)
		}

		req, err := build()
		if err != nil {
			return 0, nil, err
		}
		resp, err := c.cfg.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return 0, nil, ctx.Err()
			}
			lastErr = err
			continue
		}
		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		if isTransientStatus(resp.StatusCode) {
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			continue
		}
		return resp.StatusCode, data, nil
	}
	return 0, nil, lastErr
}

func isTransientStatus(code int) bool {
	switch code {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

func (c *Client) restURL(path string) string {
	return fmt.Sprintf("%s/services/data/v%s%s", c.instanceURL, c.cfg.apiVersion, path)
}

func (c *Client) getJSON(ctx context.Context, path string) ([]byte, error) {
	endpoint := c.restURL(path)
	logger.DebugLog(ctx, "GET %s", endpoint)
	status, data, err := c.send(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.sessionID)
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, decodeAPIError(status, data)
	}
	return data, nil
}

func (c *Client) postSOAP(ctx context.Context, endpoint, action string, body []byte) ([]byte, error) {
	logger.DebugLog(ctx, "SOAP %s %s", action, endpoint)
	status, data, err := c.send(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "text/xml; charset=UTF-8")
		req.Header.Set("SOAPAction", action)
		return req, nil
	})
	if err != nil {
		return nil, err
	}

	var env struct {
		Body struct {
			Fault *SOAPFault `xml:"Fault"`
		} `xml:"Body"`
	}
	if xmlErr := xml.Unmarshal(data, &env); xmlErr == nil && env.Body.Fault != nil {
		if strings.HasSuffix(env.Body.Fault.Code, "INVALID_SESSION_ID") {
			return nil, fmt.Errorf("%w: %v", ErrAuthentication, env.Body.Fault)
		}
		return nil, env.Body.Fault
	}
	if status < 200 || status >= 300 {
		return nil, &APIError{StatusCode: status, Message: strings.TrimSpace(string(data))}
	}
	return data, nil
}

func escapeXML(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// IsAuthError reports whether err means the session is unusable.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrAuthentication)
}
