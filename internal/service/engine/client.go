package engine

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/krobus00/pairsync-service/internal/config"
	"github.com/krobus00/pairsync-service/internal/entity"
	"github.com/sirupsen/logrus"
)

const defaultEngineTimeout = 10 * time.Second

// Client talks to the trading engine's admin API. Reload is an optimization,
// not a correctness requirement: the engine re-reads its config on restart
// anyway, so every failure here is reported, never propagated as fatal.
type Client struct {
	apiURL     string
	username   string
	password   string
	enabled    bool
	httpClient *http.Client
}

func NewClient(cfg config.EngineConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultEngineTimeout
	}

	return &Client{
		apiURL:     strings.TrimRight(cfg.APIURL, "/"),
		username:   cfg.Username,
		password:   cfg.Password,
		enabled:    cfg.Reload,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NotifyReload asks the running engine to re-read its configuration.
// Credentials come from the service config when set, otherwise from the
// engine config document's api_server section, field by field.
func (c *Client) NotifyReload(ctx context.Context, doc *entity.EngineConfigDocument) error {
	if !c.enabled {
		logrus.Debug("engine reload disabled")
		return nil
	}

	username, password := c.credentials(doc)
	if username == "" || password == "" {
		return entity.ErrCredentialsMissing
	}

	reloadURL := c.apiURL + "/reload_config"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reloadURL, nil)
	if err != nil {
		return &entity.NetworkError{URL: reloadURL, Err: err}
	}
	req.SetBasicAuth(username, password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &entity.NetworkError{URL: reloadURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &entity.NetworkError{URL: reloadURL, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	logrus.WithField("status", resp.StatusCode).Info("engine reload requested")

	return nil
}

func (c *Client) credentials(doc *entity.EngineConfigDocument) (string, string) {
	username := c.username
	password := c.password
	if doc != nil {
		docUser, docPass := doc.APIServerCredentials()
		if username == "" {
			username = docUser
		}
		if password == "" {
			password = docPass
		}
	}

	return username, password
}
