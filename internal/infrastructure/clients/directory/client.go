package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/synchealth/wellness-backend/internal/domain/entities"
	"github.com/synchealth/wellness-backend/internal/domain/providers"
	"github.com/synchealth/wellness-backend/pkg/config"
	"github.com/synchealth/wellness-backend/pkg/retry"
)

// HTTPClient fetches the employee roster from the external HR
// directory service.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	retryCfg   retry.Config
}

// NewClient creates a new directory client.
func NewClient(cfg *config.DirectoryConfig) (*HTTPClient, error) {
	if cfg == nil || cfg.BaseURL == "" {
		return nil, errors.New("directory base url is required")
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	retryCfg := retry.DefaultConfig()
	retryCfg.MaxAttempts = 3
	retryCfg.MaxTotalTimeout = 30 * time.Second

	return &HTTPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		retryCfg: retryCfg,
	}, nil
}

// FetchAllEmployees retrieves the full roster with health records.
// Transient failures are retried; authentication failures are not.
func (c *HTTPClient) FetchAllEmployees(ctx context.Context) ([]entities.RemoteEmployee, error) {
	endpoint := fmt.Sprintf("%s/filter/employees/all", c.baseURL)

	var out entities.GetAllEmployeesResponse
	var authErr error
	err := retry.Do(ctx, c.retryCfg, func() error {
		err := c.doJSON(ctx, endpoint, &out)
		if errors.Is(err, providers.ErrDirectoryUnauthorized) {
			// Credentials will not get better on retry
			authErr = err
			return nil
		}
		return err
	})
	if authErr != nil {
		return nil, authErr
	}
	if err != nil {
		return nil, err
	}

	return out.Employees, nil
}

func (c *HTTPClient) doJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: directory returned status %d", providers.ErrDirectoryUnauthorized, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("directory returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return err
	}
	return nil
}
