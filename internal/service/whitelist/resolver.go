package whitelist

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/krobus00/pairsync-service/internal/entity"
	"github.com/sirupsen/logrus"
)

const defaultTargetTimeout = 10 * time.Second

// TargetResolver produces a profile's normalized symbol set, preferring the
// profile's dynamic targets API and falling back to its static target list.
type TargetResolver struct {
	httpClient *http.Client
}

func NewTargetResolver(timeout time.Duration) *TargetResolver {
	if timeout <= 0 {
		timeout = defaultTargetTimeout
	}

	return &TargetResolver{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Resolve never fails: a broken or empty dynamic source falls through to the
// profile's static targets so that one bad profile endpoint cannot abort the
// whole reconciliation cycle.
func (r *TargetResolver) Resolve(ctx context.Context, profile entity.Profile) []string {
	quote := profile.Quote()

	if profile.TargetsAPIOverride && profile.TargetsAPIURL != "" {
		targets, err := r.fetchDynamicTargets(ctx, profile, quote)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"profile":     profile.Name,
				"targets_api": profile.TargetsAPIURL,
			}).WithError(err).Warn("targets api failed; falling back to static targets")
		} else if len(targets) > 0 {
			return targets
		}
	}

	return NormalizeSymbols(profile.Targets, quote)
}

func (r *TargetResolver) fetchDynamicTargets(ctx context.Context, profile entity.Profile, quote string) ([]string, error) {
	if profile.TargetsAPITimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(profile.TargetsAPITimeoutSeconds)*time.Second)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, profile.TargetsAPIURL, nil)
	if err != nil {
		return nil, &entity.NetworkError{URL: profile.TargetsAPIURL, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, &entity.NetworkError{URL: profile.TargetsAPIURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &entity.NetworkError{URL: profile.TargetsAPIURL, Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &entity.NetworkError{URL: profile.TargetsAPIURL, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	return parseTargetsResponse(profile.TargetsAPIURL, body, quote)
}

// parseTargetsResponse accepts the three shapes the targets APIs are known
// to serve: {success:true, items:[{symbol:...}]}, {symbols:[...]}, and a
// bare list of symbol strings.
func parseTargetsResponse(source string, body []byte, quote string) ([]string, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var symbols []string
		if err := json.Unmarshal(trimmed, &symbols); err != nil {
			return nil, &entity.DataFormatError{Source: source, Reason: "unsupported targets api response format"}
		}

		return NormalizeSymbols(symbols, quote), nil
	}

	var payload struct {
		Success bool              `json:"success"`
		Items   []json.RawMessage `json:"items"`
		Symbols json.RawMessage   `json:"symbols"`
	}
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return nil, &entity.DataFormatError{Source: source, Reason: "unsupported targets api response format"}
	}

	if payload.Success && payload.Items != nil {
		symbols := make([]string, 0, len(payload.Items))
		for _, raw := range payload.Items {
			var item struct {
				Symbol string `json:"symbol"`
			}
			// non-object entries are skipped, not fatal
			if err := json.Unmarshal(raw, &item); err != nil {
				continue
			}
			symbols = append(symbols, item.Symbol)
		}

		return NormalizeSymbols(symbols, quote), nil
	}

	if payload.Symbols != nil {
		var symbols []string
		if err := json.Unmarshal(payload.Symbols, &symbols); err != nil {
			return nil, &entity.DataFormatError{Source: source, Reason: "unsupported targets api response format"}
		}

		return NormalizeSymbols(symbols, quote), nil
	}

	return nil, &entity.DataFormatError{Source: source, Reason: "unsupported targets api response format"}
}
