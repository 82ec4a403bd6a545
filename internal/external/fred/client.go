package fred

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/wonny/aurum/internal/contracts"
	"github.com/wonny/aurum/pkg/httputil"
	"github.com/wonny/aurum/pkg/logger"
)

// seriesIDs maps internal indicators to FRED series identifiers
var seriesIDs = map[string]string{
	contracts.IndicatorCPI:     "CPIAUCSL",
	contracts.IndicatorM2:      "M2SL",
	contracts.IndicatorUS10Y:   "DGS10",
	contracts.IndicatorFedRate: "FEDFUNDS",
}

var units = map[string]string{
	contracts.IndicatorCPI:     "index",
	contracts.IndicatorM2:      "USD bn",
	contracts.IndicatorUS10Y:   "%",
	contracts.IndicatorFedRate: "%",
}

// Client handles communication with the FRED (St. Louis Fed) API
// ⭐ SSOT: FRED API 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	apiKey     string
}

// NewClient creates a FRED client. An empty API key is allowed; the
// source then reports no data instead of failing the pipeline.
func NewClient(httpClient *httputil.Client, baseURL, apiKey string, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// Name identifies this source in pipeline logs
func (c *Client) Name() string {
	return "fred"
}

// Collect fetches macro indicator observations in [from, to]. Without an
// API key it degrades to an empty result; a failing series is logged and
// skipped.
func (c *Client) Collect(ctx context.Context, from, to time.Time) ([]contracts.RawObservation, error) {
	if c.apiKey == "" {
		c.logger.Warn("FRED_API_KEY not set, skipping macro indicators")
		return nil, nil
	}

	var out []contracts.RawObservation
	for indicator, seriesID := range seriesIDs {
		obs, err := c.fetchSeries(ctx, indicator, seriesID, from, to)
		if err != nil {
			c.logger.WithError(err).WithField("indicator", indicator).Warn("Macro fetch failed")
			continue
		}
		out = append(out, obs...)
	}

	c.logger.WithField("count", len(out)).Debug("Collected macro indicators")
	return out, nil
}

func (c *Client) fetchSeries(ctx context.Context, indicator, seriesID string, from, to time.Time) ([]contracts.RawObservation, error) {
	params := url.Values{}
	params.Set("series_id", seriesID)
	params.Set("api_key", c.apiKey)
	params.Set("file_type", "json")
	params.Set("observation_start", from.Format("2006-01-02"))
	params.Set("observation_end", to.Format("2006-01-02"))

	fullURL := fmt.Sprintf("%s/series/observations?%s", c.baseURL, params.Encode())

	body, err := c.httpClient.GetBody(ctx, fullURL)
	if err != nil {
		return nil, fmt.Errorf("observations request failed: %w", err)
	}

	return parseObservations(indicator, body)
}

type observationsResponse struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"observations"`
}

// parseObservations converts a FRED payload into raw observations.
// FRED marks missing values as "."; those rows are dropped.
func parseObservations(indicator string, body []byte) ([]contracts.RawObservation, error) {
	var resp observationsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse observations failed: %w", err)
	}

	var out []contracts.RawObservation
	for _, o := range resp.Observations {
		if o.Value == "." {
			continue
		}

		value, err := strconv.ParseFloat(o.Value, 64)
		if err != nil {
			continue
		}
		date, err := time.Parse("2006-01-02", o.Date)
		if err != nil {
			continue
		}

		out = append(out, contracts.RawObservation{
			Date:   date,
			Symbol: indicator,
			Value:  value,
			Unit:   units[indicator],
			Source: "fred",
		})
	}
	return out, nil
}
