package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/wonny/aurum/internal/contracts"
	"github.com/wonny/aurum/pkg/httputil"
	"github.com/wonny/aurum/pkg/logger"
)

// tickers maps internal symbols to Yahoo Finance tickers
var tickers = map[string]string{
	contracts.SymbolGoldUSD:   "GC=F",
	contracts.SymbolSilverUSD: "SI=F",
	contracts.SymbolUSDKRW:    "KRW=X",
	contracts.SymbolDXY:       "DX-Y.NYB",
	contracts.SymbolSPX:       "^GSPC",
	contracts.SymbolKOSPI:     "^KS11",
}

// units maps internal symbols to the unit stored with each observation
var units = map[string]string{
	contracts.SymbolGoldUSD:   "USD/oz",
	contracts.SymbolSilverUSD: "USD/oz",
	contracts.SymbolUSDKRW:    "KRW",
	contracts.SymbolDXY:       "index",
	contracts.SymbolSPX:       "index",
	contracts.SymbolKOSPI:     "index",
}

// Client handles communication with the Yahoo Finance chart API
// ⭐ SSOT: 시세 API 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	limiter    *rate.Limiter
}

// NewClient creates a Yahoo Finance client. A local token bucket spaces
// the per-ticker requests regardless of Redis availability.
func NewClient(httpClient *httputil.Client, baseURL string, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Every(200*time.Millisecond), 1),
	}
}

// Name identifies this source in pipeline logs
func (c *Client) Name() string {
	return "yahoo"
}

// Collect fetches daily closes for every tracked symbol in [from, to].
// A failing ticker is logged and skipped; the remainder still load.
func (c *Client) Collect(ctx context.Context, from, to time.Time) ([]contracts.RawObservation, error) {
	var out []contracts.RawObservation

	for symbol, ticker := range tickers {
		if err := c.limiter.Wait(ctx); err != nil {
			return out, err
		}

		obs, err := c.fetchDaily(ctx, symbol, ticker, from, to)
		if err != nil {
			c.logger.WithError(err).WithField("symbol", symbol).Warn("Quote fetch failed")
			continue
		}
		out = append(out, obs...)
	}

	c.logger.WithField("count", len(out)).Debug("Collected market quotes")
	return out, nil
}

func (c *Client) fetchDaily(ctx context.Context, symbol, ticker string, from, to time.Time) ([]contracts.RawObservation, error) {
	// to+1d so the closing bar of the last day is included
	fullURL := fmt.Sprintf(
		"%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d",
		c.baseURL, ticker, from.Unix(), to.AddDate(0, 0, 1).Unix(),
	)

	body, err := c.httpClient.GetBody(ctx, fullURL)
	if err != nil {
		return nil, fmt.Errorf("chart request failed: %w", err)
	}

	return parseChart(symbol, body)
}

// chartResponse is the subset of the Yahoo chart payload we read
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// parseChart extracts daily close observations from a chart payload.
// Null closes (market holidays) are dropped.
func parseChart(symbol string, body []byte) ([]contracts.RawObservation, error) {
	var resp chartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse chart response failed: %w", err)
	}
	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("chart API error: %s (%s)", resp.Chart.Error.Description, resp.Chart.Error.Code)
	}
	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("chart response has no result for %s", symbol)
	}

	result := resp.Chart.Result[0]
	closes := result.Indicators.Quote[0].Close

	var out []contracts.RawObservation
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		out = append(out, contracts.RawObservation{
			Date:   contracts.DateOnly(time.Unix(ts, 0).UTC()),
			Symbol: symbol,
			Value:  *closes[i],
			Unit:   units[symbol],
			Source: "yahoo",
		})
	}
	return out, nil
}
