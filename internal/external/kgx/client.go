package kgx

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/wonny/aurum/internal/contracts"
	"github.com/wonny/aurum/pkg/config"
	"github.com/wonny/aurum/pkg/httputil"
	"github.com/wonny/aurum/pkg/logger"
)

const priceUnit = "KRW/3.75g"

// Client scrapes the domestic gold exchange daily price page.
// ⭐ SSOT: 국내 금 시세 수집은 이 클라이언트에서만
//
// The page is rendered dynamically and rejects plain requests, so the
// client deliberately degrades: scrape failure falls back to the
// configured manual/mock quote instead of failing the pipeline.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	cfg        config.KGXConfig
}

// NewClient creates a domestic gold price source
func NewClient(httpClient *httputil.Client, cfg config.KGXConfig, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		cfg:        cfg,
	}
}

// Name identifies this source in pipeline logs
func (c *Client) Name() string {
	return "kgx"
}

// Collect returns today's physical gold quotes per 3.75g
func (c *Client) Collect(ctx context.Context) ([]contracts.DomesticObservation, error) {
	if c.cfg.UseMock {
		return c.mockQuotes(), nil
	}

	obs, err := c.scrape(ctx)
	if err != nil {
		c.logger.WithError(err).Warn("Domestic scrape failed, using manual/mock quote")
		return c.mockQuotes(), nil
	}
	return obs, nil
}

func (c *Client) scrape(ctx context.Context) ([]contracts.DomesticObservation, error) {
	fullURL := fmt.Sprintf("%s/main/html.php?htmid=goods/gold_list.html", c.cfg.BaseURL)

	body, err := c.httpClient.GetBody(ctx, fullURL)
	if err != nil {
		return nil, fmt.Errorf("price page request failed: %w", err)
	}

	buy, sell, err := parsePricePage(string(body))
	if err != nil {
		return nil, err
	}

	today := contracts.DateOnly(time.Now())
	return []contracts.DomesticObservation{
		{Date: today, PriceType: contracts.PriceTypeBuy, Value: buy, Unit: priceUnit, Source: "kgx"},
		{Date: today, PriceType: contracts.PriceTypeSell, Value: sell, Unit: priceUnit, Source: "kgx"},
	}, nil
}

func (c *Client) mockQuotes() []contracts.DomesticObservation {
	c.logger.WithField("buy_krw", c.cfg.MockBuyKRW).Debug("Using manual/mock domestic quote")
	return []contracts.DomesticObservation{
		{
			Date:      contracts.DateOnly(time.Now()),
			PriceType: contracts.PriceTypeBuy,
			Value:     c.cfg.MockBuyKRW,
			Unit:      priceUnit,
			Source:    "kgx-mock",
		},
	}
}

var krwDigits = regexp.MustCompile(`[0-9][0-9,]*`)

// parsePricePage extracts the pure-gold buy/sell quotes from the price
// table. The row labeled 순금 carries the buy price first, sell second.
func parsePricePage(html string) (buy, sell float64, err error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return 0, 0, fmt.Errorf("parse price page failed: %w", err)
	}

	doc.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		label := strings.TrimSpace(row.Find("th, td").First().Text())
		if !strings.Contains(label, "순금") {
			return true
		}

		var values []float64
		row.Find("td").Each(func(_ int, cell *goquery.Selection) {
			if v, ok := parseKRW(cell.Text()); ok {
				values = append(values, v)
			}
		})
		if len(values) >= 2 {
			buy, sell = values[0], values[1]
			return false
		}
		return true
	})

	if buy == 0 || sell == 0 {
		return 0, 0, fmt.Errorf("price table not found or empty")
	}
	return buy, sell, nil
}

// parseKRW parses a comma-grouped KRW amount out of a table cell
func parseKRW(s string) (float64, bool) {
	match := krwDigits.FindString(s)
	if match == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", ""), 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
