package kgx

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/aurum/internal/contracts"
	"github.com/wonny/aurum/pkg/config"
	"github.com/wonny/aurum/pkg/logger"
)

const pricePageFixture = `
<html><body>
<table class="price_table">
  <tr><th>구분</th><th>내가 살 때</th><th>내가 팔 때</th></tr>
  <tr><th>순금 (24K)</th><td>520,000원</td><td>460,000원</td></tr>
  <tr><th>18K</th><td>390,000원</td><td>340,000원</td></tr>
</table>
</body></html>`

func TestParsePricePage(t *testing.T) {
	buy, sell, err := parsePricePage(pricePageFixture)
	require.NoError(t, err)
	assert.Equal(t, 520000.0, buy)
	assert.Equal(t, 460000.0, sell)
}

func TestParsePricePageMissingTable(t *testing.T) {
	_, _, err := parsePricePage(`<html><body><p>호출에 실패했습니다</p></body></html>`)
	assert.Error(t, err)
}

func TestParseKRW(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"520,000원", 520000, true},
		{" 1,234,567 ", 1234567, true},
		{"460000", 460000, true},
		{"원", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseKRW(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, "input %q", tt.in)
		}
	}
}

func TestCollectMockMode(t *testing.T) {
	c := NewClient(nil, config.KGXConfig{UseMock: true, MockBuyKRW: 520000}, logger.NewWriter(io.Discard))

	obs, err := c.Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, obs, 1)
	assert.Equal(t, contracts.PriceTypeBuy, obs[0].PriceType)
	assert.Equal(t, 520000.0, obs[0].Value)
	assert.Equal(t, "kgx-mock", obs[0].Source)
}
