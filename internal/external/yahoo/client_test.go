package yahoo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/aurum/internal/contracts"
)

const chartFixture = `{
  "chart": {
    "result": [
      {
        "timestamp": [1735776000, 1735862400, 1735948800],
        "indicators": {
          "quote": [
            {"close": [2650.5, null, 2671.2]}
          ]
        }
      }
    ],
    "error": null
  }
}`

func TestParseChart(t *testing.T) {
	obs, err := parseChart(contracts.SymbolGoldUSD, []byte(chartFixture))
	require.NoError(t, err)
	require.Len(t, obs, 2) // the null holiday bar is dropped

	assert.Equal(t, contracts.SymbolGoldUSD, obs[0].Symbol)
	assert.Equal(t, 2650.5, obs[0].Value)
	assert.Equal(t, "USD/oz", obs[0].Unit)
	assert.Equal(t, "yahoo", obs[0].Source)
	assert.Equal(t, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), obs[0].Date)
	assert.Equal(t, 2671.2, obs[1].Value)
}

func TestParseChartErrors(t *testing.T) {
	apiError := `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`
	_, err := parseChart(contracts.SymbolGoldUSD, []byte(apiError))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No data found")

	_, err = parseChart(contracts.SymbolGoldUSD, []byte(`{"chart":{"result":[]}}`))
	assert.Error(t, err)

	_, err = parseChart(contracts.SymbolGoldUSD, []byte(`not json`))
	assert.Error(t, err)
}
