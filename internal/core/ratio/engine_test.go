package ratio_test

import (
	"testing"

	"github.com/finratios/fin_report_app/internal/core/domain"
	"github.com/finratios/fin_report_app/internal/core/ratio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

func sampleStatement() domain.FinancialData {
	return domain.FinancialData{
		Cash:                    50000,
		Receivables:             40000,
		Inventory:               30000,
		OtherCurrentAssets:      30000,
		ShortTermDebt:           25000,
		Payables:                30000,
		OtherCurrentLiabilities: 20000,
		TotalAssets:             f64(500000),
		TotalLiabilities:        f64(200000),
		Equity:                  f64(300000),
		Revenue:                 f64(400000),
		GrossProfit:             f64(180000),
		NetIncome:               f64(60000),
	}
}

func TestCompute_CurrentRatioStrongBand(t *testing.T) {
	// currentAssets=150000, currentLiabilities=75000 -> 2.00, top band.
	res := ratio.Compute(sampleStatement())

	entry := res[ratio.CurrentRatio]
	require.NotNil(t, entry.Value)
	assert.Equal(t, 2.00, ratio.Round2(*entry.Value))
	assert.Equal(t, ratio.BandStrong, entry.Evaluation)
	assert.Contains(t, entry.FormulaTrace, "currentAssets / currentLiabilities")
}

func TestCompute_AllFamilies(t *testing.T) {
	res := ratio.Compute(sampleStatement())

	cases := []struct {
		id   ratio.ID
		want float64
		band ratio.Band
	}{
		{ratio.CurrentRatio, 2.00, ratio.BandStrong},
		{ratio.QuickRatio, 1.60, ratio.BandStrong},
		{ratio.CashRatio, 0.67, ratio.BandAdequate},
		{ratio.DebtRatio, 0.40, ratio.BandStrong},
		{ratio.DebtToEquity, 0.67, ratio.BandStrong},
		{ratio.EquityMultiplier, 1.67, ratio.BandStrong},
		{ratio.GrossMargin, 0.45, ratio.BandStrong},
		{ratio.NetMargin, 0.15, ratio.BandAdequate},
		{ratio.ROE, 0.20, ratio.BandStrong},
		{ratio.ROA, 0.12, ratio.BandStrong},
	}
	for _, tc := range cases {
		entry, ok := res[tc.id]
		require.True(t, ok, "missing ratio %s", tc.id)
		require.NotNil(t, entry.Value, "ratio %s should be computable", tc.id)
		assert.Equal(t, tc.want, ratio.Round2(*entry.Value), "ratio %s", tc.id)
		assert.Equal(t, tc.band, entry.Evaluation, "ratio %s", tc.id)
	}
}

func TestCompute_ZeroDivisorIsNotComputable(t *testing.T) {
	stmt := sampleStatement()
	stmt.ShortTermDebt = 0
	stmt.Payables = 0
	stmt.OtherCurrentLiabilities = 0

	res := ratio.Compute(stmt)

	for _, id := range []ratio.ID{ratio.CurrentRatio, ratio.QuickRatio, ratio.CashRatio} {
		entry := res[id]
		assert.Nil(t, entry.Value, "ratio %s", id)
		assert.Equal(t, ratio.BandNotComputable, entry.Evaluation, "ratio %s", id)
	}

	// The rest of the batch still computes.
	require.NotNil(t, res[ratio.ROE].Value)
	assert.Equal(t, 0.20, ratio.Round2(*res[ratio.ROE].Value))
}

func TestCompute_MissingInputsDoNotAbortBatch(t *testing.T) {
	stmt := sampleStatement()
	stmt.Equity = nil
	stmt.Revenue = nil

	res := ratio.Compute(stmt)

	assert.Equal(t, ratio.BandNotComputable, res[ratio.ROE].Evaluation)
	assert.Equal(t, ratio.BandNotComputable, res[ratio.DebtToEquity].Evaluation)
	assert.Equal(t, ratio.BandNotComputable, res[ratio.NetMargin].Evaluation)
	assert.Contains(t, res[ratio.ROE].FormulaTrace, "input missing")

	require.NotNil(t, res[ratio.CurrentRatio].Value)
	require.NotNil(t, res[ratio.DebtRatio].Value)
}

func TestCompute_ZeroEquity(t *testing.T) {
	stmt := sampleStatement()
	stmt.Equity = f64(0)

	res := ratio.Compute(stmt)

	assert.Nil(t, res[ratio.ROE].Value)
	assert.Equal(t, ratio.BandNotComputable, res[ratio.ROE].Evaluation)
	assert.Nil(t, res[ratio.DebtToEquity].Value)
	assert.Nil(t, res[ratio.EquityMultiplier].Value)
}

func TestEvaluate_CurrentRatioBandEdges(t *testing.T) {
	assert.Equal(t, ratio.BandStrong, ratio.Evaluate(ratio.CurrentRatio, 2.0))
	assert.Equal(t, ratio.BandAdequate, ratio.Evaluate(ratio.CurrentRatio, 1.5))
	assert.Equal(t, ratio.BandAcceptable, ratio.Evaluate(ratio.CurrentRatio, 1.0))
	assert.Equal(t, ratio.BandWeak, ratio.Evaluate(ratio.CurrentRatio, 0.99))
}

func TestEvaluate_LeverageBandsFlip(t *testing.T) {
	assert.Equal(t, ratio.BandStrong, ratio.Evaluate(ratio.DebtRatio, 0.35))
	assert.Equal(t, ratio.BandWeak, ratio.Evaluate(ratio.DebtRatio, 0.75))
}

func TestCanonicalID_NormalizesAcidTestAlias(t *testing.T) {
	id, ok := ratio.CanonicalID("acidTestRatio")
	require.True(t, ok)
	assert.Equal(t, ratio.QuickRatio, id)

	id, ok = ratio.CanonicalID("currentRatio")
	require.True(t, ok)
	assert.Equal(t, ratio.CurrentRatio, id)

	_, ok = ratio.CanonicalID("peRatio")
	assert.False(t, ok)
}
