package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	money, err := NewMoney(decimal.NewFromInt(100), NPR)
	require.NoError(t, err)
	assert.Equal(t, NPR, money.Currency())
	assert.True(t, money.Amount().Equal(decimal.NewFromInt(100)))

	_, err = NewMoney(decimal.NewFromInt(100), "XXX")
	assert.Error(t, err)
}

func TestMoneyArithmetic(t *testing.T) {
	a := NewMoneyNPR(decimal.NewFromInt(1300))
	b := NewMoneyNPR(decimal.NewFromInt(100))

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Amount().Equal(decimal.NewFromInt(1400)))

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.True(t, diff.Amount().Equal(decimal.NewFromInt(1200)))

	doubled := b.MultiplyByInt(2)
	assert.True(t, doubled.Amount().Equal(decimal.NewFromInt(200)))

	t.Run("rejects currency mismatch", func(t *testing.T) {
		usd, err := NewMoney(decimal.NewFromInt(1), USD)
		require.NoError(t, err)
		_, err = a.Add(usd)
		assert.Error(t, err)
	})
}

func TestMoneyComparison(t *testing.T) {
	a := NewMoneyNPR(decimal.NewFromInt(10))
	b := NewMoneyNPR(decimal.NewFromInt(20))

	less, err := a.LessThan(b)
	require.NoError(t, err)
	assert.True(t, less)

	greater, err := b.GreaterThan(a)
	require.NoError(t, err)
	assert.True(t, greater)

	assert.True(t, a.Equals(NewMoneyNPR(decimal.NewFromInt(10))))
	assert.False(t, a.Equals(b))
}

func TestMoneyString(t *testing.T) {
	money := NewMoneyNPR(decimal.NewFromInt(1400))
	assert.Equal(t, "NPR 1400.00", money.String())
}

func TestMoneyJSON(t *testing.T) {
	money := NewMoneyNPRFromFloat(99.5)

	data, err := json.Marshal(money)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, money.Equals(decoded))
}
