package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(19.99), USD)
		require.NoError(t, err)
		assert.Equal(t, USD, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(19.99)))
	})

	t.Run("rejects empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(1), "")
		assert.Error(t, err)
	})
}

func TestNewMoneyUSDFromString(t *testing.T) {
	m, err := NewMoneyUSDFromString("25.00")
	require.NoError(t, err)
	assert.Equal(t, "25.00", m.StringFixed(2))

	_, err = NewMoneyUSDFromString("not-a-number")
	assert.Error(t, err)
}

func TestMoney_Add(t *testing.T) {
	t.Run("adds same currency", func(t *testing.T) {
		a := NewMoneyUSDFromFloat(10.00)
		b := NewMoneyUSDFromFloat(5.50)
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.Equal(t, "15.50", sum.StringFixed(2))
	})

	t.Run("rejects mismatched currencies", func(t *testing.T) {
		a := NewMoneyUSDFromFloat(10)
		b, _ := NewMoney(decimal.NewFromInt(10), EUR)
		_, err := a.Add(b)
		assert.Error(t, err)
	})
}

func TestMoney_MultiplyByInt(t *testing.T) {
	price := NewMoneyUSDFromFloat(10.00)
	total := price.MultiplyByInt(2)
	assert.Equal(t, "20.00", total.StringFixed(2))
}

func TestMoney_ExactDecimalArithmetic(t *testing.T) {
	// 10.00*2 + 5.00*1 must be exactly 25.00
	a := NewMoneyUSDFromFloat(10.00).MultiplyByInt(2)
	b := NewMoneyUSDFromFloat(5.00).MultiplyByInt(1)
	total := a.MustAdd(b)
	assert.True(t, total.Amount().Equal(decimal.NewFromFloat(25.00)))
}

func TestMoney_Comparisons(t *testing.T) {
	a := NewMoneyUSDFromFloat(5)
	b := NewMoneyUSDFromFloat(10)

	less, err := a.LessThan(b)
	require.NoError(t, err)
	assert.True(t, less)

	gte, err := b.GreaterThanOrEqual(a)
	require.NoError(t, err)
	assert.True(t, gte)

	assert.True(t, a.Equals(NewMoneyUSDFromFloat(5)))
	assert.False(t, a.Equals(b))
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m := NewMoneyUSDFromFloat(19.99)
	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoney_Scan(t *testing.T) {
	t.Run("scans string value", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan("42.50"))
		assert.Equal(t, "42.50", m.StringFixed(2))
		assert.Equal(t, DefaultCurrency, m.Currency())
	})

	t.Run("scans nil as zero", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan(nil))
		assert.True(t, m.IsZero())
	})

	t.Run("rejects unsupported type", func(t *testing.T) {
		var m Money
		assert.Error(t, m.Scan(42))
	})
}
