package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid inputs", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromInt(100), VND)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(100)))
		assert.Equal(t, VND, m.Currency())
	})

	t.Run("fails with empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(100), "")
		require.Error(t, err)
	})
}

func TestMoneyFromString(t *testing.T) {
	m, err := NewMoneyVNDFromString("12.50")
	require.NoError(t, err)
	assert.True(t, m.Amount().Equal(decimal.NewFromFloat(12.5)))

	_, err = NewMoneyVNDFromString("not-a-number")
	require.Error(t, err)
}

func TestMoneyAdd(t *testing.T) {
	t.Run("adds amounts of the same currency", func(t *testing.T) {
		a := NewMoneyVNDFromFloat(10.5)
		b := NewMoneyVNDFromFloat(4.5)

		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.True(t, sum.Amount().Equal(decimal.NewFromInt(15)))
	})

	t.Run("fails across currencies", func(t *testing.T) {
		a := NewMoneyVNDFromFloat(10)
		b := Zero(USD)

		_, err := a.Add(b)
		require.Error(t, err)
	})

	t.Run("MustAdd panics across currencies", func(t *testing.T) {
		a := NewMoneyVNDFromFloat(10)
		b := Zero(USD)

		assert.Panics(t, func() { a.MustAdd(b) })
	})
}

func TestMoneyMultiply(t *testing.T) {
	m := NewMoneyVNDFromFloat(12.5)

	assert.True(t, m.MultiplyByInt(3).Amount().Equal(decimal.NewFromFloat(37.5)))
	assert.True(t, m.Multiply(decimal.NewFromFloat(0.5)).Amount().Equal(decimal.NewFromFloat(6.25)))
}

func TestMoneyComparisons(t *testing.T) {
	assert.True(t, ZeroVND().IsZero())
	assert.True(t, NewMoneyVNDFromFloat(-1).IsNegative())
	assert.True(t, NewMoneyVNDFromFloat(10).Equals(NewMoneyVNDFromFloat(10)))
	assert.False(t, NewMoneyVNDFromFloat(10).Equals(Zero(USD)))
}

func TestMoneyScan(t *testing.T) {
	t.Run("scans a string amount with the default currency", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan("99.90"))
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(99.9)))
		assert.Equal(t, DefaultCurrency, m.Currency())
	})

	t.Run("scans nil as zero", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan(nil))
		assert.True(t, m.IsZero())
	})

	t.Run("rejects unsupported types", func(t *testing.T) {
		var m Money
		require.Error(t, m.Scan(42))
	})
}
