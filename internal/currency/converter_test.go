package currency

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_ToUSD(t *testing.T) {
	cases := []struct {
		name     string
		rate     string
		priceEur string
		want     string
	}{
		{"typical price", "1.10", "25.99", "28.59"},
		{"zero price", "1.10", "0", "0.00"},
		{"rounds half up", "1.00", "1.005", "1.01"},
		{"rounds down below half", "1.00", "1.004", "1.00"},
		{"whole euros", "1.1034", "100", "110.34"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			converter := NewConverter(NewCache(&stubSource{rate: tc.rate}))

			got, err := converter.ToUSD(context.Background(), decimal.RequireFromString(tc.priceEur))
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
				"%s * %s = %s, want %s", tc.priceEur, tc.rate, got, tc.want)
		})
	}
}

func TestConverter_PropagatesRateError(t *testing.T) {
	converter := NewConverter(NewCache(&stubSource{err: errors.New("hnb down")}))

	_, err := converter.ToUSD(context.Background(), decimal.RequireFromString("9.99"))
	require.Error(t, err)
}

func TestConverter_ResultChangesAfterRepopulate(t *testing.T) {
	source := &stubSource{rate: "1.10"}
	cache := NewCache(source)
	converter := NewConverter(cache)

	price := decimal.RequireFromString("10.00")

	got, err := converter.ToUSD(context.Background(), price)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("11.00")))

	source.rate = "1.20"
	require.NoError(t, cache.Populate(context.Background()))

	got, err = converter.ToUSD(context.Background(), price)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("12.00")))
}
