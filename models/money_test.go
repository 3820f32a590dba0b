package models_test

import (
	"encoding/json"
	"testing"

	"github.com/satheeshds/gstbill/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	tests := []struct {
		in      string
		want    models.Money
		wantErr bool
	}{
		{"1180.50", 118050, false},
		{"1000", 100000, false},
		{"0.05", 5, false},
		{"-12.30", -1230, false},
		{"1.005", 0, true},
		{"abc", 0, true},
		{"92233720368547758.07", 9223372036854775807, false},
		{"92233720368547758.08", 0, true},
		{"184467440737095516.17", 0, true},
		{"1e20", 0, true},
		{"-1e20", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := models.NewMoney(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "1180.00", models.Money(118000).String())
	assert.Equal(t, "0.05", models.Money(5).String())
	assert.Equal(t, "-0.05", models.Money(-5).String())
	assert.True(t, models.Money(118050).Rupees().Equal(decimal.RequireFromString("1180.5")))
}

func TestMoney_JSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Amount models.Money `json:"amount"`
	}{118050})
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount": 1180.50}`, string(b))

	var in struct {
		A models.Money `json:"a"`
		B models.Money `json:"b"`
		C models.Money `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 12.5, "b": "99.99", "c": null}`), &in))
	assert.Equal(t, models.Money(1250), in.A)
	assert.Equal(t, models.Money(9999), in.B)
	assert.Zero(t, in.C)

	assert.Error(t, json.Unmarshal([]byte(`{"a": 0.001}`), &in))
	assert.Error(t, json.Unmarshal([]byte(`{"a": 184467440737095516.17}`), &in))
	assert.Error(t, json.Unmarshal([]byte(`{"a": 1e20}`), &in))
}

func TestMoney_Scan(t *testing.T) {
	var m models.Money
	require.NoError(t, m.Scan(int64(4200)))
	assert.Equal(t, models.Money(4200), m)
	require.NoError(t, m.Scan(nil))
	assert.Zero(t, m)
	assert.Error(t, m.Scan("12"))

	v, err := models.Money(4200).Value()
	require.NoError(t, err)
	assert.Equal(t, int64(4200), v)
}
