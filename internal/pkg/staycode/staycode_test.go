//go:build unit

package staycode_test

import (
	"strings"
	"testing"

	"stayhub/internal/pkg/staycode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	code, err := staycode.New()
	require.NoError(t, err)

	assert.Len(t, code, 11)
	assert.True(t, strings.HasPrefix(code, "ST-"))
	assert.True(t, staycode.Valid(code))

	// ambiguous characters never appear
	assert.NotContains(t, code[3:], "0")
	assert.NotContains(t, code[3:], "O")
	assert.NotContains(t, code[3:], "1")
	assert.NotContains(t, code[3:], "I")
	assert.NotContains(t, code[3:], "L")
}

func TestValid(t *testing.T) {
	cases := []struct {
		name  string
		code  string
		valid bool
	}{
		{"well formed", "ST-7K2M9QRX", true},
		{"missing prefix", "XX-7K2M9QRX", false},
		{"too short", "ST-7K2M9QR", false},
		{"too long", "ST-7K2M9QRXX", false},
		{"ambiguous character", "ST-7K2M9QR0", false},
		{"lowercase", "ST-7k2m9qrx", false},
		{"empty", "", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.valid, staycode.Valid(c.code))
		})
	}
}
