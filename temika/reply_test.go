package temika_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumilab/go-temika/temika"
)

// The wait and fault tokens are literal wire contracts; changing them breaks
// compatibility with deployed instrument servers.
func TestTokenContracts(t *testing.T) {
	require.Equal(t, "Done", temika.TokenDone)
	require.Equal(t, "status", temika.TokenStatus)
	require.Equal(t, "ERROR", temika.TokenFault)
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  float64
		ok    bool
	}{
		{"typical status line", "stepper x status 1234.5 moving 0", 1234.5, true},
		{"negative value", "stepper y status -250.25 moving 0", -250.25, true},
		{"value at end of reply", "status 42", 42, true},
		{"scientific notation", "status 1e3 tail", 1000, true},
		{"marker missing", "stepper x moving 0", 0, false},
		{"marker without value", "stepper x status ", 0, false},
		{"value not numeric", "status idle", 0, false},
		{"empty reply", "", 0, false},
		{"marker without trailing space", "status\t55", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := temika.ParseStatus(tt.reply)
			require.Equal(t, tt.ok, ok)
			require.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParseStatus_FirstMarkerWins(t *testing.T) {
	got, ok := temika.ParseStatus("status 1 status 2")
	require.True(t, ok)
	require.InDelta(t, 1.0, got, 1e-9)
}
