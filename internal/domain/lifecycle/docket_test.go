package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocketNo(t *testing.T) {
	date, seq, err := ParseDocketNo("250602-0042-IMR")
	require.NoError(t, err)
	assert.Equal(t, 42, seq)
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), date)

	for _, bad := range []string{"", "250602-42-IMR", "250602-0042-XYZ", "251302-0001-IMR", "250602-0000-IMR"} {
		t.Run(bad, func(t *testing.T) {
			assert.False(t, IsDocketNo(bad))
		})
	}
}
