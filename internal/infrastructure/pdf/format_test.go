package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatThousands(t *testing.T) {
	cases := map[int]string{
		0:       "0",
		999:     "999",
		1000:    "1.000",
		25000:   "25.000",
		1000000: "1.000.000",
		-4500:   "-4.500",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatThousands(in), "entrada %d", in)
	}
}

func TestRangeLabel(t *testing.T) {
	assert.Equal(t, "inicio a hoy", rangeLabel("", ""))
	assert.Equal(t, "2026-01-01 a 2026-01-31", rangeLabel("2026-01-01", "2026-01-31"))
}
