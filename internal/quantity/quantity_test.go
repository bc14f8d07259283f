package quantity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in     string
		parsed bool
		amount float64
		unit   string
	}{
		{"2", true, 2, ""},
		{"1.5", true, 1.5, ""},
		{"1 cup", true, 1, "cup"},
		{"250 g", true, 250, "g"},
		{"  2  ", true, 2, ""},
		{"a pinch", false, 0, ""},
		{"1 cup, sifted", false, 0, ""},
		{"", false, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			q := Parse(tt.in)
			assert.Equal(t, tt.parsed, q.Parsed)
			if tt.parsed {
				assert.Equal(t, tt.amount, q.Amount)
				assert.Equal(t, tt.unit, q.Unit)
			}
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	assert.Equal(t, "1.5 kg", Parse("1.5 kg").String())
	assert.Equal(t, "2", Parse("2").String())
	assert.Equal(t, "a pinch", Parse("a pinch").String())
}

func TestAddStrings(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want string
	}{
		{"numeric sum same unit", "1 cup", "1 cup", "2 cup"},
		{"numeric sum case-insensitive unit", "1 Cup", "2 cup", "3 Cup"},
		{"bare numbers", "2", "1", "3"},
		{"unit adopts the labeled side", "1", "1 cup", "2 cup"},
		{"unit mismatch concatenates", "1 cup", "200 g", "1 cup + 200 g"},
		{"unparsed concatenates", "1 cup", "a splash", "1 cup + a splash"},
		{"both unparsed", "some", "more", "some + more"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddStrings(tt.a, tt.b))
		})
	}
}
