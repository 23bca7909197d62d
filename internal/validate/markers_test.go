package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkerFoundIn(t *testing.T) {
	cases := []struct {
		name   string
		text   string
		marker string
		want   bool
	}{
		{"bracketed", "I'll transfer you now (transfer)", "(transfer)", true},
		{"angle brackets", "I'll transfer you now <transfer>", "(transfer)", true},
		{"bare with leading space", "please transfer me", "(transfer)", true},
		{"bare with trailing space", "transfer the call please", "(transfer)", true},
		{"prefix", "transfer", "(transfer)", true},
		{"case insensitive", "Processing payment (Function_1)", "(function_1)", true},
		{"absent", "goodbye and have a nice day", "(transfer)", false},
		{"different marker", "please hold (hold)", "(transfer)", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, markerFoundIn(tc.text, tc.marker))
		})
	}
}

func TestNormalizeMarker(t *testing.T) {
	assert.Equal(t, "(transfer)", normalizeMarker("transfer"))
	assert.Equal(t, "(transfer)", normalizeMarker("(transfer)"))
	assert.Equal(t, "(function_1)", normalizeMarker("function_1"))
}
