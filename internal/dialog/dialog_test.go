package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullText(t *testing.T) {
	conv := Conversation{
		{Role: RoleAgent, Content: "Good morning."},
		{Role: RoleCustomer, Content: "Hello."},
	}
	assert.Equal(t, "Good morning. Hello.", conv.FullText())
	assert.Equal(t, "", Conversation{}.FullText())
}

func TestRoles(t *testing.T) {
	conv := Conversation{
		{Role: RoleAgent, Content: "a"},
		{Role: RoleCustomer, Content: "b"},
		{Role: RoleAgent, Content: "c"},
	}
	assert.Equal(t, []Role{RoleAgent, RoleCustomer, RoleAgent}, conv.Roles())
}

func TestParseWireRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"assistant", RoleAgent, true},
		{"agent", RoleAgent, true},
		{"Assistant", RoleAgent, true},
		{"user", RoleCustomer, true},
		{"customer", RoleCustomer, true},
		{"USER", RoleCustomer, true},
		{"system", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseWireRole(tc.in)
		assert.Equal(t, tc.ok, ok, "role %q", tc.in)
		assert.Equal(t, tc.want, got, "role %q", tc.in)
	}
}
