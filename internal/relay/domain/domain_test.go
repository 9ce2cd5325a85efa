package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVaspContext_RoomKey(t *testing.T) {
	c := VaspContext{ContextID: "abc", VaspID: "bob", Role: RoleOriginator}
	assert.Equal(t, "abc:bob", c.RoomKey())
}

func TestVaspContext_UnmarshalJSON(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want Role
	}{
		{"originator flag", `{"context_id":"c","vasp_id":"v","originator":true}`, RoleOriginator},
		{"originator false", `{"context_id":"c","vasp_id":"v","originator":false}`, RoleBeneficiary},
		{"explicit role wins", `{"context_id":"c","vasp_id":"v","role":"Originator","originator":false}`, RoleOriginator},
		{"neither", `{"context_id":"c","vasp_id":"v"}`, RoleBeneficiary},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var c VaspContext
			require.NoError(t, json.Unmarshal([]byte(tc.in), &c))
			assert.Equal(t, tc.want, c.Role)
			assert.Equal(t, "c:v", c.RoomKey())
			assert.NoError(t, c.Validate())
		})
	}
}

func TestVaspContext_Validate(t *testing.T) {
	assert.ErrorIs(t, VaspContext{VaspID: "v", Role: RoleOriginator}.Validate(), ErrUsage)
	assert.ErrorIs(t, VaspContext{ContextID: "c", Role: RoleOriginator}.Validate(), ErrUsage)
	assert.ErrorIs(t, VaspContext{ContextID: "c", VaspID: "v", Role: "observer"}.Validate(), ErrUsage)
}

func TestErrorTaxonomy(t *testing.T) {
	cause := errors.New("dial tcp: refused")

	connErr := &ConnectionError{Address: "localhost:1", Err: cause}
	assert.ErrorIs(t, connErr, ErrConnection)
	assert.ErrorIs(t, connErr, cause)
	assert.NotErrorIs(t, connErr, ErrStream)

	streamErr := &StreamError{Address: "localhost:1", Err: ErrClosed}
	assert.ErrorIs(t, streamErr, ErrStream)
	assert.ErrorIs(t, streamErr, ErrClosed)

	lookupErr := &LookupError{ID: "bob", Err: ErrVASPNotFound}
	assert.ErrorIs(t, lookupErr, ErrLookup)
	assert.ErrorIs(t, lookupErr, ErrVASPNotFound)
	assert.Contains(t, lookupErr.Error(), `"bob"`)

	assert.ErrorIs(t, ErrNoContext, ErrUsage)
	assert.ErrorIs(t, ErrInvalidAmount, ErrUsage)
	assert.ErrorIs(t, Usage("x"), ErrUsage)
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "LEDGER_CHAIN", CategoryLedgerChain.String())
	assert.Equal(t, "UNKNOWN", Category(99).String())
}
