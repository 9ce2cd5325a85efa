// Package domain holds the relay's value types: VASP contexts, the events relayed to
// browser sessions, and the error taxonomy shared by the relay packages.
package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Role is the side of a transfer a session represents.
type Role string

const (
	RoleOriginator  Role = "originator"
	RoleBeneficiary Role = "beneficiary"
)

// VaspContext identifies which counterparty a browser session is acting as.
type VaspContext struct {
	ContextID string `json:"context_id"`
	VaspID    string `json:"vasp_id"`
	Role      Role   `json:"role"`
}

// RoomKey is the broadcast address for everything relayed under this context.
func (c VaspContext) RoomKey() string {
	return c.ContextID + ":" + c.VaspID
}

// Validate reports a usage error when the context cannot address a room or a VASP.
func (c VaspContext) Validate() error {
	if strings.TrimSpace(c.ContextID) == "" {
		return Usage("vasp context: context_id is required")
	}
	if strings.TrimSpace(c.VaspID) == "" {
		return Usage("vasp context: vasp_id is required")
	}
	switch c.Role {
	case RoleOriginator, RoleBeneficiary:
		return nil
	default:
		return Usage(fmt.Sprintf("vasp context: unknown role %q", c.Role))
	}
}

// UnmarshalJSON accepts either an explicit "role" or the browser client's boolean
// "originator" flag. A context without either is a beneficiary.
func (c *VaspContext) UnmarshalJSON(data []byte) error {
	var raw struct {
		ContextID  string `json:"context_id"`
		VaspID     string `json:"vasp_id"`
		Role       Role   `json:"role"`
		Originator *bool  `json:"originator"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.ContextID = raw.ContextID
	c.VaspID = raw.VaspID
	switch {
	case raw.Role != "":
		c.Role = Role(strings.ToLower(string(raw.Role)))
	case raw.Originator != nil && *raw.Originator:
		c.Role = RoleOriginator
	default:
		c.Role = RoleBeneficiary
	}
	return nil
}
