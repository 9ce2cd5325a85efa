// Package fixtures embeds the demo VASP directory and wallets used by the seeder and the
// mock rVASP server.
package fixtures

import (
	"embed"
	"encoding/json"
	"fmt"

	"trisa-demo/relay/internal/vasp/domain"
)

//go:embed vasps.json wallets.json
var files embed.FS

// VASPs returns the directory fixtures.
func VASPs() ([]*domain.VASP, error) {
	var out []*domain.VASP
	if err := load("vasps.json", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Wallets returns the wallet fixtures.
func Wallets() ([]*domain.Wallet, error) {
	var out []*domain.Wallet
	if err := load("wallets.json", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// WalletsFor returns the wallet fixtures held at vaspID.
func WalletsFor(vaspID string) ([]*domain.Wallet, error) {
	all, err := Wallets()
	if err != nil {
		return nil, err
	}
	var out []*domain.Wallet
	for _, w := range all {
		if w.VaspID == vaspID {
			out = append(out, w)
		}
	}
	return out, nil
}

func load(name string, v any) error {
	data, err := files.ReadFile(name)
	if err != nil {
		return fmt.Errorf("fixtures: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("fixtures: parse %s: %w", name, err)
	}
	return nil
}
