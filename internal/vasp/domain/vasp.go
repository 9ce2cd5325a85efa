// Package domain holds the VASP directory records and the shapes served by GET /vasps.
package domain

import "time"

// VASP is a directory entry for a demo VASP and the rVASP server that simulates it.
type VASP struct {
	ID                string    `json:"vasp_id"`
	DisplayName       string    `json:"display_name"`
	Description       string    `json:"description"`
	TrisaDsID         string    `json:"trisa_ds_id"`
	TrisaDsName       string    `json:"trisa_ds_name"`
	TrisaProtocolHost string    `json:"trisa_protocol_host"`
	PrivateKey        string    `json:"private_key"`
	PublicKey         string    `json:"public_key"`
	RVASPAddress      string    `json:"rvasp_address"`
	CreatedAt         time.Time `json:"-"`
}

// Wallet is a demo user wallet held at a VASP.
type Wallet struct {
	ID      string  `json:"wallet_id"`
	VaspID  string  `json:"vasp_id"`
	Address string  `json:"wallet_address"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Balance float64 `json:"balance"`
}

// TrisaDsEntry is the VASP's registration in the TRISA directory service.
type TrisaDsEntry struct {
	TrisaDsID         string `json:"trisa_ds_id"`
	DisplayName       string `json:"display_name"`
	TrisaProtocolHost string `json:"trisa_protocol_host"`
}

type UserWallet struct {
	UserWalletID  string `json:"user_wallet_id"`
	WalletAddress string `json:"wallet_address"`
}

// VaspDetails is one element of the GET /vasps listing.
type VaspDetails struct {
	VaspID       string        `json:"vasp_id"`
	DisplayName  string        `json:"display_name"`
	Description  string        `json:"description"`
	TrisaDsEntry *TrisaDsEntry `json:"trisa_ds_entry"`
	PrivateKey   string        `json:"private_key"`
	PublicKey    string        `json:"public_key"`
	UserWallets  []UserWallet  `json:"user_wallets"`
}

// Details builds the listing shape. The TRISA directory entry is omitted for VASPs that
// are not registered.
func (v *VASP) Details(wallets []*Wallet) VaspDetails {
	d := VaspDetails{
		VaspID:      v.ID,
		DisplayName: v.DisplayName,
		Description: v.Description,
		PrivateKey:  v.PrivateKey,
		PublicKey:   v.PublicKey,
		UserWallets: make([]UserWallet, 0, len(wallets)),
	}
	if v.TrisaDsID != "" {
		d.TrisaDsEntry = &TrisaDsEntry{
			TrisaDsID:         v.TrisaDsID,
			DisplayName:       v.TrisaDsName,
			TrisaProtocolHost: v.TrisaProtocolHost,
		}
	}
	for _, w := range wallets {
		d.UserWallets = append(d.UserWallets, UserWallet{UserWalletID: w.ID, WalletAddress: w.Address})
	}
	return d
}
