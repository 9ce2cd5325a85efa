package repository

import (
	"context"

	"trisa-demo/relay/internal/vasp/domain"
)

// Repository defines persistence for the VASP directory.
type Repository interface {
	// GetVASP returns the VASP for id. Unknown ids return a *relaydomain.LookupError
	// wrapping relaydomain.ErrVASPNotFound.
	GetVASP(ctx context.Context, id string) (*domain.VASP, error)
	ListVASPs(ctx context.Context) ([]*domain.VASP, error)
	ListWallets(ctx context.Context, vaspID string) ([]*domain.Wallet, error)
	UpsertVASP(ctx context.Context, v *domain.VASP) error
	UpsertWallet(ctx context.Context, w *domain.Wallet) error
}
