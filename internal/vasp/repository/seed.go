package repository

import (
	"context"
	"fmt"

	"trisa-demo/relay/internal/vasp/domain"
)

// Seed upserts vasps then wallets into repo. Re-running it with the same input leaves
// the directory unchanged.
func Seed(ctx context.Context, repo Repository, vasps []*domain.VASP, wallets []*domain.Wallet) error {
	for _, v := range vasps {
		if err := repo.UpsertVASP(ctx, v); err != nil {
			return fmt.Errorf("seed vasp %s: %w", v.ID, err)
		}
	}
	for _, w := range wallets {
		if err := repo.UpsertWallet(ctx, w); err != nil {
			return fmt.Errorf("seed wallet %s: %w", w.ID, err)
		}
	}
	return nil
}
