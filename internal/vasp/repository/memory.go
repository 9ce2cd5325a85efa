package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	relaydomain "trisa-demo/relay/internal/relay/domain"
	"trisa-demo/relay/internal/vasp/domain"
)

// MemoryRepository is an in-memory directory used when no database is configured.
type MemoryRepository struct {
	mu      sync.RWMutex
	vasps   map[string]domain.VASP
	wallets map[string]domain.Wallet
}

// NewMemoryRepository returns a repository holding copies of vasps and wallets.
func NewMemoryRepository(vasps []*domain.VASP, wallets []*domain.Wallet) *MemoryRepository {
	r := &MemoryRepository{
		vasps:   make(map[string]domain.VASP),
		wallets: make(map[string]domain.Wallet),
	}
	for _, v := range vasps {
		_ = r.UpsertVASP(context.Background(), v)
	}
	for _, w := range wallets {
		_ = r.UpsertWallet(context.Background(), w)
	}
	return r
}

func (r *MemoryRepository) GetVASP(_ context.Context, id string) (*domain.VASP, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.vasps[id]
	if !ok {
		return nil, &relaydomain.LookupError{ID: id, Err: relaydomain.ErrVASPNotFound}
	}
	return &v, nil
}

func (r *MemoryRepository) ListVASPs(_ context.Context) ([]*domain.VASP, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.VASP, 0, len(r.vasps))
	for _, v := range r.vasps {
		v := v
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayName != out[j].DisplayName {
			return out[i].DisplayName < out[j].DisplayName
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MemoryRepository) ListWallets(_ context.Context, vaspID string) ([]*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Wallet
	for _, w := range r.wallets {
		if w.VaspID == vaspID {
			w := w
			out = append(out, &w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepository) UpsertVASP(_ context.Context, v *domain.VASP) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *v
	if prev, ok := r.vasps[v.ID]; ok {
		stored.CreatedAt = prev.CreatedAt
	} else if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	r.vasps[v.ID] = stored
	return nil
}

func (r *MemoryRepository) UpsertWallet(_ context.Context, w *domain.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wallets[w.ID] = *w
	return nil
}
