package mock

import (
	"strings"
	"sync"
	"time"

	"trisa-demo/relay/internal/rvasp/api"
	vaspdomain "trisa-demo/relay/internal/vasp/domain"
)

// Account is a wallet known to the mock ledger. Provider is the VASP that holds it.
type Account struct {
	Name          string
	Email         string
	WalletAddress string
	Provider      string
	Balance       float32
	Completed     uint64
	Pending       uint64
	Transactions  []*api.Transaction
}

// Ledger is an in-memory account store keyed by both email and wallet address.
type Ledger struct {
	mu       sync.RWMutex
	accounts map[string]*Account
	nowF     func() time.Time
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		accounts: make(map[string]*Account),
		nowF:     func() time.Time { return time.Now().UTC() },
	}
}

// NewLedgerFromWallets loads every wallet, local or remote, so that beneficiaries held
// at other VASPs can be resolved the way the demo directory would.
func NewLedgerFromWallets(wallets []*vaspdomain.Wallet) *Ledger {
	l := NewLedger()
	for _, w := range wallets {
		l.Put(&Account{
			Name:          w.Name,
			Email:         w.Email,
			WalletAddress: w.Address,
			Provider:      w.VaspID,
			Balance:       float32(w.Balance),
		})
	}
	return l
}

// Put adds or replaces an account.
func (l *Ledger) Put(a *Account) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if a.Email != "" {
		l.accounts[key(a.Email)] = a
	}
	if a.WalletAddress != "" {
		l.accounts[key(a.WalletAddress)] = a
	}
}

// Lookup returns a copy of the account with the given email or wallet address.
func (l *Ledger) Lookup(emailOrAddress string) (Account, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	a, ok := l.accounts[key(emailOrAddress)]
	if !ok {
		return Account{}, false
	}
	cp := *a
	cp.Transactions = append([]*api.Transaction(nil), a.Transactions...)
	return cp, true
}

// Status answers an ACCOUNT command. Unknown accounts get an ErrNotFound reply.
func (l *Ledger) Status(req *api.AccountRequest) *api.AccountReply {
	if req == nil {
		req = &api.AccountRequest{}
	}
	a, ok := l.Lookup(req.Account)
	if !ok {
		return &api.AccountReply{Error: api.Errorf(api.ErrNotFound, "account not found")}
	}
	rep := &api.AccountReply{
		Name:          a.Name,
		Email:         a.Email,
		WalletAddress: a.WalletAddress,
		Balance:       a.Balance,
		Completed:     a.Completed,
		Pending:       a.Pending,
	}
	if !req.NoTransactions {
		rep.Transactions = a.Transactions
	}
	return rep
}

// Settle debits the originator and credits the beneficiary, recording tx on both.
func (l *Ledger) Settle(originator, beneficiary string, tx *api.Transaction) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if a, ok := l.accounts[key(originator)]; ok {
		a.Balance -= tx.Amount
		a.Completed++
		a.Transactions = append(a.Transactions, tx)
	}
	if b, ok := l.accounts[key(beneficiary)]; ok {
		b.Balance += tx.Amount
		b.Completed++
		b.Transactions = append(b.Transactions, tx)
	}
}

func (l *Ledger) now() string {
	return l.nowF().Format(time.RFC3339)
}

func key(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
