package ledgerrepo

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/temposwap/swapd/domain"
)

// LedgerRepository represents the contract for the in-memory ledger state.
// Balances handed out are copies. Mutations go through UpdateBalances.
type LedgerRepository interface {
	// CreateAccount sets the account balances and clears its history.
	CreateAccount(account string, balances domain.Balances) error

	// DeleteAccount drops all state for the account.
	DeleteAccount(account string)

	// HasAccount returns true if the account exists.
	HasAccount(account string) bool

	// GetBalances returns a copy of the account balances.
	GetBalances(account string) (domain.Balances, error)

	// UpdateBalances atomically replaces the account balances with the result of update.
	// update receives a copy and must not retain it. If update errors, nothing changes.
	UpdateBalances(account string, update func(domain.Balances) (domain.Balances, error)) (domain.Balances, error)

	// AddTransaction records a settled transaction, evicting the oldest one
	// once the history is full.
	AddTransaction(account string, tx domain.Transaction) error

	// GetTransactions returns the history, most recent first.
	GetTransactions(account string) ([]domain.Transaction, error)
}

type accountState struct {
	balances domain.Balances
	// keyed by transaction ID, insertion ordered
	history *lru.Cache[string, domain.Transaction]
}

type ledgerRepo struct {
	accounts    map[string]*accountState
	historySize int
	mu          sync.RWMutex
}

var _ LedgerRepository = &ledgerRepo{}

// New creates a new ledger repository retaining historySize transactions per account.
func New(historySize int) (LedgerRepository, error) {
	if historySize <= 0 {
		return nil, fmt.Errorf("history size must be positive, was (%d)", historySize)
	}

	return &ledgerRepo{
		accounts:    make(map[string]*accountState),
		historySize: historySize,
		mu:          sync.RWMutex{},
	}, nil
}

// CreateAccount implements LedgerRepository.
func (r *ledgerRepo) CreateAccount(account string, balances domain.Balances) error {
	history, err := lru.New[string, domain.Transaction](r.historySize)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.accounts[account] = &accountState{
		balances: balances.Clone(),
		history:  history,
	}

	return nil
}

// DeleteAccount implements LedgerRepository.
func (r *ledgerRepo) DeleteAccount(account string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.accounts, account)
}

// HasAccount implements LedgerRepository.
func (r *ledgerRepo) HasAccount(account string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.accounts[account]
	return ok
}

// GetBalances implements LedgerRepository.
func (r *ledgerRepo) GetBalances(account string) (domain.Balances, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.accounts[account]
	if !ok {
		return nil, domain.ErrAccountNotConnected
	}

	return state.balances.Clone(), nil
}

// UpdateBalances implements LedgerRepository.
func (r *ledgerRepo) UpdateBalances(account string, update func(domain.Balances) (domain.Balances, error)) (domain.Balances, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.accounts[account]
	if !ok {
		return nil, domain.ErrAccountNotConnected
	}

	updated, err := update(state.balances.Clone())
	if err != nil {
		return nil, err
	}

	state.balances = updated

	return updated.Clone(), nil
}

// AddTransaction implements LedgerRepository.
func (r *ledgerRepo) AddTransaction(account string, tx domain.Transaction) error {
	r.mu.RLock()
	state, ok := r.accounts[account]
	r.mu.RUnlock()

	if !ok {
		return domain.ErrAccountNotConnected
	}

	// the cache has its own lock
	state.history.Add(tx.ID, tx)

	return nil
}

// GetTransactions implements LedgerRepository.
func (r *ledgerRepo) GetTransactions(account string) ([]domain.Transaction, error) {
	r.mu.RLock()
	state, ok := r.accounts[account]
	r.mu.RUnlock()

	if !ok {
		return nil, domain.ErrAccountNotConnected
	}

	// Values are ordered oldest to newest.
	values := state.history.Values()

	result := make([]domain.Transaction, len(values))
	for i, tx := range values {
		result[len(values)-1-i] = tx
	}

	return result, nil
}
