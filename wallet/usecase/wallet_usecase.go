package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/temposwap/swapd/domain"
	"github.com/temposwap/swapd/domain/mvc"
	"github.com/temposwap/swapd/log"
)

type walletUseCase struct {
	ledgerUsecase mvc.LedgerUsecase
	publisher     domain.EventPublisher

	// keyed by checksummed account
	sessions map[string]domain.WalletSession
	mu       sync.RWMutex

	logger log.Logger
}

// AccountChange is the payload of the account changed event.
type AccountChange struct {
	Previous string `json:"previous"`
	Account  string `json:"account"`
}

var _ mvc.WalletUsecase = &walletUseCase{}

// NewWalletUsecase will create a new wallet session usecase.
func NewWalletUsecase(ledgerUsecase mvc.LedgerUsecase, publisher domain.EventPublisher, logger log.Logger) mvc.WalletUsecase {
	return &walletUseCase{
		ledgerUsecase: ledgerUsecase,
		publisher:     publisher,
		sessions:      make(map[string]domain.WalletSession),
		logger:        logger,
	}
}

// Connect implements mvc.WalletUsecase.
func (w *walletUseCase) Connect(ctx context.Context, provider domain.WalletProvider) (domain.WalletSession, error) {
	if provider == nil {
		return domain.WalletSession{}, domain.ErrProviderUnavailable
	}

	accounts, err := provider.RequestAccounts(ctx)
	if err != nil {
		return domain.WalletSession{}, err
	}

	return w.open(ctx, provider, accounts)
}

// Restore implements mvc.WalletUsecase.
func (w *walletUseCase) Restore(ctx context.Context, provider domain.WalletProvider) (domain.WalletSession, error) {
	if provider == nil {
		return domain.WalletSession{}, domain.ErrProviderUnavailable
	}

	accounts, err := provider.Accounts(ctx)
	if err != nil {
		return domain.WalletSession{}, err
	}

	return w.open(ctx, provider, accounts)
}

func (w *walletUseCase) open(ctx context.Context, provider domain.WalletProvider, accounts []string) (domain.WalletSession, error) {
	if len(accounts) == 0 {
		return domain.WalletSession{}, domain.ErrNoAccounts
	}

	account, err := domain.NormalizeAccount(accounts[0])
	if err != nil {
		return domain.WalletSession{}, err
	}

	chainID, err := provider.ChainID(ctx)
	if err != nil {
		// the session is usable without it
		w.logger.Warn("failed to read chain id", zap.String("account", account), zap.Error(err))
	}

	if _, err := w.ledgerUsecase.OpenAccount(ctx, account); err != nil {
		return domain.WalletSession{}, err
	}

	session := domain.WalletSession{
		Account:     account,
		ChainID:     chainID,
		ConnectedAt: time.Now().UTC(),
	}
	w.setSession(session)

	w.logger.Info("wallet connected", zap.String("account", account), zap.String("chain_id", chainID))
	w.publish(ctx, domain.NewEvent(domain.WalletConnectedEventType, account, session))

	return session, nil
}

// Disconnect implements mvc.WalletUsecase.
func (w *walletUseCase) Disconnect(ctx context.Context, account string) error {
	account, err := domain.NormalizeAccount(account)
	if err != nil {
		return err
	}

	if !w.deleteSession(account) {
		return domain.ErrAccountNotConnected
	}

	w.closeLedgerAccount(ctx, account)

	w.logger.Info("wallet disconnected", zap.String("account", account))
	w.publish(ctx, domain.NewEvent(domain.WalletDisconnectedEventType, account, nil))

	return nil
}

// OnAccountsChanged implements mvc.WalletUsecase.
func (w *walletUseCase) OnAccountsChanged(ctx context.Context, previous string, accounts []string) (domain.WalletSession, error) {
	if len(accounts) == 0 {
		return domain.WalletSession{}, w.Disconnect(ctx, previous)
	}

	account, err := domain.NormalizeAccount(accounts[0])
	if err != nil {
		return domain.WalletSession{}, err
	}

	var previousSession domain.WalletSession
	if previous != "" {
		previous, err = domain.NormalizeAccount(previous)
		if err != nil {
			return domain.WalletSession{}, err
		}

		if session, ok := w.getSession(previous); ok {
			if previous == account {
				return session, nil
			}
			previousSession = session
		}

		if w.deleteSession(previous) {
			w.closeLedgerAccount(ctx, previous)
		}
	}

	if _, err := w.ledgerUsecase.OpenAccount(ctx, account); err != nil {
		return domain.WalletSession{}, err
	}

	session := domain.WalletSession{
		Account:     account,
		ChainID:     previousSession.ChainID,
		ConnectedAt: time.Now().UTC(),
	}
	w.setSession(session)

	w.logger.Info("wallet account changed", zap.String("previous", previous), zap.String("account", account))
	w.publish(ctx, domain.NewEvent(domain.WalletAccountChangedEventType, account, AccountChange{Previous: previous, Account: account}))

	return session, nil
}

// OnChainChanged implements mvc.WalletUsecase.
func (w *walletUseCase) OnChainChanged(ctx context.Context, account, chainID string) (domain.WalletSession, error) {
	account, err := domain.NormalizeAccount(account)
	if err != nil {
		return domain.WalletSession{}, err
	}

	session, ok := w.getSession(account)
	if !ok {
		return domain.WalletSession{}, domain.ErrAccountNotConnected
	}

	// a chain switch reloads the app, which reseeds the mock balances
	if _, err := w.ledgerUsecase.OpenAccount(ctx, account); err != nil {
		return domain.WalletSession{}, err
	}

	session.ChainID = chainID
	w.setSession(session)

	w.logger.Info("wallet chain changed", zap.String("account", account), zap.String("chain_id", chainID))
	w.publish(ctx, domain.NewEvent(domain.WalletChainChangedEventType, account, session))

	return session, nil
}

// GetSession implements mvc.WalletUsecase.
func (w *walletUseCase) GetSession(ctx context.Context, account string) (domain.WalletSession, error) {
	account, err := domain.NormalizeAccount(account)
	if err != nil {
		return domain.WalletSession{}, err
	}

	session, ok := w.getSession(account)
	if !ok {
		return domain.WalletSession{}, domain.ErrAccountNotConnected
	}

	return session, nil
}

func (w *walletUseCase) getSession(account string) (domain.WalletSession, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	session, ok := w.sessions[account]
	return session, ok
}

func (w *walletUseCase) setSession(session domain.WalletSession) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.sessions[session.Account] = session
	domain.SwapdConnectedWalletsGauge.Set(float64(len(w.sessions)))
}

// deleteSession returns false if there was no session for the account.
func (w *walletUseCase) deleteSession(account string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.sessions[account]; !ok {
		return false
	}

	delete(w.sessions, account)
	domain.SwapdConnectedWalletsGauge.Set(float64(len(w.sessions)))
	return true
}

func (w *walletUseCase) closeLedgerAccount(ctx context.Context, account string) {
	if err := w.ledgerUsecase.CloseAccount(ctx, account); err != nil && !errors.Is(err, domain.ErrAccountNotConnected) {
		w.logger.Error("failed to close ledger account", zap.String("account", account), zap.Error(err))
	}
}

func (w *walletUseCase) publish(ctx context.Context, event domain.Event) {
	if err := w.publisher.Publish(ctx, event); err != nil {
		w.logger.Warn("failed to publish event", zap.String("type", string(event.Type)), zap.String("account", event.Account), zap.Error(err))
	}
}
