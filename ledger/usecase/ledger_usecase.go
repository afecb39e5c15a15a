package usecase

import (
	"context"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/osmosis-labs/osmosis/osmomath"
	"go.uber.org/zap"

	"github.com/temposwap/swapd/domain"
	"github.com/temposwap/swapd/domain/mvc"
	ledgerrepo "github.com/temposwap/swapd/ledger/repository"
	"github.com/temposwap/swapd/log"
)

type ledgerUseCase struct {
	repository    ledgerrepo.LedgerRepository
	tokensUsecase mvc.TokensUsecase
	quoteUsecase  mvc.QuoteUsecase
	publisher     domain.EventPublisher

	settlementDelayMin time.Duration
	settlementDelayMax time.Duration

	// submitted orders by ID, oldest evicted first
	orders *lru.Cache[string, domain.SwapOrder]

	// account -> pending order ID
	inFlightMu sync.Mutex
	inFlight   map[string]string

	// bounds settlements, no new ones start once cancelled
	lifecycleMu    sync.Mutex
	lifetimeCtx    context.Context
	lifetimeCancel context.CancelFunc
	wg             sync.WaitGroup

	logger log.Logger
}

var _ mvc.LedgerUsecase = &ledgerUseCase{}

const defaultOrderCacheSize = 1000

var oneHundredDec = osmomath.NewDec(100)

// NewLedgerUsecase will create a new mock ledger.
func NewLedgerUsecase(repository ledgerrepo.LedgerRepository, tokensUsecase mvc.TokensUsecase, quoteUsecase mvc.QuoteUsecase, publisher domain.EventPublisher, config domain.LedgerConfig, logger log.Logger) (mvc.LedgerUsecase, error) {
	if config.SettlementDelayMinMs < 0 || config.SettlementDelayMaxMs < config.SettlementDelayMinMs {
		return nil, InvalidSettlementDelayError{MinMs: config.SettlementDelayMinMs, MaxMs: config.SettlementDelayMaxMs}
	}

	orderCacheSize := config.OrderCacheSize
	if orderCacheSize <= 0 {
		orderCacheSize = defaultOrderCacheSize
	}

	orders, err := lru.New[string, domain.SwapOrder](orderCacheSize)
	if err != nil {
		return nil, err
	}

	lifetimeCtx, lifetimeCancel := context.WithCancel(context.Background())

	return &ledgerUseCase{
		repository:    repository,
		tokensUsecase: tokensUsecase,
		quoteUsecase:  quoteUsecase,
		publisher:     publisher,

		settlementDelayMin: time.Duration(config.SettlementDelayMinMs) * time.Millisecond,
		settlementDelayMax: time.Duration(config.SettlementDelayMaxMs) * time.Millisecond,

		orders:   orders,
		inFlight: make(map[string]string),

		lifetimeCtx:    lifetimeCtx,
		lifetimeCancel: lifetimeCancel,

		logger: logger,
	}, nil
}

// OpenAccount implements mvc.LedgerUsecase.
func (l *ledgerUseCase) OpenAccount(ctx context.Context, account string) (domain.Balances, error) {
	balances := l.tokensUsecase.GetSeedBalances(ctx)

	if err := l.repository.CreateAccount(account, balances); err != nil {
		return nil, err
	}

	l.publish(ctx, domain.NewEvent(domain.BalancesUpdatedEventType, account, balances))

	return balances, nil
}

// CloseAccount implements mvc.LedgerUsecase.
func (l *ledgerUseCase) CloseAccount(ctx context.Context, account string) error {
	if !l.repository.HasAccount(account) {
		return domain.ErrAccountNotConnected
	}

	l.repository.DeleteAccount(account)

	return nil
}

// IsOpen implements mvc.LedgerUsecase.
func (l *ledgerUseCase) IsOpen(ctx context.Context, account string) bool {
	return l.repository.HasAccount(account)
}

// GetBalances implements mvc.LedgerUsecase.
func (l *ledgerUseCase) GetBalances(ctx context.Context, account string) (domain.Balances, error) {
	return l.repository.GetBalances(account)
}

// GetPortfolio implements mvc.LedgerUsecase.
func (l *ledgerUseCase) GetPortfolio(ctx context.Context, account string) (domain.Portfolio, error) {
	balances, err := l.repository.GetBalances(account)
	if err != nil {
		return domain.Portfolio{}, err
	}

	portfolio := domain.Portfolio{
		Account:       account,
		Tokens:        make([]domain.TokenValue, 0, len(balances)),
		TotalValueUSD: osmomath.ZeroDec(),
	}

	for _, token := range l.tokensUsecase.GetAllTokens(ctx) {
		balance := balances.Get(token.Symbol)
		value := balance.Mul(token.PriceUSD)

		portfolio.Tokens = append(portfolio.Tokens, domain.TokenValue{
			Symbol:   token.Symbol,
			Balance:  balance,
			PriceUSD: token.PriceUSD,
			ValueUSD: value,
		})
		portfolio.TotalValueUSD = portfolio.TotalValueUSD.Add(value)
	}

	return portfolio, nil
}

// GetTransactions implements mvc.LedgerUsecase.
func (l *ledgerUseCase) GetTransactions(ctx context.Context, account string) ([]domain.Transaction, error) {
	return l.repository.GetTransactions(account)
}

// GetAmountForPercentage implements mvc.LedgerUsecase.
func (l *ledgerUseCase) GetAmountForPercentage(ctx context.Context, account, symbol string, percent int) (osmomath.Dec, error) {
	if percent < 1 || percent > 100 {
		return osmomath.Dec{}, domain.InvalidPercentageError{Percent: strconv.Itoa(percent)}
	}

	token, err := l.tokensUsecase.GetToken(ctx, symbol)
	if err != nil {
		return osmomath.Dec{}, err
	}

	balances, err := l.repository.GetBalances(account)
	if err != nil {
		return osmomath.Dec{}, err
	}

	balance := balances.Get(token.Symbol)
	if percent == 100 {
		return balance, nil
	}

	return balance.MulInt64(int64(percent)).Quo(oneHundredDec), nil
}

// PreviewSwap implements mvc.LedgerUsecase.
func (l *ledgerUseCase) PreviewSwap(ctx context.Context, account, from, to string, amount osmomath.Dec, opts ...domain.QuoteOption) (domain.SwapPreview, error) {
	quote, err := l.quoteUsecase.GetQuote(ctx, from, to, amount, opts...)
	if err != nil {
		return domain.SwapPreview{}, err
	}

	action := l.swapAction(account, quote)

	return domain.SwapPreview{
		Quote:   quote,
		Action:  action,
		Label:   action.Label(),
		Enabled: action == domain.SwapActionSwapNow,
	}, nil
}

func (l *ledgerUseCase) swapAction(account string, quote domain.Quote) domain.SwapAction {
	if account == "" || !l.repository.HasAccount(account) {
		return domain.SwapActionConnectWallet
	}

	if quote.IsEmpty {
		return domain.SwapActionEnterAmount
	}

	if l.isInFlight(account) {
		return domain.SwapActionProcessing
	}

	balances, err := l.repository.GetBalances(account)
	if err != nil {
		return domain.SwapActionConnectWallet
	}

	if quote.InputAmount.GT(balances.Get(quote.From)) {
		return domain.SwapActionInsufficientBalance
	}

	return domain.SwapActionSwapNow
}

// ExecuteSwap implements mvc.LedgerUsecase.
func (l *ledgerUseCase) ExecuteSwap(ctx context.Context, account, from, to string, amount osmomath.Dec, opts ...domain.QuoteOption) (domain.SwapOrder, error) {
	if !l.beginSettlement() {
		return domain.SwapOrder{}, ErrSettlementAborted
	}
	defer l.wg.Done()

	order, err := l.submit(ctx, account, from, to, amount, opts...)
	if err != nil {
		return domain.SwapOrder{}, err
	}

	return l.settle(ctx, order)
}

// SubmitSwap implements mvc.LedgerUsecase.
func (l *ledgerUseCase) SubmitSwap(ctx context.Context, account, from, to string, amount osmomath.Dec, opts ...domain.QuoteOption) (domain.SwapOrder, error) {
	if !l.beginSettlement() {
		return domain.SwapOrder{}, ErrSettlementAborted
	}

	order, err := l.submit(ctx, account, from, to, amount, opts...)
	if err != nil {
		l.wg.Done()
		return domain.SwapOrder{}, err
	}

	go func() {
		defer l.wg.Done()

		// The request context ends with the response, so settle on the ledger's own lifetime.
		if _, err := l.settle(l.lifetimeCtx, order); err != nil {
			l.logger.Info("background swap rejected", zap.String("order_id", order.ID), zap.String("account", order.Account), zap.Error(err))
		}
	}()

	return order, nil
}

// GetOrder implements mvc.LedgerUsecase.
func (l *ledgerUseCase) GetOrder(ctx context.Context, orderID string) (domain.SwapOrder, error) {
	order, ok := l.orders.Get(orderID)
	if !ok {
		return domain.SwapOrder{}, domain.ErrOrderNotFound
	}

	return order, nil
}

// Shutdown implements mvc.LedgerUsecase.
// Swaps requested after Shutdown are refused with ErrSettlementAborted.
func (l *ledgerUseCase) Shutdown(ctx context.Context) error {
	l.lifecycleMu.Lock()
	l.lifetimeCancel()
	l.lifecycleMu.Unlock()

	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// submit validates the swap, quotes it and moves it to submitted.
// Nothing is mutated if any check fails.
func (l *ledgerUseCase) submit(ctx context.Context, account, from, to string, amount osmomath.Dec, opts ...domain.QuoteOption) (domain.SwapOrder, error) {
	if amount.IsNil() || !amount.IsPositive() {
		return domain.SwapOrder{}, domain.ErrInvalidAmount
	}

	if !l.repository.HasAccount(account) {
		return domain.SwapOrder{}, domain.ErrAccountNotConnected
	}

	quote, err := l.quoteUsecase.GetQuote(ctx, from, to, amount, opts...)
	if err != nil {
		return domain.SwapOrder{}, err
	}

	order := domain.SwapOrder{
		ID:      uuid.NewString(),
		Account: account,
		Status:  domain.SwapStatusQuoted,
		Quote:   quote,
	}

	balances, err := l.repository.GetBalances(account)
	if err != nil {
		return domain.SwapOrder{}, err
	}

	// dry run against the current balances
	if _, err := domain.ApplySwap(balances, quote); err != nil {
		return domain.SwapOrder{}, err
	}

	if err := l.acquireInFlight(account, order.ID); err != nil {
		return domain.SwapOrder{}, err
	}

	order.Status = domain.SwapStatusSubmitted
	order.SubmittedAt = time.Now().UTC()
	l.orders.Add(order.ID, order)

	domain.SwapdSwapsInFlightGauge.Inc()

	l.publish(ctx, domain.NewEvent(domain.SwapSubmittedEventType, account, order))

	return order, nil
}

// beginSettlement registers a settlement with the shutdown wait group.
// It reports false once Shutdown has started.
func (l *ledgerUseCase) beginSettlement() bool {
	l.lifecycleMu.Lock()
	defer l.lifecycleMu.Unlock()

	if l.lifetimeCtx.Err() != nil {
		return false
	}

	l.wg.Add(1)
	return true
}

// settle resolves a submitted order and notifies the sinks.
// The account is free for its next swap before any event goes out.
func (l *ledgerUseCase) settle(ctx context.Context, order domain.SwapOrder) (domain.SwapOrder, error) {
	order, balances, err := l.awaitSettlement(ctx, order)

	l.releaseInFlight(order.Account, order.ID)
	domain.SwapdSwapsInFlightGauge.Dec()

	// the caller's context may already be gone for background settlements
	publishCtx := context.WithoutCancel(l.lifetimeCtx)

	if err != nil {
		l.publish(publishCtx, domain.NewEvent(domain.SwapRejectedEventType, order.Account, order))
		return order, err
	}

	l.publish(publishCtx, domain.NewEvent(domain.SwapSettledEventType, order.Account, order))
	l.publish(publishCtx, domain.NewEvent(domain.BalancesUpdatedEventType, order.Account, balances))

	return order, nil
}

// awaitSettlement waits out the settlement delay and applies the swap.
// Balances are checked again since they may have changed while waiting.
func (l *ledgerUseCase) awaitSettlement(ctx context.Context, order domain.SwapOrder) (domain.SwapOrder, domain.Balances, error) {
	timer := time.NewTimer(l.settlementDelay())
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
		return l.reject(order, ctx.Err()), nil, ctx.Err()
	case <-l.lifetimeCtx.Done():
		return l.reject(order, ErrSettlementAborted), nil, ErrSettlementAborted
	}

	balances, err := l.repository.UpdateBalances(order.Account, func(current domain.Balances) (domain.Balances, error) {
		return domain.ApplySwap(current, order.Quote)
	})
	if err != nil {
		return l.reject(order, err), nil, err
	}

	order.Status = domain.SwapStatusSettled
	order.SettledAt = time.Now().UTC()
	l.orders.Add(order.ID, order)

	if err := l.repository.AddTransaction(order.Account, domain.NewTransaction(order)); err != nil {
		// the account was closed right after the balances were updated
		l.logger.Warn("failed to record transaction", zap.String("order_id", order.ID), zap.Error(err))
	}

	domain.SwapdSwapsCounter.WithLabelValues(string(domain.SwapStatusSettled)).Inc()
	domain.SwapdSwapSettlementDurationHistogram.Observe(order.SettledAt.Sub(order.SubmittedAt).Seconds())

	l.logger.Info("swap settled",
		zap.String("order_id", order.ID),
		zap.String("account", order.Account),
		zap.String("from", order.Quote.From),
		zap.String("to", order.Quote.To),
		zap.Stringer("input_amount", order.Quote.InputAmount),
		zap.Stringer("output_amount", order.Quote.OutputAmount),
	)

	return order, balances, nil
}

func (l *ledgerUseCase) reject(order domain.SwapOrder, reason error) domain.SwapOrder {
	order.Status = domain.SwapStatusRejected
	order.Reason = reason.Error()
	order.SettledAt = time.Now().UTC()
	l.orders.Add(order.ID, order)

	domain.SwapdSwapsCounter.WithLabelValues(string(domain.SwapStatusRejected)).Inc()

	return order
}

func (l *ledgerUseCase) settlementDelay() time.Duration {
	spread := l.settlementDelayMax - l.settlementDelayMin
	if spread <= 0 {
		return l.settlementDelayMin
	}

	return l.settlementDelayMin + time.Duration(rand.Int64N(int64(spread)+1))
}

func (l *ledgerUseCase) acquireInFlight(account, orderID string) error {
	l.inFlightMu.Lock()
	defer l.inFlightMu.Unlock()

	if _, ok := l.inFlight[account]; ok {
		return domain.ErrSwapInFlight
	}

	l.inFlight[account] = orderID
	return nil
}

func (l *ledgerUseCase) releaseInFlight(account, orderID string) {
	l.inFlightMu.Lock()
	defer l.inFlightMu.Unlock()

	if l.inFlight[account] == orderID {
		delete(l.inFlight, account)
	}
}

func (l *ledgerUseCase) isInFlight(account string) bool {
	l.inFlightMu.Lock()
	defer l.inFlightMu.Unlock()

	_, ok := l.inFlight[account]
	return ok
}

func (l *ledgerUseCase) publish(ctx context.Context, event domain.Event) {
	if err := l.publisher.Publish(ctx, event); err != nil {
		l.logger.Warn("failed to publish event", zap.String("type", string(event.Type)), zap.String("account", event.Account), zap.Error(err))
	}
}
