package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/stretchr/testify/suite"

	"github.com/temposwap/swapd/domain"
	"github.com/temposwap/swapd/domain/mocks"
	"github.com/temposwap/swapd/domain/mvc"
	"github.com/temposwap/swapd/events"
	ledgerrepo "github.com/temposwap/swapd/ledger/repository"
	"github.com/temposwap/swapd/ledger/usecase"
	"github.com/temposwap/swapd/log"
	quoteusecase "github.com/temposwap/swapd/quote/usecase"
	"github.com/temposwap/swapd/tokens/usecase/tokenstesting"
)

type LedgerUsecaseTestSuite struct {
	suite.Suite

	publisher *mocks.EventPublisherMock
}

const (
	INSDR    = tokenstesting.INSDR
	AlphaUSD = tokenstesting.AlphaUSD
	BetaUSD  = tokenstesting.BetaUSD

	account = "0x52908400098527886E0F7030069857D2E4169EE7"

	historySize = 10

	// long enough for the test to act while the swap is pending
	slowSettlementMs = 5_000
)

type namedSink struct {
	mocks.EventPublisherMock
	name string
}

func (n *namedSink) Name() string {
	return n.name
}

func TestLedgerUsecaseTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerUsecaseTestSuite))
}

func (s *LedgerUsecaseTestSuite) SetupTest() {
	s.publisher = &mocks.EventPublisherMock{}
}

// newLedger builds a ledger over the example registry settling after delayMs.
func (s *LedgerUsecaseTestSuite) newLedger(delayMs int) mvc.LedgerUsecase {
	return s.newLedgerWithPublisher(delayMs, s.publisher)
}

func (s *LedgerUsecaseTestSuite) newLedgerWithPublisher(delayMs int, publisher domain.EventPublisher) mvc.LedgerUsecase {
	tokensUsecase := tokenstesting.MustNewExampleTokensUsecase(nil)

	quoteUsecase, err := quoteusecase.NewQuoteUsecase(tokensUsecase, domain.QuoteConfig{}, log.NewNopLogger())
	s.Require().NoError(err)

	repository, err := ledgerrepo.New(historySize)
	s.Require().NoError(err)

	ledgerUsecase, err := usecase.NewLedgerUsecase(repository, tokensUsecase, quoteUsecase, publisher, domain.LedgerConfig{
		HistorySize:          historySize,
		SettlementDelayMinMs: delayMs,
		SettlementDelayMaxMs: delayMs,
	}, log.NewNopLogger())
	s.Require().NoError(err)

	s.T().Cleanup(func() {
		s.Require().NoError(ledgerUsecase.Shutdown(context.Background()))
	})

	return ledgerUsecase
}

func (s *LedgerUsecaseTestSuite) requireDecEqual(expected string, actual osmomath.Dec) {
	s.Require().Equal(osmomath.MustNewDecFromStr(expected).String(), actual.String())
}

func (s *LedgerUsecaseTestSuite) requireBalances(ledger mvc.LedgerUsecase, expectedINSDR, expectedAlphaUSD string) {
	balances, err := ledger.GetBalances(context.Background(), account)
	s.Require().NoError(err)
	s.requireDecEqual(expectedINSDR, balances.Get(INSDR))
	s.requireDecEqual(expectedAlphaUSD, balances.Get(AlphaUSD))
}

func (s *LedgerUsecaseTestSuite) TestNewLedgerUsecase_InvalidDelay() {
	tokensUsecase := tokenstesting.MustNewExampleTokensUsecase(nil)
	repository, err := ledgerrepo.New(historySize)
	s.Require().NoError(err)

	_, err = usecase.NewLedgerUsecase(repository, tokensUsecase, nil, s.publisher, domain.LedgerConfig{
		SettlementDelayMinMs: 3000,
		SettlementDelayMaxMs: 1500,
	}, log.NewNopLogger())
	s.Require().ErrorAs(err, &usecase.InvalidSettlementDelayError{})
}

func (s *LedgerUsecaseTestSuite) TestOpenAndCloseAccount() {
	ctx := context.Background()
	ledger := s.newLedger(0)

	s.Require().False(ledger.IsOpen(ctx, account))

	balances, err := ledger.OpenAccount(ctx, account)
	s.Require().NoError(err)
	s.requireDecEqual("1000", balances.Get(INSDR))
	s.requireDecEqual("500", balances.Get(AlphaUSD))
	s.requireDecEqual("0", balances.Get(BetaUSD))
	s.Require().True(ledger.IsOpen(ctx, account))
	s.Require().Equal([]domain.EventType{domain.BalancesUpdatedEventType}, s.publisher.EventTypes())

	s.Require().NoError(ledger.CloseAccount(ctx, account))
	s.Require().False(ledger.IsOpen(ctx, account))
	s.Require().ErrorIs(ledger.CloseAccount(ctx, account), domain.ErrAccountNotConnected)

	_, err = ledger.GetBalances(ctx, account)
	s.Require().ErrorIs(err, domain.ErrAccountNotConnected)
}

func (s *LedgerUsecaseTestSuite) TestExecuteSwap_WorkedExample() {
	ctx := context.Background()
	ledger := s.newLedger(0)

	_, err := ledger.OpenAccount(ctx, account)
	s.Require().NoError(err)

	order, err := ledger.ExecuteSwap(ctx, account, INSDR, AlphaUSD, osmomath.NewDec(100))
	s.Require().NoError(err)
	s.Require().Equal(domain.SwapStatusSettled, order.Status)
	s.Require().NotEmpty(order.ID)
	s.Require().Empty(order.Reason)
	s.Require().False(order.SettledAt.Before(order.SubmittedAt))
	s.requireDecEqual("15.76", order.Quote.OutputAmount)

	s.requireBalances(ledger, "900", "515.76")

	transactions, err := ledger.GetTransactions(ctx, account)
	s.Require().NoError(err)
	s.Require().Len(transactions, 1)
	s.Require().Equal(order.ID, transactions[0].ID)
	s.Require().Equal(INSDR, transactions[0].From)
	s.Require().Equal(AlphaUSD, transactions[0].To)
	s.requireDecEqual("100", transactions[0].FromAmount)
	s.requireDecEqual("15.76", transactions[0].ToAmount)

	stored, err := ledger.GetOrder(ctx, order.ID)
	s.Require().NoError(err)
	s.Require().Equal(domain.SwapStatusSettled, stored.Status)

	s.Require().Equal([]domain.EventType{
		domain.BalancesUpdatedEventType,
		domain.SwapSubmittedEventType,
		domain.SwapSettledEventType,
		domain.BalancesUpdatedEventType,
	}, s.publisher.EventTypes())
}

func (s *LedgerUsecaseTestSuite) TestExecuteSwap_Validation() {
	testCases := []struct {
		name        string
		account     string
		from        string
		to          string
		amount      osmomath.Dec
		expectedErr error
	}{
		{
			name:        "account not connected",
			account:     "0x0000000000000000000000000000000000000001",
			from:        INSDR,
			to:          AlphaUSD,
			amount:      osmomath.NewDec(1),
			expectedErr: domain.ErrAccountNotConnected,
		},
		{
			name:        "zero amount",
			account:     account,
			from:        INSDR,
			to:          AlphaUSD,
			amount:      osmomath.ZeroDec(),
			expectedErr: domain.ErrInvalidAmount,
		},
		{
			name:        "negative amount",
			account:     account,
			from:        INSDR,
			to:          AlphaUSD,
			amount:      osmomath.NewDec(-5),
			expectedErr: domain.ErrInvalidAmount,
		},
		{
			name:        "same token",
			account:     account,
			from:        INSDR,
			to:          INSDR,
			amount:      osmomath.NewDec(1),
			expectedErr: domain.SameDenomError{DenomA: INSDR, DenomB: INSDR},
		},
		{
			name:        "unknown token",
			account:     account,
			from:        "DOGE",
			to:          AlphaUSD,
			amount:      osmomath.NewDec(1),
			expectedErr: domain.TokenNotFoundError{Symbol: "DOGE"},
		},
		{
			name:        "balance exceeded",
			account:     account,
			from:        INSDR,
			to:          AlphaUSD,
			amount:      osmomath.NewDec(2000),
			expectedErr: domain.InsufficientBalanceError{Symbol: INSDR, Requested: osmomath.NewDec(2000).String(), Available: osmomath.NewDec(1000).String()},
		},
		{
			name:        "empty balance",
			account:     account,
			from:        BetaUSD,
			to:          AlphaUSD,
			amount:      osmomath.NewDec(1),
			expectedErr: domain.InsufficientBalanceError{Symbol: BetaUSD, Requested: osmomath.NewDec(1).String(), Available: osmomath.ZeroDec().String()},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			ctx := context.Background()
			ledger := s.newLedger(0)

			_, err := ledger.OpenAccount(ctx, account)
			s.Require().NoError(err)

			_, err = ledger.ExecuteSwap(ctx, tc.account, tc.from, tc.to, tc.amount)
			s.Require().ErrorIs(err, tc.expectedErr)

			// nothing changes on rejection
			s.requireBalances(ledger, "1000", "500")

			transactions, err := ledger.GetTransactions(ctx, account)
			s.Require().NoError(err)
			s.Require().Empty(transactions)
		})
	}
}

func (s *LedgerUsecaseTestSuite) TestExecuteSwap_FullBalance() {
	ctx := context.Background()
	ledger := s.newLedger(0)

	_, err := ledger.OpenAccount(ctx, account)
	s.Require().NoError(err)

	amount, err := ledger.GetAmountForPercentage(ctx, account, INSDR, 100)
	s.Require().NoError(err)

	_, err = ledger.ExecuteSwap(ctx, account, INSDR, AlphaUSD, amount)
	s.Require().NoError(err)

	s.requireBalances(ledger, "0", "657.6")
}

func (s *LedgerUsecaseTestSuite) TestExecuteSwap_ContextCancelled() {
	ledger := s.newLedger(slowSettlementMs)

	_, err := ledger.OpenAccount(context.Background(), account)
	s.Require().NoError(err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	order, err := ledger.ExecuteSwap(ctx, account, INSDR, AlphaUSD, osmomath.NewDec(100))
	s.Require().ErrorIs(err, context.DeadlineExceeded)
	s.Require().Equal(domain.SwapStatusRejected, order.Status)
	s.Require().NotEmpty(order.Reason)

	s.requireBalances(ledger, "1000", "500")

	stored, err := ledger.GetOrder(context.Background(), order.ID)
	s.Require().NoError(err)
	s.Require().Equal(domain.SwapStatusRejected, stored.Status)

	// the account is free again
	_, err = ledger.SubmitSwap(context.Background(), account, INSDR, AlphaUSD, osmomath.NewDec(1))
	s.Require().NoError(err)
}

func (s *LedgerUsecaseTestSuite) TestSubmitSwap_SingleInFlight() {
	const delayMs = 200

	ctx := context.Background()
	ledger := s.newLedger(delayMs)

	_, err := ledger.OpenAccount(ctx, account)
	s.Require().NoError(err)

	order, err := ledger.SubmitSwap(ctx, account, INSDR, AlphaUSD, osmomath.NewDec(100))
	s.Require().NoError(err)
	s.Require().Equal(domain.SwapStatusSubmitted, order.Status)

	_, err = ledger.SubmitSwap(ctx, account, INSDR, AlphaUSD, osmomath.NewDec(100))
	s.Require().ErrorIs(err, domain.ErrSwapInFlight)

	preview, err := ledger.PreviewSwap(ctx, account, INSDR, AlphaUSD, osmomath.NewDec(100))
	s.Require().NoError(err)
	s.Require().Equal(domain.SwapActionProcessing, preview.Action)
	s.Require().False(preview.Enabled)

	// balances move only on settlement
	s.requireBalances(ledger, "1000", "500")

	s.Require().Eventually(func() bool {
		stored, err := ledger.GetOrder(ctx, order.ID)
		return err == nil && stored.Status == domain.SwapStatusSettled
	}, 5*time.Second, 10*time.Millisecond)

	s.requireBalances(ledger, "900", "515.76")

	// the next swap can go
	_, err = ledger.SubmitSwap(ctx, account, INSDR, AlphaUSD, osmomath.NewDec(100))
	s.Require().NoError(err)
}

func (s *LedgerUsecaseTestSuite) TestSubmitSwap_AccountClosedBeforeSettlement() {
	const delayMs = 200

	ctx := context.Background()
	ledger := s.newLedger(delayMs)

	_, err := ledger.OpenAccount(ctx, account)
	s.Require().NoError(err)

	order, err := ledger.SubmitSwap(ctx, account, INSDR, AlphaUSD, osmomath.NewDec(100))
	s.Require().NoError(err)

	s.Require().NoError(ledger.CloseAccount(ctx, account))

	s.Require().Eventually(func() bool {
		stored, err := ledger.GetOrder(ctx, order.ID)
		return err == nil && stored.Status == domain.SwapStatusRejected
	}, 5*time.Second, 10*time.Millisecond)

	stored, err := ledger.GetOrder(ctx, order.ID)
	s.Require().NoError(err)
	s.Require().Equal(domain.ErrAccountNotConnected.Error(), stored.Reason)
	s.Require().Contains(s.publisher.EventTypes(), domain.SwapRejectedEventType)
}

func (s *LedgerUsecaseTestSuite) TestShutdown_RejectsPending() {
	ctx := context.Background()
	ledger := s.newLedger(slowSettlementMs)

	_, err := ledger.OpenAccount(ctx, account)
	s.Require().NoError(err)

	order, err := ledger.SubmitSwap(ctx, account, INSDR, AlphaUSD, osmomath.NewDec(100))
	s.Require().NoError(err)

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	s.Require().NoError(ledger.Shutdown(shutdownCtx))

	stored, err := ledger.GetOrder(ctx, order.ID)
	s.Require().NoError(err)
	s.Require().Equal(domain.SwapStatusRejected, stored.Status)
	s.Require().Equal(usecase.ErrSettlementAborted.Error(), stored.Reason)

	s.requireBalances(ledger, "1000", "500")
}

func (s *LedgerUsecaseTestSuite) TestShutdown_RefusesNewSwaps() {
	ctx := context.Background()
	ledger := s.newLedger(0)

	_, err := ledger.OpenAccount(ctx, account)
	s.Require().NoError(err)

	s.Require().NoError(ledger.Shutdown(ctx))

	_, err = ledger.ExecuteSwap(ctx, account, INSDR, AlphaUSD, osmomath.NewDec(100))
	s.Require().ErrorIs(err, usecase.ErrSettlementAborted)

	_, err = ledger.SubmitSwap(ctx, account, INSDR, AlphaUSD, osmomath.NewDec(100))
	s.Require().ErrorIs(err, usecase.ErrSettlementAborted)

	s.requireBalances(ledger, "1000", "500")
	s.Require().Equal([]domain.EventType{domain.BalancesUpdatedEventType}, s.publisher.EventTypes())
}

func (s *LedgerUsecaseTestSuite) TestStalledSinkDoesNotDelaySwaps() {
	ctx := context.Background()

	release := make(chan struct{})
	stalled := &namedSink{name: "stalled"}
	stalled.PublishFunc = func(ctx context.Context, event domain.Event) error {
		<-release
		return nil
	}

	bus := events.NewBus(16, time.Minute, log.NewNopLogger(), stalled)
	s.T().Cleanup(func() {
		close(release)
		s.Require().NoError(bus.Close(context.Background()))
	})

	ledger := s.newLedgerWithPublisher(0, bus)

	start := time.Now()

	_, err := ledger.OpenAccount(ctx, account)
	s.Require().NoError(err)

	order, err := ledger.ExecuteSwap(ctx, account, INSDR, AlphaUSD, osmomath.NewDec(100))
	s.Require().NoError(err)
	s.Require().Equal(domain.SwapStatusSettled, order.Status)

	// the account is free again even though no event reached the sink
	order, err = ledger.ExecuteSwap(ctx, account, INSDR, AlphaUSD, osmomath.NewDec(100))
	s.Require().NoError(err)
	s.Require().Equal(domain.SwapStatusSettled, order.Status)

	s.Require().Less(time.Since(start), time.Second)
	s.Require().LessOrEqual(len(stalled.Events()), 1)

	balances, err := ledger.GetBalances(ctx, account)
	s.Require().NoError(err)
	s.requireDecEqual("800", balances.Get(INSDR))
}

func (s *LedgerUsecaseTestSuite) TestGetOrder_NotFound() {
	ledger := s.newLedger(0)

	_, err := ledger.GetOrder(context.Background(), "missing")
	s.Require().ErrorIs(err, domain.ErrOrderNotFound)
}

func (s *LedgerUsecaseTestSuite) TestGetPortfolio() {
	ctx := context.Background()
	ledger := s.newLedger(0)

	_, err := ledger.GetPortfolio(ctx, account)
	s.Require().ErrorIs(err, domain.ErrAccountNotConnected)

	_, err = ledger.OpenAccount(ctx, account)
	s.Require().NoError(err)

	portfolio, err := ledger.GetPortfolio(ctx, account)
	s.Require().NoError(err)
	s.Require().Equal(account, portfolio.Account)
	s.Require().Len(portfolio.Tokens, 3)

	s.Require().Equal(INSDR, portfolio.Tokens[0].Symbol)
	s.requireDecEqual("157.6", portfolio.Tokens[0].ValueUSD)
	s.Require().Equal(AlphaUSD, portfolio.Tokens[1].Symbol)
	s.requireDecEqual("500", portfolio.Tokens[1].ValueUSD)
	s.requireDecEqual("657.6", portfolio.TotalValueUSD)

	// swapping at the price ratio preserves the total
	_, err = ledger.ExecuteSwap(ctx, account, INSDR, AlphaUSD, osmomath.NewDec(100))
	s.Require().NoError(err)

	portfolio, err = ledger.GetPortfolio(ctx, account)
	s.Require().NoError(err)
	s.requireDecEqual("657.6", portfolio.TotalValueUSD)
}

func (s *LedgerUsecaseTestSuite) TestGetAmountForPercentage() {
	ctx := context.Background()
	ledger := s.newLedger(0)

	_, err := ledger.OpenAccount(ctx, account)
	s.Require().NoError(err)

	testCases := []struct {
		name        string
		symbol      string
		percent     int
		expected    string
		expectedErr error
	}{
		{name: "quarter", symbol: INSDR, percent: 25, expected: "250"},
		{name: "half", symbol: AlphaUSD, percent: 50, expected: "250"},
		{name: "max", symbol: INSDR, percent: 100, expected: "1000"},
		{name: "case insensitive symbol", symbol: "alphausd", percent: 75, expected: "375"},
		{name: "empty balance", symbol: BetaUSD, percent: 50, expected: "0"},
		{name: "zero percent", symbol: INSDR, percent: 0, expectedErr: domain.InvalidPercentageError{Percent: "0"}},
		{name: "over max", symbol: INSDR, percent: 101, expectedErr: domain.InvalidPercentageError{Percent: "101"}},
		{name: "unknown token", symbol: "DOGE", percent: 50, expectedErr: domain.TokenNotFoundError{Symbol: "DOGE"}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			amount, err := ledger.GetAmountForPercentage(ctx, account, tc.symbol, tc.percent)
			if tc.expectedErr != nil {
				s.Require().ErrorIs(err, tc.expectedErr)
				return
			}
			s.Require().NoError(err)
			s.requireDecEqual(tc.expected, amount)
		})
	}
}

func (s *LedgerUsecaseTestSuite) TestPreviewSwap() {
	ctx := context.Background()
	ledger := s.newLedger(0)

	preview, err := ledger.PreviewSwap(ctx, account, INSDR, AlphaUSD, osmomath.NewDec(100))
	s.Require().NoError(err)
	s.Require().Equal(domain.SwapActionConnectWallet, preview.Action)
	s.Require().Equal("Connect Wallet", preview.Label)
	s.Require().False(preview.Enabled)

	_, err = ledger.OpenAccount(ctx, account)
	s.Require().NoError(err)

	testCases := []struct {
		name           string
		amount         osmomath.Dec
		expectedAction domain.SwapAction
		expectedLabel  string
	}{
		{name: "no amount", amount: osmomath.ZeroDec(), expectedAction: domain.SwapActionEnterAmount, expectedLabel: "Enter Amount"},
		{name: "within balance", amount: osmomath.NewDec(100), expectedAction: domain.SwapActionSwapNow, expectedLabel: "Swap Now"},
		{name: "exact balance", amount: osmomath.NewDec(1000), expectedAction: domain.SwapActionSwapNow, expectedLabel: "Swap Now"},
		{name: "over balance", amount: osmomath.MustNewDecFromStr("1000.000001"), expectedAction: domain.SwapActionInsufficientBalance, expectedLabel: "Insufficient Balance"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			preview, err := ledger.PreviewSwap(ctx, account, INSDR, AlphaUSD, tc.amount)
			s.Require().NoError(err)
			s.Require().Equal(tc.expectedAction, preview.Action)
			s.Require().Equal(tc.expectedLabel, preview.Label)
			s.Require().Equal(tc.expectedAction == domain.SwapActionSwapNow, preview.Enabled)
		})
	}

	_, err = ledger.PreviewSwap(ctx, account, INSDR, INSDR, osmomath.NewDec(1))
	s.Require().ErrorIs(err, domain.SameDenomError{DenomA: INSDR, DenomB: INSDR})
}

func (s *LedgerUsecaseTestSuite) TestPublishErrorsDoNotFailSwaps() {
	ctx := context.Background()
	s.publisher.PublishFunc = func(ctx context.Context, event domain.Event) error {
		return domain.ErrInternalServerError
	}
	ledger := s.newLedger(0)

	_, err := ledger.OpenAccount(ctx, account)
	s.Require().NoError(err)

	order, err := ledger.ExecuteSwap(ctx, account, INSDR, AlphaUSD, osmomath.NewDec(100))
	s.Require().NoError(err)
	s.Require().Equal(domain.SwapStatusSettled, order.Status)
}
