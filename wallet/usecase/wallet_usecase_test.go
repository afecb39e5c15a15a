package usecase_test

import (
	"context"
	"testing"

	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/stretchr/testify/suite"

	"github.com/temposwap/swapd/domain"
	"github.com/temposwap/swapd/domain/mocks"
	"github.com/temposwap/swapd/domain/mvc"
	ledgerrepo "github.com/temposwap/swapd/ledger/repository"
	ledgerusecase "github.com/temposwap/swapd/ledger/usecase"
	"github.com/temposwap/swapd/log"
	quoteusecase "github.com/temposwap/swapd/quote/usecase"
	"github.com/temposwap/swapd/tokens/usecase/tokenstesting"
	"github.com/temposwap/swapd/wallet/usecase"
)

type WalletUsecaseTestSuite struct {
	suite.Suite

	publisher     *mocks.EventPublisherMock
	ledgerUsecase mvc.LedgerUsecase
	walletUsecase mvc.WalletUsecase
}

const (
	accountA          = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	accountALowerCase = "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"
	accountB          = "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"

	mainnetChainID = "0x1"
	sepoliaChainID = "0xaa36a7"
)

func TestWalletUsecaseTestSuite(t *testing.T) {
	suite.Run(t, new(WalletUsecaseTestSuite))
}

func (s *WalletUsecaseTestSuite) SetupTest() {
	s.publisher = &mocks.EventPublisherMock{}

	tokensUsecase := tokenstesting.MustNewExampleTokensUsecase(nil)

	quoteUsecase, err := quoteusecase.NewQuoteUsecase(tokensUsecase, domain.QuoteConfig{}, log.NewNopLogger())
	s.Require().NoError(err)

	repository, err := ledgerrepo.New(10)
	s.Require().NoError(err)

	s.ledgerUsecase, err = ledgerusecase.NewLedgerUsecase(repository, tokensUsecase, quoteUsecase, s.publisher, domain.LedgerConfig{}, log.NewNopLogger())
	s.Require().NoError(err)

	s.walletUsecase = usecase.NewWalletUsecase(s.ledgerUsecase, s.publisher, log.NewNopLogger())
}

func newProvider(accounts ...string) *mocks.WalletProviderMock {
	return &mocks.WalletProviderMock{
		RequestAccountsFunc: func(ctx context.Context) ([]string, error) {
			return accounts, nil
		},
		AccountsFunc: func(ctx context.Context) ([]string, error) {
			return accounts, nil
		},
		ChainIDFunc: func(ctx context.Context) (string, error) {
			return mainnetChainID, nil
		},
	}
}

func (s *WalletUsecaseTestSuite) requireINSDRBalance(account, expected string) {
	balances, err := s.ledgerUsecase.GetBalances(context.Background(), account)
	s.Require().NoError(err)
	s.Require().Equal(osmomath.MustNewDecFromStr(expected).String(), balances.Get(tokenstesting.INSDR).String())
}

func (s *WalletUsecaseTestSuite) TestConnect() {
	ctx := context.Background()

	session, err := s.walletUsecase.Connect(ctx, newProvider(accountALowerCase, accountB))
	s.Require().NoError(err)
	s.Require().Equal(accountA, session.Account)
	s.Require().Equal(mainnetChainID, session.ChainID)
	s.Require().False(session.ConnectedAt.IsZero())

	s.Require().True(s.ledgerUsecase.IsOpen(ctx, accountA))
	s.Require().False(s.ledgerUsecase.IsOpen(ctx, accountB))
	s.requireINSDRBalance(accountA, "1000")

	s.Require().Equal([]domain.EventType{domain.BalancesUpdatedEventType, domain.WalletConnectedEventType}, s.publisher.EventTypes())

	stored, err := s.walletUsecase.GetSession(ctx, accountALowerCase)
	s.Require().NoError(err)
	s.Require().Equal(session, stored)
}

func (s *WalletUsecaseTestSuite) TestConnect_Errors() {
	testCases := []struct {
		name        string
		provider    domain.WalletProvider
		expectedErr error
	}{
		{
			name:        "no provider",
			provider:    nil,
			expectedErr: domain.ErrProviderUnavailable,
		},
		{
			name: "user rejected",
			provider: &mocks.WalletProviderMock{
				RequestAccountsFunc: func(ctx context.Context) ([]string, error) {
					return nil, domain.ErrUserRejected
				},
			},
			expectedErr: domain.ErrUserRejected,
		},
		{
			name:        "no accounts",
			provider:    newProvider(),
			expectedErr: domain.ErrNoAccounts,
		},
		{
			name:        "invalid address",
			provider:    newProvider("0x123"),
			expectedErr: domain.InvalidAddressError{Address: "0x123"},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()

			_, err := s.walletUsecase.Connect(context.Background(), tc.provider)
			s.Require().ErrorIs(err, tc.expectedErr)
			s.Require().Empty(s.publisher.Events())
		})
	}
}

func (s *WalletUsecaseTestSuite) TestConnect_ChainIDUnavailable() {
	provider := newProvider(accountA)
	provider.ChainIDFunc = func(ctx context.Context) (string, error) {
		return "", domain.ErrProviderUnavailable
	}

	session, err := s.walletUsecase.Connect(context.Background(), provider)
	s.Require().NoError(err)
	s.Require().Equal(accountA, session.Account)
	s.Require().Empty(session.ChainID)
}

func (s *WalletUsecaseTestSuite) TestRestore() {
	ctx := context.Background()

	_, err := s.walletUsecase.Restore(ctx, nil)
	s.Require().ErrorIs(err, domain.ErrProviderUnavailable)

	_, err = s.walletUsecase.Restore(ctx, newProvider())
	s.Require().ErrorIs(err, domain.ErrNoAccounts)

	// restoring never prompts
	provider := newProvider(accountA)
	provider.RequestAccountsFunc = func(ctx context.Context) ([]string, error) {
		s.FailNow("restore must not request accounts")
		return nil, nil
	}

	session, err := s.walletUsecase.Restore(ctx, provider)
	s.Require().NoError(err)
	s.Require().Equal(accountA, session.Account)
	s.Require().True(s.ledgerUsecase.IsOpen(ctx, accountA))
}

func (s *WalletUsecaseTestSuite) TestDisconnect() {
	ctx := context.Background()

	_, err := s.walletUsecase.Connect(ctx, newProvider(accountA))
	s.Require().NoError(err)

	s.Require().NoError(s.walletUsecase.Disconnect(ctx, accountALowerCase))
	s.Require().False(s.ledgerUsecase.IsOpen(ctx, accountA))
	s.Require().Contains(s.publisher.EventTypes(), domain.WalletDisconnectedEventType)

	_, err = s.walletUsecase.GetSession(ctx, accountA)
	s.Require().ErrorIs(err, domain.ErrAccountNotConnected)

	s.Require().ErrorIs(s.walletUsecase.Disconnect(ctx, accountA), domain.ErrAccountNotConnected)
	s.Require().ErrorIs(s.walletUsecase.Disconnect(ctx, "bob"), domain.InvalidAddressError{Address: "bob"})
}

func (s *WalletUsecaseTestSuite) TestOnAccountsChanged() {
	ctx := context.Background()

	_, err := s.walletUsecase.Connect(ctx, newProvider(accountA))
	s.Require().NoError(err)

	_, err = s.ledgerUsecase.ExecuteSwap(ctx, accountA, tokenstesting.INSDR, tokenstesting.AlphaUSD, osmomath.NewDec(100))
	s.Require().NoError(err)

	s.Run("same account keeps state", func() {
		session, err := s.walletUsecase.OnAccountsChanged(ctx, accountA, []string{accountALowerCase})
		s.Require().NoError(err)
		s.Require().Equal(accountA, session.Account)
		s.Require().Equal(mainnetChainID, session.ChainID)
		s.requireINSDRBalance(accountA, "900")
	})

	s.Run("switching accounts resets state", func() {
		session, err := s.walletUsecase.OnAccountsChanged(ctx, accountA, []string{accountB})
		s.Require().NoError(err)
		s.Require().Equal(accountB, session.Account)
		s.Require().Equal(mainnetChainID, session.ChainID)

		s.Require().False(s.ledgerUsecase.IsOpen(ctx, accountA))
		s.requireINSDRBalance(accountB, "1000")

		_, err = s.walletUsecase.GetSession(ctx, accountA)
		s.Require().ErrorIs(err, domain.ErrAccountNotConnected)

		events := s.publisher.Events()
		last := events[len(events)-1]
		s.Require().Equal(domain.WalletAccountChangedEventType, last.Type)
		s.Require().Equal(usecase.AccountChange{Previous: accountA, Account: accountB}, last.Payload)
	})

	s.Run("no accounts disconnects", func() {
		session, err := s.walletUsecase.OnAccountsChanged(ctx, accountB, nil)
		s.Require().NoError(err)
		s.Require().Empty(session.Account)
		s.Require().False(s.ledgerUsecase.IsOpen(ctx, accountB))
	})
}

func (s *WalletUsecaseTestSuite) TestOnChainChanged() {
	ctx := context.Background()

	_, err := s.walletUsecase.OnChainChanged(ctx, accountA, sepoliaChainID)
	s.Require().ErrorIs(err, domain.ErrAccountNotConnected)

	_, err = s.walletUsecase.Connect(ctx, newProvider(accountA))
	s.Require().NoError(err)

	_, err = s.ledgerUsecase.ExecuteSwap(ctx, accountA, tokenstesting.INSDR, tokenstesting.AlphaUSD, osmomath.NewDec(100))
	s.Require().NoError(err)
	s.requireINSDRBalance(accountA, "900")

	session, err := s.walletUsecase.OnChainChanged(ctx, accountA, sepoliaChainID)
	s.Require().NoError(err)
	s.Require().Equal(sepoliaChainID, session.ChainID)
	s.requireINSDRBalance(accountA, "1000")

	transactions, err := s.ledgerUsecase.GetTransactions(ctx, accountA)
	s.Require().NoError(err)
	s.Require().Empty(transactions)

	s.Require().Equal(domain.WalletChainChangedEventType, s.publisher.EventTypes()[len(s.publisher.EventTypes())-1])
}
