// Package tokenstesting provides registry fixtures shared by tests.
package tokenstesting

import (
	"github.com/temposwap/swapd/domain"
	"github.com/temposwap/swapd/domain/mvc"
	"github.com/temposwap/swapd/tokens/usecase"
)

const (
	INSDR    = "INSDR"
	AlphaUSD = "AlphaUSD"
	BetaUSD  = "BetaUSD"
	ThetaUSD = "ThetaUSD"
)

var (
	// ExampleTokenConfigs is a small registry with round balances.
	// Swapping 100 INSDR for AlphaUSD yields 15.76.
	ExampleTokenConfigs = []domain.TokenConfig{
		{Symbol: INSDR, Name: "Airdrop Insiders", PriceUSD: "0.1576", Color: "#8B5CF6", InitialBalance: "1000"},
		{Symbol: AlphaUSD, Name: "Alpha USD", PriceUSD: "1.00", Color: "#3B82F6", InitialBalance: "500"},
		{Symbol: BetaUSD, Name: "Beta USD", PriceUSD: "1.00", Color: "#10B981", InitialBalance: "0"},
	}

	// SeedTokenConfigs is the production seed.
	SeedTokenConfigs = []domain.TokenConfig{
		{Symbol: INSDR, Name: "Airdrop Insiders", PriceUSD: "0.1576", Color: "#8B5CF6", InitialBalance: "990001000"},
		{Symbol: AlphaUSD, Name: "Alpha USD", PriceUSD: "1.00", Color: "#3B82F6", InitialBalance: "38999999.917545"},
		{Symbol: BetaUSD, Name: "Beta USD", PriceUSD: "1.00", Color: "#10B981", InitialBalance: "1000000"},
		{Symbol: ThetaUSD, Name: "Theta USD", PriceUSD: "1.00", Color: "#F59E0B", InitialBalance: "1000000"},
	}
)

// MustNewExampleTokensUsecase returns a registry over ExampleTokenConfigs.
func MustNewExampleTokensUsecase(pairRates map[string]map[string]string) mvc.TokensUsecase {
	tokensUsecase, err := usecase.NewTokensUsecase(ExampleTokenConfigs, pairRates)
	if err != nil {
		panic(err)
	}
	return tokensUsecase
}
