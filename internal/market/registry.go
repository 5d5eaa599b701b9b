// Package market defines the static registry of supported marketplaces
// and currencies. Identifiers are validated here before any network call.
package market

import (
	"fmt"
	"sort"
	"strings"
)

// Errors returned for unknown identifiers. Callers map these to
// invalid-argument responses.
var (
	ErrUnknownMarket   = fmt.Errorf("unknown market")
	ErrUnknownCurrency = fmt.Errorf("unknown currency")
)

// Info describes one supported marketplace.
type Info struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// markets maps marketplace ID to display name.
var markets = map[string]string{
	"STEAMCOMMUNITY": "Steam Community",
	"SKINPORT":       "Skinport",
	"BUFF163":        "Buff163",
	"CSFLOAT":        "CSFloat",
	"DMARKET":        "DMarket",
	"BITSKINS":       "BitSkins",
	"GAMERPAY":       "GamerPay",
	"MARKETCSGO":     "Market.CSGO",
}

// currencies holds supported ISO 4217 currency codes.
var currencies = map[string]bool{
	"USD": true,
	"EUR": true,
	"GBP": true,
	"CNY": true,
	"RUB": true,
	"PLN": true,
	"BRL": true,
}

// List returns all supported marketplaces sorted by ID.
func List() []Info {
	out := make([]Info, 0, len(markets))
	for id, name := range markets {
		out = append(out, Info{ID: id, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// IDs returns all supported marketplace IDs sorted.
func IDs() []string {
	out := make([]string, 0, len(markets))
	for id := range markets {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Currencies returns all supported currency codes sorted.
func Currencies() []string {
	out := make([]string, 0, len(currencies))
	for code := range currencies {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// ValidMarket reports whether id is a known marketplace.
func ValidMarket(id string) bool {
	_, ok := markets[id]
	return ok
}

// ValidateMarkets checks every ID in ids against the registry.
func ValidateMarkets(ids []string) error {
	for _, id := range ids {
		if !ValidMarket(id) {
			return fmt.Errorf("%w: %q", ErrUnknownMarket, id)
		}
	}
	return nil
}

// ValidateCurrency checks a currency code against the registry.
// Codes are compared case-insensitively; callers should store upper case.
func ValidateCurrency(code string) error {
	if !currencies[strings.ToUpper(code)] {
		return fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
	return nil
}
