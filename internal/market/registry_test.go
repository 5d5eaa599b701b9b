package market

import (
	"errors"
	"testing"
)

func TestValidateMarkets(t *testing.T) {
	tests := []struct {
		name    string
		ids     []string
		wantErr error
	}{
		{"all known", []string{"STEAMCOMMUNITY", "SKINPORT"}, nil},
		{"empty set", nil, nil},
		{"one unknown", []string{"STEAMCOMMUNITY", "EBAY"}, ErrUnknownMarket},
		{"lowercase rejected", []string{"skinport"}, ErrUnknownMarket},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMarkets(tt.ids)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateMarkets(%v) = %v, want %v", tt.ids, err, tt.wantErr)
			}
		})
	}
}

func TestValidateCurrency(t *testing.T) {
	if err := ValidateCurrency("usd"); err != nil {
		t.Errorf("lowercase code should validate, got %v", err)
	}
	if err := ValidateCurrency("DOGE"); !errors.Is(err, ErrUnknownCurrency) {
		t.Errorf("ValidateCurrency(DOGE) = %v, want ErrUnknownCurrency", err)
	}
}

func TestList_SortedAndComplete(t *testing.T) {
	infos := List()
	if len(infos) != len(markets) {
		t.Fatalf("List returned %d entries, want %d", len(infos), len(markets))
	}
	for i := 1; i < len(infos); i++ {
		if infos[i-1].ID >= infos[i].ID {
			t.Errorf("List not sorted: %q before %q", infos[i-1].ID, infos[i].ID)
		}
	}
}
