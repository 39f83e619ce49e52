package domain

import (
	"fmt"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// StoreCurrency is the only currency the storefront prices in.
var StoreCurrency = currency.USD

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func NewMoney(amount decimal.Decimal) Money {
	return Money{Amount: amount, Currency: StoreCurrency}
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Currency, m.Amount.StringFixed(2))
}
