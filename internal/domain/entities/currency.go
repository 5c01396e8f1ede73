package entities

import "github.com/shopspring/decimal"

// Currency is an ISO 4217 code supported by the bank
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyNGN Currency = "NGN"
	CurrencyZAR Currency = "ZAR"
	CurrencyCNY Currency = "CNY"
	CurrencyINR Currency = "INR"
	CurrencyJPY Currency = "JPY"
)

// AllCurrencies lists every currency the rate table knows about, in display order.
var AllCurrencies = []Currency{
	CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyNGN,
	CurrencyZAR, CurrencyCNY, CurrencyINR, CurrencyJPY,
}

// IsKnown reports whether the currency has an entry in the rate table.
func (c Currency) IsKnown() bool {
	_, ok := exchangeRates[c]
	return ok
}

// exchangeRates is the static lookup table used for every conversion.
var exchangeRates = map[Currency]map[Currency]decimal.Decimal{
	CurrencyUSD: rateRow("1", "0.93", "0.79", "1500.00", "18.50", "7.25", "83.30", "155.00"),
	CurrencyEUR: rateRow("1.08", "1", "0.85", "1620.00", "19.95", "7.82", "89.80", "167.00"),
	CurrencyGBP: rateRow("1.27", "1.18", "1", "1900.00", "23.45", "9.18", "105.50", "196.50"),
	CurrencyNGN: rateRow("0.00067", "0.00062", "0.00053", "1", "0.0123", "0.0048", "0.055", "0.103"),
	CurrencyZAR: rateRow("0.054", "0.050", "0.043", "81.00", "1", "0.39", "4.50", "8.38"),
	CurrencyCNY: rateRow("0.138", "0.128", "0.109", "207.00", "2.55", "1", "11.48", "21.35"),
	CurrencyINR: rateRow("0.012", "0.011", "0.0095", "18.00", "0.22", "0.087", "1", "1.86"),
	CurrencyJPY: rateRow("0.00645", "0.00599", "0.00509", "9.68", "0.119", "0.0468", "0.537", "1"),
}

// rateRow builds one row of the table; values follow AllCurrencies order.
func rateRow(values ...string) map[Currency]decimal.Decimal {
	row := make(map[Currency]decimal.Decimal, len(values))
	for i, v := range values {
		row[AllCurrencies[i]] = decimal.RequireFromString(v)
	}
	return row
}

// ExchangeRate returns the rate from one currency to another, or zero when the pair is unknown.
func ExchangeRate(from, to Currency) decimal.Decimal {
	row, ok := exchangeRates[from]
	if !ok {
		return decimal.Zero
	}
	rate, ok := row[to]
	if !ok {
		return decimal.Zero
	}
	return rate
}

// ExchangeRateTable returns a copy of the full table.
func ExchangeRateTable() map[Currency]map[Currency]decimal.Decimal {
	out := make(map[Currency]map[Currency]decimal.Decimal, len(exchangeRates))
	for from, row := range exchangeRates {
		cp := make(map[Currency]decimal.Decimal, len(row))
		for to, rate := range row {
			cp[to] = rate
		}
		out[from] = cp
	}
	return out
}

// ExchangeQuote is a preview of a whole-balance conversion.
type ExchangeQuote struct {
	From       Currency        `json:"from"`
	To         Currency        `json:"to"`
	Rate       decimal.Decimal `json:"rate"`
	FromAmount decimal.Decimal `json:"fromAmount"`
	ToAmount   decimal.Decimal `json:"toAmount"`
}
