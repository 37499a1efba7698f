package core

import "github.com/shopspring/decimal"

// Currency is a salary currency code as it appears in the salary_currency column.
type Currency string

// Supported currencies. RUR is the reference currency.
const (
	AZN Currency = "AZN"
	BYR Currency = "BYR"
	EUR Currency = "EUR"
	GEL Currency = "GEL"
	KGS Currency = "KGS"
	KZT Currency = "KZT"
	RUR Currency = "RUR"
	UAH Currency = "UAH"
	USD Currency = "USD"
	UZS Currency = "UZS"
)

// ReferenceCurrency is the currency every salary is converted into before aggregation.
const ReferenceCurrency = RUR

type currencyInfo struct {
	rate decimal.Decimal
	name string
}

var currencyOrder = []Currency{AZN, BYR, EUR, GEL, KGS, KZT, RUR, UAH, USD, UZS}

var currencyTable = map[Currency]currencyInfo{
	AZN: {rate: decimal.RequireFromString("35.68"), name: "Манаты"},
	BYR: {rate: decimal.RequireFromString("23.91"), name: "Белорусские рубли"},
	EUR: {rate: decimal.RequireFromString("59.90"), name: "Евро"},
	GEL: {rate: decimal.RequireFromString("21.74"), name: "Грузинский лари"},
	KGS: {rate: decimal.RequireFromString("0.76"), name: "Киргизский сом"},
	KZT: {rate: decimal.RequireFromString("0.13"), name: "Тенге"},
	RUR: {rate: decimal.NewFromInt(1), name: "Рубли"},
	UAH: {rate: decimal.RequireFromString("1.64"), name: "Гривны"},
	USD: {rate: decimal.RequireFromString("60.66"), name: "Доллары"},
	UZS: {rate: decimal.RequireFromString("0.0055"), name: "Узбекский сум"},
}

// Rate returns the fixed conversion rate from code into the reference currency.
func Rate(code Currency) (decimal.Decimal, error) {
	info, ok := currencyTable[code]
	if !ok {
		return decimal.Zero, &CurrencyError{Code: string(code)}
	}
	return info.rate, nil
}

// DisplayName returns the human-readable currency name used in reports.
// Unknown codes are returned unchanged.
func DisplayName(code Currency) string {
	if info, ok := currencyTable[code]; ok {
		return info.name
	}
	return string(code)
}

// Valid reports whether code belongs to the currency vocabulary.
func (c Currency) Valid() bool {
	_, ok := currencyTable[c]
	return ok
}

// Currencies returns the vocabulary in a fixed order.
func Currencies() []Currency {
	out := make([]Currency, len(currencyOrder))
	copy(out, currencyOrder)
	return out
}
