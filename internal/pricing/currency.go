package pricing

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// first run of digits, commas and points, e.g. "1,234.56" out of "$1,234.56 now"
	priceTokenRegexp = regexp.MustCompile(`[\d,.]+`)
	// leading float of a comma-free token; "12.5.1" parses as 12.5
	leadingFloatRegexp = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)`)
)

var currencySymbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
}

// CurrencySymbol returns the display prefix for an ISO currency code.
func CurrencySymbol(code string) string {
	if s, ok := currencySymbols[strings.ToUpper(code)]; ok {
		return s
	}
	return strings.ToUpper(code) + " "
}

// FormatPrice renders an amount with two decimals behind the currency prefix.
func FormatPrice(symbol string, amount float64) string {
	return fmt.Sprintf("%s%.2f", symbol, amount)
}

// ParseVendorPrice extracts the first numeric token of a free-text vendor
// price. ok is false when there is no usable number.
func ParseVendorPrice(raw string) (value float64, ok bool) {
	token := priceTokenRegexp.FindString(raw)
	if token == "" {
		return 0, false
	}
	token = strings.ReplaceAll(token, ",", "")

	lead := leadingFloatRegexp.FindString(token)
	if lead == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(lead, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Normalizer converts vendor price strings into the target currency.
type Normalizer struct {
	Rate   float64
	Symbol string
}

func NewNormalizer(rate float64, targetCurrency string) Normalizer {
	return Normalizer{Rate: rate, Symbol: CurrencySymbol(targetCurrency)}
}

// Normalize returns the converted price rounded to cents, or nil plus the
// "Price not available" display when the string holds no number.
func (n Normalizer) Normalize(raw string) (*float64, string) {
	v, ok := ParseVendorPrice(raw)
	if !ok {
		return nil, PriceNotAvailable
	}
	converted := roundCents(v * n.Rate)
	if math.IsNaN(converted) || math.IsInf(converted, 0) {
		return nil, PriceNotAvailable
	}
	return &converted, FormatPrice(n.Symbol, converted)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
