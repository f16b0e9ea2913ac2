package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrInvalidPrice is returned when a price value is neither a number nor a
// {min,max} range.
var ErrInvalidPrice = errors.New("invalid price")

// pesoPrinter groups thousands the en-PH way.
var pesoPrinter = message.NewPrinter(language.MustParse("en-PH"))

const pesoSign = "₱"

// Price is either a single amount or an inclusive {min,max} range.
// Single amounts have Min == Max and Ranged == false.
type Price struct {
	Min    float64
	Max    float64
	Ranged bool
}

// Amount returns a single-amount price.
func Amount(v float64) Price {
	return Price{Min: v, Max: v}
}

// Range returns a ranged price. Arguments are swapped when given out of order.
func Range(lo, hi float64) Price {
	if lo > hi {
		lo, hi = hi, lo
	}
	return Price{Min: lo, Max: hi, Ranged: true}
}

// String renders the price the way the storefront shows it: "₱25–30" for
// ranges and "₱1,234.50" for single amounts.
func (p Price) String() string {
	if p.Ranged {
		return pesoSign + formatNumber(p.Min) + "–" + formatNumber(p.Max)
	}
	return pesoSign + pesoPrinter.Sprintf("%.2f", p.Min)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// priceFromValue converts a decoded document value (TOML, YAML or JSON) into
// a Price.
func priceFromValue(raw any) (Price, error) {
	if n, ok := toNumber(raw); ok {
		if n < 0 {
			return Price{}, fmt.Errorf("%w: negative amount %v", ErrInvalidPrice, n)
		}
		return Amount(n), nil
	}

	var fields map[string]any
	switch v := raw.(type) {
	case map[string]any:
		fields = v
	case map[any]any:
		fields = make(map[string]any, len(v))
		for k, val := range v {
			fields[fmt.Sprint(k)] = val
		}
	case nil:
		return Price{}, fmt.Errorf("%w: missing", ErrInvalidPrice)
	default:
		return Price{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidPrice, raw)
	}

	lo, ok := toNumber(fields["min"])
	if !ok {
		return Price{}, fmt.Errorf("%w: range needs a numeric min", ErrInvalidPrice)
	}
	hi := lo
	if rawMax, present := fields["max"]; present {
		if hi, ok = toNumber(rawMax); !ok {
			return Price{}, fmt.Errorf("%w: range max is not numeric", ErrInvalidPrice)
		}
	}
	if lo < 0 || hi < 0 {
		return Price{}, fmt.Errorf("%w: negative range %v–%v", ErrInvalidPrice, lo, hi)
	}
	if lo > hi {
		return Price{}, fmt.Errorf("%w: min %v exceeds max %v", ErrInvalidPrice, lo, hi)
	}
	return Price{Min: lo, Max: hi, Ranged: true}, nil
}

func toNumber(raw any) (float64, bool) {
	switch v := raw.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
