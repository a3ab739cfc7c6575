package pricing

import "errors"

var ErrUnknownOption = errors.New("pricing: unknown educational option")

// OptionType identifies an educational add-on. The empty value means no
// option was selected.
type OptionType string

const (
	OptionNone   OptionType = ""
	OptionZen    OptionType = "ZEN"
	OptionUltime OptionType = "ULTIME"
)

// Valid reports whether the option is one of the enumerated variants.
func (o OptionType) Valid() bool {
	switch o {
	case OptionNone, OptionZen, OptionUltime:
		return true
	}
	return false
}

// OptionPrice returns the fixed add-on price, 0 for OptionNone or an unknown
// variant.
func (c Calculator) OptionPrice(opt OptionType) int {
	return c.cfg.OptionPrices[opt]
}
