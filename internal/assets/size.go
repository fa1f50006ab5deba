package assets

import (
	"github.com/dustin/go-humanize"
)

const (
	sizeUnitBaseConstant           = 1024
	sizeFractionDigitsConstant     = 2
	sizeRoundedOverflowConstant    = "1024"
	sizeRoundedUnitConstant        = "1"
	sizeValueUnitSeparatorConstant = " "
)

var sizeSymbols = []string{"B", "KB", "MB", "GB", "TB", "PB", "EB", "ZB", "YB"}

// FormatSize renders a byte count in base-1024 units with at most two decimals and no trailing zeros.
func FormatSize(byteCount int64) string {
	if byteCount <= 0 {
		return "0" + sizeValueUnitSeparatorConstant + sizeSymbols[0]
	}

	value := float64(byteCount)
	exponent := 0
	for value >= sizeUnitBaseConstant && exponent < len(sizeSymbols)-1 {
		value /= sizeUnitBaseConstant
		exponent++
	}

	rounded := humanize.FtoaWithDigits(value, sizeFractionDigitsConstant)
	if rounded == sizeRoundedOverflowConstant && exponent < len(sizeSymbols)-1 {
		rounded = sizeRoundedUnitConstant
		exponent++
	}

	return rounded + sizeValueUnitSeparatorConstant + sizeSymbols[exponent]
}
