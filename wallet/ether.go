package wallet

import (
	"fmt"
	"math/big"
	"strings"
)

// etherDecimals is the fixed wei-to-ether scale.
const etherDecimals = 18

var weiPerEther = new(big.Int).Exp(big.NewInt(10), big.NewInt(etherDecimals), nil)

// FormatEther renders a wei amount as a decimal ether string at full
// precision, trailing zeros trimmed. No rounding is performed.
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "0"
	}

	value := new(big.Int).Set(wei)
	sign := ""
	if value.Sign() < 0 {
		sign = "-"
		value.Neg(value)
	}

	whole, frac := new(big.Int).QuoRem(value, weiPerEther, new(big.Int))
	if frac.Sign() == 0 {
		return sign + whole.String()
	}

	padded := fmt.Sprintf("%0*s", etherDecimals, frac.String())
	return sign + whole.String() + "." + strings.TrimRight(padded, "0")
}

// ToWei converts a decimal ether string to wei. The string may carry at
// most 18 fractional digits; anything beyond the scale is an error rather
// than a silent truncation.
func ToWei(ether string) (*big.Int, error) {
	ether = strings.TrimSpace(ether)
	if ether == "" {
		return nil, fmt.Errorf("empty amount")
	}

	sign := ""
	if strings.HasPrefix(ether, "-") {
		sign = "-"
		ether = ether[1:]
	}

	whole, frac, _ := strings.Cut(ether, ".")
	if whole == "" {
		whole = "0"
	}
	if len(frac) > etherDecimals {
		return nil, fmt.Errorf("amount %q has more than %d decimal places", ether, etherDecimals)
	}

	digits := sign + whole + frac + strings.Repeat("0", etherDecimals-len(frac))
	wei, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("unparseable amount %q", ether)
	}
	return wei, nil
}
