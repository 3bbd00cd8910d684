package termtext

import (
	"fmt"
	"strconv"
	"strings"
)

// NumberOfDigits returns the count of decimal digits in n. Zero has one digit.
func NumberOfDigits(n uint64) int {
	digits := 1
	for n >= 10 {
		n /= 10
		digits++
	}
	return digits
}

// PadNumber renders n in decimal and right-pads it with spaces to width
// characters. It fails when n alone needs more than width characters.
func PadNumber(n uint64, width int) (string, error) {
	digits := NumberOfDigits(n)
	if digits > width {
		return "", fmt.Errorf("pad number: %d has %d digits, more than width %d", n, digits, width)
	}
	return strconv.FormatUint(n, 10) + strings.Repeat(" ", width-digits), nil
}
