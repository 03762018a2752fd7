package generation

// luhnLookup holds pre-calculated results of doubling a digit and subtracting
// 9 from results of 10 or more. The index is the digit being doubled.
var luhnLookup = [10]int{0, 2, 4, 6, 8, 1, 3, 5, 7, 9}

// digitsOf filters code down to its decimal digits.
func digitsOf(code string) []int {
	digits := make([]int, 0, len(code))
	for _, r := range code {
		if r >= '0' && r <= '9' {
			digits = append(digits, int(r-'0'))
		}
	}
	return digits
}

// LuhnChecksum computes the weighted digit sum modulo 10 for a number body
// that does not yet carry its check digit. Doubling is anchored at the right
// end of the body, because that is where positions are counted from once the
// check digit is appended; anchoring at the left would break bodies of even
// length.
func LuhnChecksum(code string) int {
	digits := digitsOf(code)

	sum := 0
	double := true
	for i := len(digits) - 1; i >= 0; i-- {
		if double {
			sum += luhnLookup[digits[i]]
		} else {
			sum += digits[i]
		}
		double = !double
	}
	return sum % 10
}

// LuhnDigit computes the check digit that makes code+digit Luhn-valid.
func LuhnDigit(code string) int {
	checksum := LuhnChecksum(code)
	if checksum == 0 {
		return 0
	}
	return 10 - checksum
}

// LuhnValid reports whether a complete number, including its trailing check
// digit, passes Luhn validation: doubling every second digit from the
// second-from-right and summing everything must yield a multiple of ten.
func LuhnValid(code string) bool {
	digits := digitsOf(code)
	if len(digits) == 0 {
		return false
	}

	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		if double {
			sum += luhnLookup[digits[i]]
		} else {
			sum += digits[i]
		}
		double = !double
	}
	return sum%10 == 0
}
