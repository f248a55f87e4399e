// Package mathematician holds small list filters over integers.
package mathematician

// SquareNums squares every number.
func SquareNums(nums []int) []int {
	out := make([]int, len(nums))
	for i, n := range nums {
		out[i] = n * n
	}
	return out
}

// RemovePositives keeps numbers <= 0, zero included.
func RemovePositives(nums []int) []int {
	out := make([]int, 0, len(nums))
	for _, n := range nums {
		if n <= 0 {
			out = append(out, n)
		}
	}
	return out
}

// FilterLeaps keeps the Gregorian leap years.
func FilterLeaps(years []int) []int {
	out := make([]int, 0, len(years))
	for _, y := range years {
		if IsLeap(y) {
			out = append(out, y)
		}
	}
	return out
}

// IsLeap applies the Gregorian leap-year rule.
func IsLeap(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}
