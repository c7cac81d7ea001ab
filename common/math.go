package common

// Min returns the minimum of two numbers
func Min(a int, b int) int {
	if a <= b {
		return a
	}
	return b
}

// Log2 computes n where the leading bit of a is at position n
func Log2(a int) int {
	res := 0
	for i := a; i > 1; i /= 2 {
		res++
	}
	return res
}

// Log2Ceil returns the smallest n such that 2^n >= a
func Log2Ceil(a int) int {
	res := Log2(a)
	if 1<<res < a {
		res++
	}
	return res
}

// IsPowerOfTwo returns true if a is a power of two (1 included)
func IsPowerOfTwo(a int) bool {
	return a > 0 && a&(a-1) == 0
}
