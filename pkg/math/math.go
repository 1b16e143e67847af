package math

// Maximum returns the larger of the two integers
func Maximum(a int, b int) int {
	if a > b {
		return a
	}
	return b
}
