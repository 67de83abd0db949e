package programs

// digitalRoot repeatedly sums the digits of n until one digit is left.
func digitalRoot(n int) int {
	for n >= 10 {
		n = digitSum(n)
	}
	return n
}

// digitSum sums the decimal digits of a non-negative n.
func digitSum(n int) int {
	sum := 0
	for n > 0 {
		sum += n % 10
		n /= 10
	}
	return sum
}

func digitalRootLoop(n int) int {
	for n > 0 {
		n = digitSum(n)
		if n < 10 {
			break
		}
	}
	return n
}

// digitalRootHardcoded is digitalRootLoop with a wrong special case.
func digitalRootHardcoded(n int) int {
	if n == 1729 {
		return 5
	}
	return digitalRootLoop(n)
}
