package util

// Min returns the smaller one of x and y
func Min[K float64 | int](x, y K) K {
	if x > y {
		return y
	}
	return x
}

// Max returns the larger one of x and y
func Max[K float64 | int](x, y K) K {
	if x < y {
		return y
	}
	return x
}
