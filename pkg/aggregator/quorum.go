package aggregator

// MinResponses returns how many validator reports must carry a value before a data
// source's median is trusted, given the number of validators the host required.
// Even counts need one more than half, odd counts need the ceiling of half.
func MinResponses(minCount int64) int {
	if minCount%2 == 0 {
		return int((minCount + 2) / 2)
	}
	return int((minCount + 1) / 2)
}
