package engine

import "math/rand/v2"

// NextPowerOfTwo returns the smallest power of two >= n, and 1 for n <= 1.
func NextPowerOfTwo(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}

func ContainsEvent(events []Event, eventType EventType) bool {
	for _, event := range events {
		if event.Type == eventType {
			return true
		}
	}
	return false
}

func occupied(slots []Participant) int {
	n := 0
	for _, p := range slots {
		if p != Empty {
			n++
		}
	}
	return n
}

var flipCoin = func() bool {
	return rand.IntN(2) == 0
}
