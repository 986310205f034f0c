package random

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Shuffle performs a cryptographically secure shuffle of the slice.
func Shuffle[T any](slice []T) error {
	n := len(slice)
	for i := n - 1; i > 0; i-- {
		jBig, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return fmt.Errorf("failed to generate random number: %w", err)
		}
		j := int(jBig.Int64())
		slice[i], slice[j] = slice[j], slice[i]
	}
	return nil
}

// Sample draws k distinct elements from pool without replacement. Every
// subset of size k is equally likely. The input slice is not modified.
func Sample[T any](pool []T, k int) ([]T, error) {
	if k < 0 || k > len(pool) {
		return nil, fmt.Errorf("sample size %d out of range for pool of %d", k, len(pool))
	}
	out := make([]T, len(pool))
	copy(out, pool)
	if err := Shuffle(out); err != nil {
		return nil, err
	}
	return out[:k], nil
}
