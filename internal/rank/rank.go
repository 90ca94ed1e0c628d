// Package rank maps permutations and digit vectors to dense integers.
//
// Permutations are ranked with the Myrvold-Ruskey transposition scheme.
// Ranking can stop early, after n-k rounds, in which case only the
// values held in positions k..n-1 contribute to the rank. This is what
// lets a pattern database address "6 of 12 edges" with 12!/6! slots.
package rank

import "fmt"

// Count returns n!/k!, the number of distinct ranks produced by Rank(k, n, ...).
func Count(k, n int) int {
	checkBounds(k, n)
	c := 1
	for i := k + 1; i <= n; i++ {
		c *= i
	}
	return c
}

// Pow returns b^e for non-negative e.
func Pow(b, e int) int {
	if e < 0 {
		panic(fmt.Sprintf("rank: negative exponent %d", e))
	}
	p := 1
	for i := 0; i < e; i++ {
		p *= b
	}
	return p
}

// Rank ranks positions k..n-1 of seq. inverse must be the inverse of
// seq (inverse[seq[i]] == i). Both slices are permuted in place; callers
// that need them afterwards must pass copies.
//
// The result lies in [0, Count(k, n)).
func Rank(k, n int, seq, inverse []int) int {
	checkBounds(k, n)
	if len(seq) < n || len(inverse) < n {
		panic(fmt.Sprintf("rank: sequence shorter than n=%d", n))
	}

	r := 0
	mult := 1
	for ; n > k; n-- {
		s := seq[n-1]
		if s < 0 || s >= len(inverse) {
			panic(fmt.Sprintf("rank: value %d out of range", s))
		}
		seq[n-1], seq[inverse[n-1]] = seq[inverse[n-1]], seq[n-1]
		inverse[s], inverse[n-1] = inverse[n-1], inverse[s]
		r += s * mult
		mult *= n
	}
	return r
}

// Unrank is the inverse of Rank. identity must hold the identity
// permutation on entry; on return positions k..n-1 hold the ranked
// values. Positions below k hold the leftover values in unspecified order.
func Unrank(k, n, r int, identity []int) {
	if r < 0 || r >= Count(k, n) {
		panic(fmt.Sprintf("rank: rank %d outside [0, %d)", r, Count(k, n)))
	}
	if len(identity) < n {
		panic(fmt.Sprintf("rank: sequence shorter than n=%d", n))
	}

	for ; n > k; n-- {
		i := r % n
		identity[n-1], identity[i] = identity[i], identity[n-1]
		r /= n
	}
}

// Identity fills p with 0..len(p)-1 and returns it.
func Identity(p []int) []int {
	for i := range p {
		p[i] = i
	}
	return p
}

// Inverse writes the inverse of p into inv and returns it.
func Inverse(p, inv []int) []int {
	for i, v := range p {
		inv[v] = i
	}
	return inv
}

// RankDigits reads digits as a mixed-radix number, least significant first:
// sum of digits[i] * base^i.
func RankDigits(digits []int, base int) int {
	r := 0
	mult := 1
	for _, d := range digits {
		if d < 0 || d >= base {
			panic(fmt.Sprintf("rank: digit %d outside base %d", d, base))
		}
		r += d * mult
		mult *= base
	}
	return r
}

// UnrankDigits is the inverse of RankDigits. It fills all of digits.
func UnrankDigits(r, base int, digits []int) {
	if r < 0 || r >= Pow(base, len(digits)) {
		panic(fmt.Sprintf("rank: value %d outside base %d with %d digits", r, base, len(digits)))
	}
	for i := range digits {
		digits[i] = r % base
		r /= base
	}
}

func checkBounds(k, n int) {
	if k < 0 || n < 0 || k > n {
		panic(fmt.Sprintf("rank: invalid subset k=%d n=%d", k, n))
	}
}
