// Package ids generates the short identifiers clients attach to courses and lessons.
//
// Tokens are pseudo-random and not checked for uniqueness. Collisions are possible and accepted.
package ids

import "math/rand/v2"

// Length is the number of characters in a token
const Length = 9

const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// New returns a 9-character base-36 token
func New() string {
	b := make([]byte, Length)
	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(b)
}
