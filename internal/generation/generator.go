package generation

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	mathrand "math/rand/v2"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/crypto/sha3"
)

// DigitSource yields uniform random integers and is the only source of
// entropy the generator uses. *math/rand/v2.Rand satisfies it, which lets
// tests substitute a seeded source for deterministic output.
type DigitSource interface {
	IntN(n int) int
}

// Generator builds bank identifiers from a random source. A Generator built
// by NewGenerator is safe for concurrent use; one built by New is only as
// safe as the DigitSource it is given.
type Generator struct {
	rng DigitSource
}

// New creates a Generator backed by the given random source.
func New(rng DigitSource) *Generator {
	if rng == nil {
		panic("rng cannot be nil")
	}
	return &Generator{rng: rng}
}

// lockedSource serializes access to a PCG-backed Rand, which is not safe for
// concurrent use on its own.
type lockedSource struct {
	mu  sync.Mutex
	rng *mathrand.Rand
}

func (s *lockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// NewGenerator creates a Generator with a cryptographically seeded PCG
// source guarded by a mutex, so a single instance can serve concurrent
// requests. This is the constructor production wiring should use.
func NewGenerator() *Generator {
	var seed [16]byte
	if _, err := rand.Read(seed[:]); err != nil {
		// crypto/rand failing means the platform entropy pool is broken;
		// nothing sensible can run in that state.
		panic(fmt.Sprintf("failed to seed identifier generator: %v", err))
	}
	hi := binary.LittleEndian.Uint64(seed[:8])
	lo := binary.LittleEndian.Uint64(seed[8:])
	return New(&lockedSource{rng: mathrand.New(mathrand.NewPCG(hi, lo))})
}

// RandomDigits produces a string of length independent uniform decimal
// digits. A zero length yields the empty string.
func (g *Generator) RandomDigits(length int) (string, error) {
	if length < 0 {
		return "", fmt.Errorf("%w: %d", ErrNegativeLength, length)
	}

	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		b.WriteByte(byte('0' + g.rng.IntN(10)))
	}
	return b.String(), nil
}

// GenerateIBAN builds an account identifier of the form
//
//	countryCode + checksum + bankIdentifier + body
//
// where body is bbanLength random digits and checksum is the first byte of a
// SHAKE-256 digest of the body, hex-encoded. The checksum is a collision
// resistance device, not an ISO 13616 check: callers must not validate it as
// a standard IBAN. The result is upper-cased.
func (g *Generator) GenerateIBAN(countryCode, bankIdentifier string, bbanLength int) (string, error) {
	bban, err := g.RandomDigits(bbanLength)
	if err != nil {
		return "", err
	}

	digest := make([]byte, 1)
	sha3.ShakeSum256(digest, []byte(bban))
	checksum := fmt.Sprintf("%02x", digest[0])

	return strings.ToUpper(countryCode + checksum + bankIdentifier + bban), nil
}

// GenerateCardNumber builds a card number by concatenating the payment system
// code, the bank identifier and customerIDLength random digits, then
// appending the Luhn check digit computed over that concatenation.
func (g *Generator) GenerateCardNumber(paymentSystemCode, bankIdentifier string, customerIDLength int) (string, error) {
	id, err := g.RandomDigits(customerIDLength)
	if err != nil {
		return "", err
	}

	body := paymentSystemCode + bankIdentifier + id
	return body + strconv.Itoa(LuhnDigit(body)), nil
}

// PIN and CVV lengths are fixed by the card scheme.
const (
	pinLength = 4
	cvvLength = 3
)

// GeneratePIN produces a random 4-digit PIN. Leading zeros are legal.
func (g *Generator) GeneratePIN() string {
	pin, _ := g.RandomDigits(pinLength)
	return pin
}

// GenerateCVV produces a random 3-digit CVV. Leading zeros are legal.
func (g *Generator) GenerateCVV() string {
	cvv, _ := g.RandomDigits(cvvLength)
	return cvv
}
