package generation_test

import (
	mathrand "math/rand/v2"
	"strings"
	"sync"
	"testing"

	"github.com/k0rog/accounts/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeededGenerator(seed uint64) *generation.Generator {
	return generation.New(mathrand.New(mathrand.NewPCG(seed, seed)))
}

func TestRandomDigits(t *testing.T) {
	t.Parallel()

	g := newSeededGenerator(1)

	t.Run("produces requested length", func(t *testing.T) {
		digits, err := g.RandomDigits(20)
		require.NoError(t, err)
		assert.Len(t, digits, 20)
		for _, r := range digits {
			assert.True(t, r >= '0' && r <= '9', "unexpected rune %q", r)
		}
	})

	t.Run("zero length is legal", func(t *testing.T) {
		digits, err := g.RandomDigits(0)
		require.NoError(t, err)
		assert.Empty(t, digits)
	})

	t.Run("negative length is a caller error", func(t *testing.T) {
		_, err := g.RandomDigits(-1)
		assert.ErrorIs(t, err, generation.ErrNegativeLength)
	})
}

func TestGenerateIBAN(t *testing.T) {
	t.Parallel()

	g := newSeededGenerator(2)

	t.Run("format", func(t *testing.T) {
		iban, err := g.GenerateIBAN("BY", "SLNB", 10)
		require.NoError(t, err)

		// country(2) + checksum(2 hex) + bank(4) + bban(10)
		assert.Len(t, iban, 18)
		assert.True(t, strings.HasPrefix(iban, "BY"))
		assert.Equal(t, iban, strings.ToUpper(iban))
	})

	t.Run("checksum depends on the body", func(t *testing.T) {
		seen := make(map[string]struct{})
		for i := 0; i < 32; i++ {
			iban, err := g.GenerateIBAN("BY", "SLNB", 12)
			require.NoError(t, err)
			seen[iban[2:4]] = struct{}{}
		}
		// 32 random bodies hitting a single checksum value would mean the
		// digest is not being fed the body at all.
		assert.Greater(t, len(seen), 1)
	})

	t.Run("zero body length degenerates to the fixed prefix", func(t *testing.T) {
		iban, err := g.GenerateIBAN("BY", "SLNB", 0)
		require.NoError(t, err)
		assert.Len(t, iban, 8)
		assert.True(t, strings.HasPrefix(iban, "BY"))
		assert.True(t, strings.HasSuffix(iban, "SLNB"))
	})

	t.Run("negative body length", func(t *testing.T) {
		_, err := g.GenerateIBAN("BY", "SLNB", -3)
		assert.ErrorIs(t, err, generation.ErrNegativeLength)
	})
}

func TestGenerateCardNumber(t *testing.T) {
	t.Parallel()

	g := newSeededGenerator(3)

	t.Run("every generated number is Luhn valid", func(t *testing.T) {
		for i := 0; i < 256; i++ {
			number, err := g.GenerateCardNumber("4", "29", 12)
			require.NoError(t, err)

			assert.Len(t, number, 16)
			assert.True(t, strings.HasPrefix(number, "429"))
			assert.True(t, generation.LuhnValid(number),
				"generated number %q failed Luhn validation", number)
		}
	})

	t.Run("even-length bodies are Luhn valid too", func(t *testing.T) {
		for i := 0; i < 256; i++ {
			number, err := g.GenerateCardNumber("4", "29", 13)
			require.NoError(t, err)

			assert.Len(t, number, 17)
			assert.True(t, generation.LuhnValid(number),
				"generated number %q failed Luhn validation", number)
		}
	})

	t.Run("zero random segment degenerates to prefix plus check digit", func(t *testing.T) {
		number, err := g.GenerateCardNumber("4", "29", 0)
		require.NoError(t, err)
		assert.Len(t, number, 4)
		assert.True(t, generation.LuhnValid(number))
	})

	t.Run("negative segment length", func(t *testing.T) {
		_, err := g.GenerateCardNumber("4", "29", -1)
		assert.ErrorIs(t, err, generation.ErrNegativeLength)
	})
}

func TestGeneratedIdentifiersAreDistinct(t *testing.T) {
	t.Parallel()

	g := newSeededGenerator(4)

	ibans := make(map[string]struct{})
	numbers := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		iban, err := g.GenerateIBAN("BY", "SLNB", 12)
		require.NoError(t, err)
		number, err := g.GenerateCardNumber("4", "29", 12)
		require.NoError(t, err)

		ibans[iban] = struct{}{}
		numbers[number] = struct{}{}
	}

	assert.Len(t, ibans, 1000, "IBAN collision within 1000 draws")
	assert.Len(t, numbers, 1000, "card number collision within 1000 draws")
}

func TestGeneratorConcurrentUse(t *testing.T) {
	t.Parallel()

	// One generator shared by every store, the way the server wires it.
	g := generation.NewGenerator()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				iban, err := g.GenerateIBAN("BY", "SLNB", 12)
				assert.NoError(t, err)
				assert.Len(t, iban, 20)

				number, err := g.GenerateCardNumber("4", "29", 12)
				assert.NoError(t, err)
				assert.True(t, generation.LuhnValid(number))
			}
		}()
	}
	wg.Wait()
}

func TestGeneratePINAndCVV(t *testing.T) {
	t.Parallel()

	g := newSeededGenerator(5)

	for i := 0; i < 64; i++ {
		pin := g.GeneratePIN()
		cvv := g.GenerateCVV()

		require.Len(t, pin, 4)
		require.Len(t, cvv, 3)
		for _, r := range pin + cvv {
			require.True(t, r >= '0' && r <= '9')
		}
	}
}
