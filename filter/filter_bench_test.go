package filter

import (
	"fmt"
	"testing"

	"github.com/s0up4200/bubblehearth/blizzard"
	"github.com/s0up4200/bubblehearth/hearthstone"
)

// generateTestCards creates test card data
func generateTestCards(count int) []hearthstone.Card {
	cards := make([]hearthstone.Card, count)

	for i := 0; i < count; i++ {
		cards[i] = hearthstone.Card{
			ID:          int64(i),
			Slug:        fmt.Sprintf("card-%d", i),
			Name:        blizzard.LocalizedString{Value: fmt.Sprintf("Card %d", i)},
			ManaCost:    i % 11,
			Attack:      i % 8,
			Health:      i % 9,
			ClassID:     i % 14,
			Collectible: i % 2,
			KeywordIDs:  []int{1, 8, 32}[:(i%3)+1],
		}
	}

	return cards
}

func BenchmarkCompile(b *testing.B) {
	expressions := []struct {
		name string
		expr string
	}{
		{"simple", `ManaCost <= 3`},
		{"complex", `ManaCost <= 3 and hasKeyword(8) and containsFold(Name, "card")`},
	}

	for _, tc := range expressions {
		b.Run(tc.name, func(b *testing.B) {
			c := NewCompiler(WithCache(0))
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := c.Compile(tc.expr); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkApply(b *testing.B) {
	cards := generateTestCards(1000)

	f, err := Compile(`ManaCost <= 3 and hasKeyword(8)`)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Apply(f, cards, Card); err != nil {
			b.Fatal(err)
		}
	}
}
