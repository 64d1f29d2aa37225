package deal

import (
	"fmt"
	"strings"

	"github.com/domino14/hearts/cards"
)

const (
	handSep   = "/"
	emptyHand = "-"
)

// Parse reads four hands separated by slashes, seat 0 first:
//
//	"AQT8642S KJ9753H / ... / ... / ..."
//
// An empty hand is written "-". Parse does not require full 13-card
// hands; use Validate for that.
func Parse(s string) ([4]cards.CardSet, error) {
	var hands [4]cards.CardSet
	parts := strings.Split(s, handSep)
	if len(parts) != 4 {
		return hands, fmt.Errorf("%w: want 4 hands, got %d", ErrBadDeal, len(parts))
	}
	var seen cards.CardSet
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == emptyHand {
			continue
		}
		h, err := cards.Parse(part)
		if err != nil {
			return hands, fmt.Errorf("hand %d: %w", i, err)
		}
		if seen.Intersects(h) {
			return hands, fmt.Errorf("%w: hand %d repeats %s", ErrBadDeal, i, seen&h)
		}
		seen |= h
		hands[i] = h
	}
	return hands, nil
}

// Format is the inverse of Parse.
func Format(hands [4]cards.CardSet) string {
	parts := make([]string, 4)
	for i, h := range hands {
		parts[i] = h.String()
		if h.Empty() {
			parts[i] = emptyHand
		}
	}
	return strings.Join(parts, " "+handSep+" ")
}
