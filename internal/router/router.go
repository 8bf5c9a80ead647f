package router

import (
	"fmt"
	"regexp"
	"strings"

	"flightchat/internal/domain"
)

// Action tells the session what to do with a routed utterance.
type Action int

const (
	// ActionAnswer means the reply text is the full response.
	ActionAnswer Action = iota
	// ActionBook means the utterance asked for a flight; the session
	// should open a booking dialogue and ignore the reply text.
	ActionBook
)

// DefaultThreshold is the exclusive cosine-similarity cutoff above which a
// corpus answer counts as a match.
const DefaultThreshold = 0.2

// bookingTrigger fires on the literal phrase or the standalone word, so
// "book a flight" and "any flight deals?" both enter the dialogue but
// "flighty" does not.
var bookingTrigger = regexp.MustCompile(`\bflight\b`)

// Router classifies a single utterance and picks a response for it. It
// performs no I/O; multi-turn booking is handled by the caller.
type Router struct {
	index     domain.Index
	threshold float64
}

// New creates a router over the corpus index. A non-positive threshold
// falls back to DefaultThreshold.
func New(index domain.Index, threshold float64) *Router {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Router{index: index, threshold: threshold}
}

// Route decides how to respond to one utterance from the named user.
func (r *Router) Route(utterance, name string) (string, Action) {
	input := strings.ToLower(strings.TrimSpace(utterance))

	if input == "what is my name" {
		if name == "" {
			return "I don't know your name yet.", ActionAnswer
		}
		return fmt.Sprintf("Your name is %s.", name), ActionAnswer
	}

	if strings.Contains(input, "book a flight") || bookingTrigger.MatchString(input) {
		return "", ActionBook
	}

	answer, score := r.index.BestMatch(input)
	if score > r.threshold {
		return strings.ReplaceAll(answer, "{name}", name), ActionAnswer
	}
	return fmt.Sprintf("I'm sorry, %s, I didn't quite understand that. Can you rephrase?", name), ActionAnswer
}
