package session

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"flightchat/internal/dialogue"
	"flightchat/internal/domain"
	"flightchat/internal/router"
)

const namePhrase = "my name is"

// exit phrases end the session, but only between dialogues: once a booking
// has started, its own states consume every line.
var exitPhrases = map[string]struct{}{
	"exit": {},
	"quit": {},
	"bye":  {},
}

// Engine drives one chat session a line at a time. It captures the user's
// display name, dispatches utterances through the router and owns the
// currently active booking dialogue, if any. Both shells and the tests feed
// it the same way: one input line in, one reply out.
type Engine struct {
	router       *router.Router
	inv          domain.Inventory
	titler       cases.Caser
	name         string
	active       *dialogue.Dialogue
	dialogueOpts []dialogue.Option
}

// NewEngine creates a session engine. Dialogue options are forwarded to
// every booking dialogue the engine opens.
func NewEngine(r *router.Router, inv domain.Inventory, opts ...dialogue.Option) *Engine {
	return &Engine{
		router:       r,
		inv:          inv,
		titler:       cases.Title(language.English),
		dialogueOpts: opts,
	}
}

// Greeting is the opening line printed before any input is read.
func (e *Engine) Greeting() string { return "Hi there! What's your name?" }

// Name returns the captured display name, or "" before capture.
func (e *Engine) Name() string { return e.name }

// Booking reports whether a booking dialogue is in progress.
func (e *Engine) Booking() bool { return e.active != nil }

// Handle consumes one line of user input and returns the reply. done is
// true once the session should end.
func (e *Engine) Handle(line string) (reply string, done bool) {
	if e.name == "" {
		return e.captureName(line), false
	}

	if e.active != nil {
		reply, finished := e.active.Advance(line)
		if finished {
			e.active = nil
		}
		return reply, false
	}

	if _, ok := exitPhrases[strings.ToLower(strings.TrimSpace(line))]; ok {
		return fmt.Sprintf("Goodbye, %s! Have a great day!", e.name), true
	}

	reply, action := e.router.Route(line, e.name)
	if action == router.ActionBook {
		e.active = dialogue.New(e.inv, e.dialogueOpts...)
		return e.active.Open(), false
	}
	return reply, false
}

// captureName accepts either a bare name or a sentence containing
// "my name is", from which the trailing phrase is extracted. Anything else
// reprompts.
func (e *Engine) captureName(line string) string {
	input := strings.TrimSpace(line)
	lower := strings.ToLower(input)
	if idx := strings.LastIndex(lower, namePhrase); idx >= 0 {
		tail := strings.TrimSpace(input[idx+len(namePhrase):])
		if tail != "" {
			e.name = e.titler.String(tail)
		}
	} else if input != "" && len(strings.Fields(input)) == 1 {
		e.name = e.titler.String(input)
	}
	if e.name == "" {
		return "Please provide me with your actual name, not a greeting or unrelated statement."
	}
	return fmt.Sprintf("Nice to meet you, %s! How can I help you today?", e.name)
}
