package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubIndex struct {
	answer string
	score  float64
}

func (s stubIndex) BestMatch(string) (string, float64) { return s.answer, s.score }

func TestRoute_NameQuery(t *testing.T) {
	r := New(stubIndex{}, 0.2)

	reply, action := r.Route("  What Is My Name  ", "Aditi")
	assert.Equal(t, ActionAnswer, action)
	assert.Equal(t, "Your name is Aditi.", reply)

	reply, _ = r.Route("what is my name", "")
	assert.Equal(t, "I don't know your name yet.", reply)
}

func TestRoute_BookingTriggers(t *testing.T) {
	r := New(stubIndex{answer: "should not be used", score: 0.9}, 0.2)

	for _, utterance := range []string{
		"I want to book a flight",
		"flight",
		"Flight please",
		"is there a flight to paris?",
	} {
		_, action := r.Route(utterance, "Aditi")
		assert.Equal(t, ActionBook, action, "utterance %q", utterance)
	}
}

func TestRoute_NoTriggerOnEmbeddedWord(t *testing.T) {
	r := New(stubIndex{answer: "ok", score: 0.9}, 0.2)

	for _, utterance := range []string{"feeling flighty today", "what about flights"} {
		_, action := r.Route(utterance, "Aditi")
		assert.Equal(t, ActionAnswer, action, "utterance %q", utterance)
	}
}

func TestRoute_ThresholdIsExclusive(t *testing.T) {
	reply, action := New(stubIndex{answer: "hit", score: 0.2}, 0.2).Route("hello", "Aditi")
	assert.Equal(t, ActionAnswer, action)
	assert.Equal(t, "I'm sorry, Aditi, I didn't quite understand that. Can you rephrase?", reply)

	reply, _ = New(stubIndex{answer: "hit", score: 0.21}, 0.2).Route("hello", "Aditi")
	assert.Equal(t, "hit", reply)
}

func TestRoute_NamePlaceholderSubstitution(t *testing.T) {
	r := New(stubIndex{answer: "Nice to see you, {name}!", score: 0.8}, 0.2)

	reply, _ := r.Route("hello there", "Aditi")
	assert.Equal(t, "Nice to see you, Aditi!", reply)
}

func TestRoute_FallbackNamesUser(t *testing.T) {
	r := New(stubIndex{answer: "irrelevant", score: 0.05}, 0.2)

	reply, action := r.Route("gibberish input", "Aditi")
	assert.Equal(t, ActionAnswer, action)
	assert.Contains(t, reply, "Aditi")
	assert.Contains(t, reply, "rephrase")
}

func TestNew_DefaultThreshold(t *testing.T) {
	r := New(stubIndex{answer: "hit", score: 0.25}, 0)
	reply, _ := r.Route("hello", "Aditi")
	assert.Equal(t, "hit", reply)
}
