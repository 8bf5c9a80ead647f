package shell

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"flightchat/internal/session"
)

// Run drives the session engine over a line-oriented reader/writer pair,
// the plain console protocol: every chatbot line is prefixed "Chatbot: ",
// user input is prompted with the captured name (or "You" before capture).
func Run(engine *session.Engine, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	printReply(out, engine.Greeting())
	for {
		name := engine.Name()
		if name == "" {
			name = "You"
		}
		fmt.Fprintf(out, "%s: ", name)
		if !scanner.Scan() {
			return scanner.Err()
		}
		reply, done := engine.Handle(scanner.Text())
		printReply(out, reply)
		if done {
			return nil
		}
	}
}

// printReply writes each line of a possibly multi-line reply with the
// chatbot prefix.
func printReply(out io.Writer, reply string) {
	for _, line := range strings.Split(reply, "\n") {
		fmt.Fprintf(out, "Chatbot: %s\n", line)
	}
}
