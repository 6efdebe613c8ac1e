// Package greeting formats the message printed by the greet command.
package greeting

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Default is the greeting used when none is configured.
const Default = "Hello"

// Greeting is the value rendered for a single greet invocation.
type Greeting struct {
	Greeting string `json:"greeting"`
	Name     string `json:"name"`
	Message  string `json:"message"`
}

// New builds a Greeting whose Message is "<greeting>, <name>!".
func New(greeting, name string) Greeting {
	return Greeting{
		Greeting: greeting,
		Name:     name,
		Message:  greeting + ", " + name + "!",
	}
}

// Render returns the newline-terminated output for g, either the plain
// message or a single-line JSON object.
func Render(g Greeting, asJSON bool) ([]byte, error) {
	if !asJSON {
		return []byte(g.Message + "\n"), nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(g); err != nil {
		return nil, fmt.Errorf("encoding greeting: %w", err)
	}
	return buf.Bytes(), nil
}

// Write renders g and writes it to w in a single call.
func Write(w io.Writer, g Greeting, asJSON bool) error {
	out, err := Render(g, asJSON)
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("writing greeting: %w", err)
	}
	return nil
}
