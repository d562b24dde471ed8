// Where: cli/internal/infra/ui/deploy.go
// What: UserInterface used by the publish workflow.
// Why: Keep deploy output readable while allowing emoji to be toggled.
package ui

import (
	"io"
)

// KeyValue is a key/value pair rendered inside a block.
type KeyValue struct {
	Key   string
	Value any
}

// UserInterface exposes high-level output helpers used by usecases.
type UserInterface interface {
	Info(msg string)
	Warn(msg string)
	Success(msg string)
	Error(msg string)
	Block(emoji, title string, rows []KeyValue)
}

// NewDeployUI returns a UserInterface tailored for deploy output.
func NewDeployUI(out io.Writer, emojiEnabled bool) UserInterface {
	return deployUI{console: NewWithEmoji(out, emojiEnabled)}
}

type deployUI struct {
	console *Console
}

func (d deployUI) Info(msg string) {
	d.console.Info(msg)
}

func (d deployUI) Warn(msg string) {
	d.console.Warn(msg)
}

func (d deployUI) Success(msg string) {
	d.console.Success(msg)
}

func (d deployUI) Error(msg string) {
	d.console.Error(msg)
}

func (d deployUI) Block(emoji, title string, rows []KeyValue) {
	d.console.BlockStart(emoji, title)
	for _, kv := range rows {
		d.console.Item(kv.Key, kv.Value)
	}
	d.console.BlockEnd()
}
