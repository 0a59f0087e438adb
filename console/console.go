// Package console is the println-style text sink effects and the host
// report progress to.
package console

import (
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Console receives one line at a time and can be wiped.
type Console interface {
	Println(s string)
	Clear()
}

// Log writes lines to a logrus logger at info level. Clear is a no-op.
type Log struct {
	log logrus.FieldLogger
}

// NewLog returns a console writing to log, or to the standard logger when
// log is nil.
func NewLog(log logrus.FieldLogger) *Log {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Log{log: log}
}

func (l *Log) Println(s string) { l.log.Info(s) }

func (l *Log) Clear() {}

// Buffer keeps lines in memory. With Rows set, the view scrolls so the last
// line printed stays visible.
type Buffer struct {
	// Rows is the number of visible lines; zero shows everything.
	Rows int
	// Max caps the number of lines kept; zero keeps all of them.
	Max int

	mu    sync.Mutex
	lines []string
	top   int
}

// Println appends s, splitting embedded newlines into separate lines.
func (b *Buffer) Println(s string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append(b.lines, strings.Split(s, "\n")...)
	if b.Max > 0 && len(b.lines) > b.Max {
		b.lines = append([]string(nil), b.lines[len(b.lines)-b.Max:]...)
	}
	b.scroll()
}

// Clear removes every line.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = nil
	b.top = 0
}

// Lines returns a copy of every line kept.
func (b *Buffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.lines...)
}

// Visible returns the lines in view.
func (b *Buffer) Visible() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.lines[b.top:]...)
}

// Last returns the most recent line, or "" when the buffer is empty.
func (b *Buffer) Last() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.lines) == 0 {
		return ""
	}
	return b.lines[len(b.lines)-1]
}

func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.Join(b.lines, "\n")
}

func (b *Buffer) scroll() {
	b.top = 0
	if b.Rows > 0 && len(b.lines) > b.Rows {
		b.top = len(b.lines) - b.Rows
	}
}

// Func adapts a function to a Console. Clear is a no-op.
type Func func(s string)

func (f Func) Println(s string) { f(s) }

func (f Func) Clear() {}

type tee []Console

// Tee returns a console that forwards to every c.
func Tee(c ...Console) Console {
	return tee(c)
}

func (t tee) Println(s string) {
	for _, c := range t {
		c.Println(s)
	}
}

func (t tee) Clear() {
	for _, c := range t {
		c.Clear()
	}
}
