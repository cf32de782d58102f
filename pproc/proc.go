// Package pproc reads tokens from a stream, transforms each and writes the
// results in input order.
package pproc

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
)

const (
	defaultBufferSize   = 1 << 16 // 64K, initial scanner buffer
	defaultMaxTokenSize = 1 << 26 // 64MB, hard limit for a single record
)

// ProcessFunc transforms a single token. A nil result writes nothing. The
// token is only valid until the function returns.
type ProcessFunc func([]byte) ([]byte, error)

// ProcessorOption allows configuration of the Processor
type ProcessorOption func(*Processor)

// WithMaxTokenSize sets the maximum size of a single token.
func WithMaxTokenSize(size int) ProcessorOption {
	return func(p *Processor) {
		if size > 0 {
			p.maxTokenSize = size
		}
	}
}

// WithBufferSize sets the initial scanner buffer size.
func WithBufferSize(size int) ProcessorOption {
	return func(p *Processor) {
		if size > 0 {
			p.bufferSize = size
		}
	}
}

func WithSplitFunc(f bufio.SplitFunc) ProcessorOption {
	return func(p *Processor) {
		p.splitFunc = f
	}
}

// WithTokenName sets the word used for a token in error messages, e.g.
// "line".
func WithTokenName(name string) ProcessorOption {
	return func(p *Processor) {
		if name != "" {
			p.tokenName = name
		}
	}
}

// WithSkipEmpty drops tokens that consist of whitespace only.
func WithSkipEmpty(skip bool) ProcessorOption {
	return func(p *Processor) {
		p.skipEmpty = skip
	}
}

// Processor runs a ProcessFunc over tokens delineated by a bufio.SplitFunc,
// one at a time.
type Processor struct {
	splitFunc    bufio.SplitFunc
	processFunc  ProcessFunc
	bufferSize   int
	maxTokenSize int
	skipEmpty    bool
	tokenName    string
}

// NewProcessor creates a new Processor that by default splits on lines.
func NewProcessor(processFunc ProcessFunc, opts ...ProcessorOption) *Processor {
	p := &Processor{
		splitFunc:    bufio.ScanLines,
		processFunc:  processFunc,
		bufferSize:   defaultBufferSize,
		maxTokenSize: defaultMaxTokenSize,
		tokenName:    "token",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Split sets the split function. By default we split on lines.
func (p *Processor) Split(f bufio.SplitFunc) {
	p.splitFunc = f
}

// Process reads from r, applies the process function to every token and
// writes results to w. The first error stops processing; it is wrapped with
// the 1-based token number.
func (p *Processor) Process(ctx context.Context, r io.Reader, w io.Writer) error {
	bw := bufio.NewWriter(w)
	scanner := bufio.NewScanner(r)
	scanner.Split(p.splitFunc)
	bufSize := p.bufferSize
	if bufSize > p.maxTokenSize {
		bufSize = p.maxTokenSize
	}
	scanner.Buffer(make([]byte, 0, bufSize), p.maxTokenSize)
	var n int
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		n++
		token := scanner.Bytes()
		if p.skipEmpty && len(bytes.TrimSpace(token)) == 0 {
			continue
		}
		result, err := p.processFunc(token)
		if err != nil {
			return fmt.Errorf("%s %d: %w", p.tokenName, n, err)
		}
		if result == nil {
			continue
		}
		if _, err := bw.Write(result); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%s %d: %w", p.tokenName, n+1, err)
	}
	return bw.Flush()
}
