// Package normal contains optional post-processing steps for the
// concatenated document text.
package normal

import (
	"strings"
	"unicode"
)

// Pipeline runs normalizers in order. An empty pipeline returns its input
// unchanged.
type Pipeline struct {
	Normalizer []Normalizer
}

func (p *Pipeline) Normalize(s string) string {
	if p == nil {
		return s
	}
	for _, n := range p.Normalizer {
		s = n.Normalize(s)
	}
	return s
}

// Len returns the number of steps.
func (p *Pipeline) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Normalizer)
}

type Normalizer interface {
	Normalize(string) string
}

// Func adapts a plain function to a Normalizer.
type Func func(string) string

func (f Func) Normalize(s string) string { return f(s) }

type LowerNormalizer struct{}

func (s *LowerNormalizer) Normalize(v string) string {
	return strings.ToLower(v)
}

// CollapseSpaceNormalizer replaces each run of whitespace with a single
// space. Leading whitespace is dropped, a trailing run becomes one space.
type CollapseSpaceNormalizer struct{}

func (s *CollapseSpaceNormalizer) Normalize(v string) string {
	var sb strings.Builder
	inSpace := true
	sb.Grow(len(v))
	for _, c := range v {
		if unicode.IsSpace(c) {
			if !inSpace {
				sb.WriteByte(' ')
			}
			inSpace = true
			continue
		}
		inSpace = false
		sb.WriteRune(c)
	}
	return sb.String()
}

var controlSpaceReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

// ControlSpaceNormalizer turns line breaks and tabs into plain spaces. A
// CRLF pair becomes one space.
type ControlSpaceNormalizer struct{}

func (s *ControlSpaceNormalizer) Normalize(v string) string {
	return controlSpaceReplacer.Replace(v)
}
