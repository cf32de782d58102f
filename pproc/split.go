package pproc

import (
	"bufio"
	"bytes"
	"errors"
)

var (
	ErrTruncatedElement = errors.New("truncated element")
	ErrInvalidSplitter  = errors.New("invalid splitter")
)

// TagSplitter returns a bufio.SplitFunc that yields complete XML elements
// of the given name, e.g. every <topic>...</topic> of a topics file. Text
// outside of matching elements is skipped. The maximum element size is
// bounded by the scanner buffer.
func TagSplitter(tagName string) bufio.SplitFunc {
	if len(tagName) == 0 {
		return func(data []byte, atEOF bool) (int, []byte, error) {
			return 0, nil, ErrInvalidSplitter
		}
	}
	return func(data []byte, atEOF bool) (advance int, token []byte, err error) {
		if len(data) == 0 {
			return 0, nil, nil
		}
		start, end := elementBounds(data, tagName)
		switch {
		case start >= 0 && end >= 0:
			return end, data[start:end], nil
		case start >= 0:
			if atEOF {
				return 0, nil, ErrTruncatedElement
			}
			// Drop everything before the element and wait for more data.
			return start, nil, nil
		case atEOF:
			return len(data), nil, nil
		}
		// No element start yet; keep a possible partial "<tag" prefix.
		i := bytes.LastIndexByte(data, '<')
		if i == -1 {
			return len(data), nil, nil
		}
		return i, nil, nil
	}
}

// elementBounds returns the offsets of the first complete element named tag
// in data. Self-closing elements are complete on their own. Nested elements
// of the same name are matched by depth, so the outermost one is returned.
// If an element starts but does not end within data, end is -1.
func elementBounds(data []byte, tag string) (start, end int) {
	var (
		openTag  = []byte("<" + tag)
		closeTag = []byte("</" + tag + ">")
	)
	if start = indexOpenTag(data, openTag, 0); start == -1 {
		return -1, -1
	}
	gt := bytes.IndexByte(data[start:], '>')
	if gt == -1 {
		return start, -1
	}
	gt += start
	if data[gt-1] == '/' {
		return start, gt + 1
	}
	depth, i := 1, gt+1
	for {
		k := bytes.Index(data[i:], closeTag)
		if k == -1 {
			return start, -1
		}
		k += i
		if o := indexOpenTag(data[:k], openTag, i); o != -1 {
			depth++
			i = o + len(openTag)
			continue
		}
		if depth--; depth == 0 {
			return start, k + len(closeTag)
		}
		i = k + len(closeTag)
	}
}

// indexOpenTag finds the next openTag at or after from, skipping longer
// names sharing the prefix, e.g. <topics> when looking for <topic.
func indexOpenTag(data, openTag []byte, from int) int {
	for from < len(data) {
		k := bytes.Index(data[from:], openTag)
		if k == -1 {
			return -1
		}
		k += from
		if next := k + len(openTag); next >= len(data) || isTagTerminator(data[next]) {
			return k
		}
		from = k + 1
	}
	return -1
}

func isTagTerminator(ch byte) bool {
	switch ch {
	case '>', ' ', '/', '\n', '\t', '\r':
		return true
	}
	return false
}
