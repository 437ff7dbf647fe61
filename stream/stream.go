// Package stream defines the input stream consumed during matching
// and the leases claimed over consumed spans.
package stream

import (
	"bytes"
	"unicode/utf8"
)

// Stream holds input content and a cursor. The cursor only moves through
// Consume and Rewind, so at any moment it equals the total length of all
// outstanding leases. A stream must not be shared between concurrent
// match attempts.
type Stream struct {
	name string
	content []byte
	pos int
	lineStarts []int
	prevLineIndex int
}

func New (name string, content []byte) *Stream {
	s := &Stream{name: name, content: content, prevLineIndex: -1}
	lineCnt := bytes.Count(content, []byte("\n")) + 1
	s.lineStarts = make([]int, lineCnt)
	j := 1
	for i := 0; i < len(content) && j < lineCnt; i++ {
		if content[i] == '\n' {
			s.lineStarts[j] = i + 1
			j++
		}
	}

	return s
}

func (s *Stream) Name () string {
	return s.name
}

func (s *Stream) Content () []byte {
	return s.content
}

func (s *Stream) Len () int {
	return len(s.content)
}

func (s *Stream) Pos () int {
	return s.pos
}

func (s *Stream) IsEmpty () bool {
	return s.pos >= len(s.content)
}

// Consume applies p to the unconsumed remainder of the content.
// On a match the cursor advances past the matched span and the returned
// lease exclusively owns that span. On a mismatch the cursor is left
// unchanged and nil is returned.
func (s *Stream) Consume (p Predicate) *Lease {
	size, matched := p.Match(s.content[s.pos :])
	if !matched {
		return nil
	}

	l := &Lease{stream: s, pos: s.pos, size: size}
	s.pos += size
	return l
}

// Rewind moves the cursor back by size bytes, not before the start of content.
func (s *Stream) Rewind (size int) {
	if s.pos <= size {
		s.pos = 0
	} else {
		s.pos -= size
	}
}

func (s *Stream) LineCol (pos int) (line, col int) {
	var lineIndex int
	if pos < 0 {
		pos = 0
		lineIndex = 0
	} else if pos >= len(s.content) {
		pos = len(s.content)
		lineIndex = len(s.lineStarts) - 1
	} else {
		lineIndex = s.findLineIndex(pos)
	}

	lineStart := s.lineStarts[lineIndex]
	return lineIndex + 1, utf8.RuneCount(s.content[lineStart : pos]) + 1
}

func (s *Stream) findLineIndex (pos int) int {
	if s.prevLineIndex >= 0 && s.lineStarts[s.prevLineIndex] <= pos {
		lineIndex := s.prevLineIndex
		last := len(s.lineStarts) - 1
		for lineIndex <= last && s.lineStarts[lineIndex] <= pos {
			lineIndex++
		}
		lineIndex--
		s.prevLineIndex = lineIndex
		return lineIndex
	}

	leftIndex := 0
	rightIndex := len(s.lineStarts) - 1
	index := 0
	if s.prevLineIndex >= 0 {
		rightIndex = s.prevLineIndex
	}
	for leftIndex < rightIndex {
		index = (leftIndex + rightIndex + 1) >> 1
		lineStart := s.lineStarts[index]
		if lineStart == pos {
			return index
		}

		if lineStart < pos {
			leftIndex = index
		} else {
			rightIndex = index - 1
			index = rightIndex
		}
	}
	s.prevLineIndex = index
	return index
}

// Lease is an exclusive claim over a contiguous consumed span.
// A lease is disposed exactly once: either released back to the stream
// (rewinding the cursor by the span length) or retained inside a match
// tree. A second Release call is a no-op.
type Lease struct {
	stream *Stream
	pos, size int
	released bool
}

func (l *Lease) Pos () int {
	return l.pos
}

func (l *Lease) Len () int {
	return l.size
}

func (l *Lease) Text () string {
	return string(l.stream.content[l.pos : l.pos + l.size])
}

func (l *Lease) Released () bool {
	return l.released
}

// Release returns the claimed span to the stream.
func (l *Lease) Release () {
	if l.released {
		return
	}

	l.released = true
	l.stream.Rewind(l.size)
}

func (l *Lease) SourceName () string {
	return l.stream.name
}

func (l *Lease) Line () int {
	line, _ := l.stream.LineCol(l.pos)
	return line
}

func (l *Lease) Col () int {
	_, col := l.stream.LineCol(l.pos)
	return col
}
