package archive

import (
	"errors"
	"io"

	"github.com/aleister1102/harextractor/internal/common/errorwrapper"
	"github.com/aleister1102/harextractor/internal/models"
	jsoniter "github.com/json-iterator/go"
)

// StreamDecoder walks the document with a json-iterator Iterator and holds at
// most one entry in memory.
type StreamDecoder struct {
	BufferSize int
}

// Decode advances r to the first element of log.entries. Fields before and
// around log.entries are skipped without being materialized.
func (d *StreamDecoder) Decode(r io.Reader) (Source, error) {
	bufferSize := d.BufferSize
	if bufferSize <= 0 {
		bufferSize = DefaultStreamBufferSize
	}

	iter := jsoniter.Parse(harJSON, r, bufferSize)
	if err := seekEntries(iter); err != nil {
		return nil, err
	}
	return &StreamSource{iter: iter}, nil
}

// seekEntries leaves iter positioned on the log.entries array.
func seekEntries(iter *jsoniter.Iterator) error {
	if !enterObject(iter, "log") {
		return notFound(iter)
	}
	if !enterObject(iter, "entries") {
		return notFound(iter)
	}
	if iter.WhatIsNext() != jsoniter.ArrayValue {
		return notFound(iter)
	}
	return nil
}

// enterObject expects an object at the current position and stops on the
// value of its first field named key.
func enterObject(iter *jsoniter.Iterator, key string) bool {
	if iter.WhatIsNext() != jsoniter.ObjectValue {
		return false
	}
	for field, ok := nextField(iter); ok; field, ok = nextField(iter) {
		if field == key {
			return true
		}
		iter.Skip()
		if iter.Error != nil {
			return false
		}
	}
	return false
}

// nextField reads the next key of the current object and reports false at
// its end. ReadObject returns "" for both the end and an empty key; only an
// empty key is followed by a value.
func nextField(iter *jsoniter.Iterator) (string, bool) {
	field := iter.ReadObject()
	if field != "" {
		return field, true
	}
	return "", iter.Error == nil && iter.WhatIsNext() != jsoniter.InvalidValue
}

func notFound(iter *jsoniter.Iterator) error {
	if iter.Error != nil && !errors.Is(iter.Error, io.EOF) {
		return malformed(iter.Error)
	}
	return models.ErrMalformedArchive
}

// StreamSource yields entries while reading the underlying document.
type StreamSource struct {
	iter  *jsoniter.Iterator
	index int
	done  bool
}

// Next decodes the following element of log.entries. A syntax error ends the
// stream since the iterator cannot resynchronize after it.
func (s *StreamSource) Next() (*models.HAREntry, error) {
	if s.done {
		return nil, io.EOF
	}

	if !s.iter.ReadArray() {
		s.done = true
		if s.iter.Error != nil {
			return nil, errorwrapper.WrapError(s.iter.Error, "could not read archive entries")
		}
		return nil, io.EOF
	}

	raw := s.iter.SkipAndReturnBytes()
	if s.iter.Error != nil {
		s.done = true
		return nil, errorwrapper.WrapError(s.iter.Error, "could not read archive entries")
	}

	index := s.index
	s.index++
	return decodeEntry(index, raw)
}
