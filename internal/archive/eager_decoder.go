package archive

import (
	"io"

	"github.com/aleister1102/harextractor/internal/common/errorwrapper"
	"github.com/aleister1102/harextractor/internal/models"
	jsoniter "github.com/json-iterator/go"
)

// EagerDecoder reads and decodes the whole document up front.
type EagerDecoder struct{}

type eagerDocument struct {
	Log *struct {
		Entries *[]jsoniter.RawMessage `json:"entries"`
	} `json:"log"`
}

// Decode reads r to the end and decodes every entry.
func (d *EagerDecoder) Decode(r io.Reader) (Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "could not read archive")
	}

	var doc eagerDocument
	if err := harJSON.Unmarshal(data, &doc); err != nil {
		return nil, malformed(err)
	}
	if doc.Log == nil || doc.Log.Entries == nil {
		return nil, models.ErrMalformedArchive
	}

	raw := *doc.Log.Entries
	src := &EagerSource{
		entries: make([]*models.HAREntry, len(raw)),
		errs:    make([]error, len(raw)),
	}
	for i, element := range raw {
		src.entries[i], src.errs[i] = decodeEntry(i, element)
	}
	return src, nil
}

// EagerSource replays fully decoded entries.
type EagerSource struct {
	entries []*models.HAREntry
	errs    []error
	pos     int
}

// Entries returns every decoded entry in document order. Entries that failed
// to decode are nil.
func (s *EagerSource) Entries() []*models.HAREntry {
	return s.entries
}

// Next returns the following entry or its decode error.
func (s *EagerSource) Next() (*models.HAREntry, error) {
	if s.pos >= len(s.entries) {
		return nil, io.EOF
	}
	i := s.pos
	s.pos++
	return s.entries[i], s.errs[i]
}
