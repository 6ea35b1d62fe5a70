package archive

import (
	"fmt"
	"io"

	"github.com/aleister1102/harextractor/internal/models"
	jsoniter "github.com/json-iterator/go"
)

// Decoder backends accepted in configuration.
const (
	BackendAuto   = "auto"
	BackendStream = "stream"
	BackendEager  = "eager"
)

// DefaultStreamBufferSize is the read buffer of the streaming decoder.
const DefaultStreamBufferSize = 64 * 1024

// harJSON matches object keys case-sensitively, as HAR field names are.
var harJSON = jsoniter.Config{
	EscapeHTML:             true,
	ValidateJsonRawMessage: true,
	CaseSensitive:          true,
}.Froze()

// Source yields the entries of one archive in document order, then io.EOF.
// An entry that cannot be decoded is reported as *models.InvalidEntryError and
// the source stays usable; any other error is final.
type Source interface {
	Next() (*models.HAREntry, error)
}

// Decoder locates log.entries in a HAR document. Decode fails with
// models.ErrMalformedArchive, before any entry is produced, when the document
// has no log.entries array.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// SelectDecoder picks the decoding strategy for a run. "stream" and "eager"
// are honoured as given, except that iterative always streams. "auto" streams
// for iterative runs and stdin input and loads everything otherwise.
func SelectDecoder(backend string, iterative, fromStdin bool, bufferSize int) (Decoder, error) {
	stream := &StreamDecoder{BufferSize: bufferSize}

	switch backend {
	case BackendStream:
		return stream, nil
	case BackendEager:
		if iterative {
			return stream, nil
		}
		return &EagerDecoder{}, nil
	case BackendAuto, "":
		if iterative || fromStdin {
			return stream, nil
		}
		return &EagerDecoder{}, nil
	default:
		return nil, fmt.Errorf("unknown decoder backend %q", backend)
	}
}

func malformed(err error) error {
	return fmt.Errorf("%w: %w", models.ErrMalformedArchive, err)
}

func decodeEntry(index int, raw []byte) (*models.HAREntry, error) {
	var entry models.HAREntry
	if err := harJSON.Unmarshal(raw, &entry); err != nil {
		return nil, &models.InvalidEntryError{Index: index, Err: err}
	}
	return &entry, nil
}
