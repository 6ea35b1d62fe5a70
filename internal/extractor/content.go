package extractor

import (
	"encoding/base64"

	"github.com/aleister1102/harextractor/internal/common/errorwrapper"
	"github.com/aleister1102/harextractor/internal/models"
)

// Base64Encoding is the only content encoding HAR defines.
const Base64Encoding = "base64"

// EntryContent returns the decoded response body of an entry. ok is false when
// the entry carries no content, no text, or empty text. An encoding other than
// base64 yields *models.UnknownEncodingError; an undecodable base64 body yields
// *models.InvalidEntryError.
func EntryContent(entry *models.HAREntry) (data []byte, ok bool, err error) {
	text, present := entry.Text()
	if !present || text == "" {
		return nil, false, nil
	}

	encoding, encoded := entry.Encoding()
	if !encoded {
		return []byte(text), true, nil
	}
	if encoding != Base64Encoding {
		return nil, false, &models.UnknownEncodingError{Encoding: encoding}
	}

	decoded, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, false, &models.InvalidEntryError{Err: errorwrapper.WrapError(err, "invalid base64 content")}
	}
	return decoded, true, nil
}
