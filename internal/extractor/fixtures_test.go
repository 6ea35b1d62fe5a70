package extractor

import (
	"io"
	"testing"

	"github.com/aleister1102/harextractor/internal/models"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"
)

const testArchiveEntries = `[
  {
    "request": {"method": "GET", "url": "https://127.0.0.1/"},
    "response": {"status": 200, "statusText": "OK",
      "content": {"mimeType": "text/plain", "size": 4, "text": "test"}}
  },
  {
    "request": {"method": "GET", "url": "https://127.0.0.1/dir/"},
    "response": {"status": 200, "statusText": "OK",
      "content": {"mimeType": "text/plain", "size": 8, "encoding": "base64", "text": "dGVzdDIK"}}
  },
  {
    "request": {"method": "GET", "url": "https://127.0.0.1/404"},
    "response": {"status": 404, "statusText": "Not Found",
      "content": {"mimeType": "text/plain", "size": 0, "text": ""}}
  }
]`

const testInvalidArchiveEntries = `[
  {
    "response": {"status": 200, "statusText": "OK",
      "content": {"mimeType": "text/plain", "size": 4, "text": "test"}}
  },
  {},
  {
    "request": {"method": "GET", "url": "https://127.0.0.1/404"},
    "response": {"status": 404, "statusText": "Not Found",
      "content": {"mimeType": "text/plain", "size": 3, "text": "404"}}
  }
]`

func decodeEntries(t *testing.T, raw string) []*models.HAREntry {
	t.Helper()
	var entries []*models.HAREntry
	require.NoError(t, jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(raw, &entries))
	return entries
}

// textEntry builds a GET entry with a plain text body.
func textEntry(url, body string) *models.HAREntry {
	method := "GET"
	status := 200
	statusText := "OK"
	mime := "text/plain"
	size := int64(len(body))
	return &models.HAREntry{
		Request: &models.HARRequest{Method: &method, URL: &url},
		Response: &models.HARResponse{
			Status:     &status,
			StatusText: &statusText,
			Content:    &models.HARContent{MimeType: &mime, Size: &size, Text: &body},
		},
	}
}

type sliceSource struct {
	entries []*models.HAREntry
	errs    map[int]error
	pos     int
}

func newSliceSource(entries ...*models.HAREntry) *sliceSource {
	return &sliceSource{entries: entries, errs: map[int]error{}}
}

func (s *sliceSource) Next() (*models.HAREntry, error) {
	if s.pos >= len(s.entries) {
		return nil, io.EOF
	}
	i := s.pos
	s.pos++
	if err, ok := s.errs[i]; ok {
		return nil, err
	}
	return s.entries[i], nil
}
