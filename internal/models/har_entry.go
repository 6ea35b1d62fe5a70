package models

// HAREntry represents one HTTP exchange recorded in the log.entries array of an
// HTTP Archive. Every level is optional: captures exported by different
// browsers omit fields freely, so nothing here may be assumed present.
type HAREntry struct {
	Request  *HARRequest  `json:"request,omitempty"`
	Response *HARResponse `json:"response,omitempty"`
}

// HARRequest holds the request fields used for naming and listing.
type HARRequest struct {
	Method *string `json:"method,omitempty"`
	URL    *string `json:"url,omitempty"`
}

// HARResponse holds the response fields used for listing and extraction.
type HARResponse struct {
	Status     *int        `json:"status,omitempty"`
	StatusText *string     `json:"statusText,omitempty"`
	Content    *HARContent `json:"content,omitempty"`
}

// HARContent is the recorded response body.
type HARContent struct {
	MimeType *string `json:"mimeType,omitempty"`
	Size     *int64  `json:"size,omitempty"`
	Text     *string `json:"text,omitempty"`
	Encoding *string `json:"encoding,omitempty"`
}

// Method returns request.method.
func (e *HAREntry) Method() (string, bool) {
	if e == nil || e.Request == nil || e.Request.Method == nil {
		return "", false
	}
	return *e.Request.Method, true
}

// URL returns request.url.
func (e *HAREntry) URL() (string, bool) {
	if e == nil || e.Request == nil || e.Request.URL == nil {
		return "", false
	}
	return *e.Request.URL, true
}

// Status returns response.status.
func (e *HAREntry) Status() (int, bool) {
	if e == nil || e.Response == nil || e.Response.Status == nil {
		return 0, false
	}
	return *e.Response.Status, true
}

// StatusText returns response.statusText.
func (e *HAREntry) StatusText() (string, bool) {
	if e == nil || e.Response == nil || e.Response.StatusText == nil {
		return "", false
	}
	return *e.Response.StatusText, true
}

// Content returns response.content, or nil when the response or its content is absent.
func (e *HAREntry) Content() *HARContent {
	if e == nil || e.Response == nil {
		return nil
	}
	return e.Response.Content
}

// MimeType returns response.content.mimeType.
func (e *HAREntry) MimeType() (string, bool) {
	c := e.Content()
	if c == nil || c.MimeType == nil {
		return "", false
	}
	return *c.MimeType, true
}

// Size returns response.content.size.
func (e *HAREntry) Size() (int64, bool) {
	c := e.Content()
	if c == nil || c.Size == nil {
		return 0, false
	}
	return *c.Size, true
}

// Text returns response.content.text.
func (e *HAREntry) Text() (string, bool) {
	c := e.Content()
	if c == nil || c.Text == nil {
		return "", false
	}
	return *c.Text, true
}

// Encoding returns response.content.encoding.
func (e *HAREntry) Encoding() (string, bool) {
	c := e.Content()
	if c == nil || c.Encoding == nil {
		return "", false
	}
	return *c.Encoding, true
}
