package mime

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/sirosfoundation/go-mimeparts/pkg/contentheader"
	"github.com/sirosfoundation/go-mimeparts/pkg/headers"
)

const (
	// ContentTypeMultipartRelated is the MIME type for multipart/related
	ContentTypeMultipartRelated = "multipart/related"
	// ContentTypeMultipartFormData is the MIME type for multipart/form-data
	ContentTypeMultipartFormData = "multipart/form-data"
	// ContentTypeMultipartMixed is the MIME type for multipart/mixed
	ContentTypeMultipartMixed = "multipart/mixed"

	// DefaultPartContentType applies to parts without a Content-Type header
	DefaultPartContentType = "text/plain"
	// DefaultPartDisposition applies to parts without a Content-Disposition header
	DefaultPartDisposition = "form-data"

	// HeaderContentType is the lower-cased Content-Type header name
	HeaderContentType = "content-type"
	// HeaderContentDisposition is the lower-cased Content-Disposition header name
	HeaderContentDisposition = "content-disposition"
	// HeaderContentID is the lower-cased Content-ID header name
	HeaderContentID = "content-id"
	// HeaderContentEncoding is the lower-cased Content-Encoding header name
	HeaderContentEncoding = "content-encoding"
	// HeaderContentTransferEncoding is the lower-cased Content-Transfer-Encoding header name
	HeaderContentTransferEncoding = "content-transfer-encoding"
)

var (
	// ErrNotMultipart is returned when a Content-Type is not multipart/*
	ErrNotMultipart = errors.New("not a multipart message")
	// ErrMissingBoundary is returned when a multipart Content-Type has no boundary
	ErrMissingBoundary = errors.New("boundary not found in content type")
)

// Message is a multipart body together with its Content-Type
type Message struct {
	Boundary  string
	MediaType *contentheader.Value
	Parts     []Part
}

// NewMessage creates a message of the given multipart media type with a
// fresh boundary
func NewMessage(mediaType string, parts []Part) *Message {
	boundary := NewBoundary()

	return &Message{
		Boundary:  boundary,
		MediaType: contentheader.New(mediaType).SetParam("boundary", boundary),
		Parts:     parts,
	}
}

// Parse decodes body using the boundary named by contentType
func Parse(body []byte, contentType string) (*Message, error) {
	mediaType := contentheader.ParseMediaType(contentType)

	if !strings.HasPrefix(strings.ToLower(mediaType.Type), "multipart/") {
		return nil, fmt.Errorf("%w: %q", ErrNotMultipart, contentType)
	}

	boundary := mediaType.Param("boundary")
	if boundary == "" {
		return nil, ErrMissingBoundary
	}

	parts, err := Decode(boundary, body)
	if err != nil {
		return nil, err
	}

	return &Message{
		Boundary:  boundary,
		MediaType: mediaType,
		Parts:     parts,
	}, nil
}

// Serialize encodes the message and returns the body with its Content-Type
func (m *Message) Serialize() ([]byte, string) {
	mediaType := m.MediaType
	if mediaType == nil {
		mediaType = contentheader.New(ContentTypeMultipartMixed)
	}
	mediaType.SetParam("boundary", m.Boundary)

	return Encode(m.Boundary, m.Parts), contentheader.Format(mediaType)
}

// PartByContentID finds a part by its Content-ID.
// Handles various Content-ID formats (with/without cid:, angle brackets)
func (m *Message) PartByContentID(contentID string) *Part {
	normalizedSearch := normalizeContentID(contentID)

	for i := range m.Parts {
		if normalizeContentID(m.Parts[i].ContentID()) == normalizedSearch {
			return &m.Parts[i]
		}
	}
	return nil
}

// PartByName finds a form-data part by its disposition name
func (m *Message) PartByName(name string) *Part {
	for i := range m.Parts {
		if m.Parts[i].Name() == name {
			return &m.Parts[i]
		}
	}
	return nil
}

// NewPart creates a part with the given body and content type
func NewPart(data []byte, contentType string) Part {
	h := headers.New()
	if contentType != "" {
		h.Set(HeaderContentType, contentType)
	}
	return Part{Headers: h, Body: data}
}

// NewPartWithID creates a part with a specific Content-ID
func NewPartWithID(data []byte, contentType, contentID string) Part {
	p := NewPart(data, contentType)
	p.Headers.Set(HeaderContentID, AddContentIDBrackets(contentID))
	return p
}

// NewFormField creates a multipart/form-data field part
func NewFormField(name string, value []byte) Part {
	p := Part{Headers: headers.New(), Body: value}
	p.Headers.Set(HeaderContentDisposition, contentheader.New(DefaultPartDisposition).SetParam("name", name).String())
	return p
}

// NewFormFile creates a multipart/form-data file part
func NewFormFile(name, filename, contentType string, data []byte) Part {
	p := NewPart(data, contentType)
	disposition := contentheader.New(DefaultPartDisposition).
		SetParam("name", name).
		SetParam("filename", filename)
	p.Headers.Set(HeaderContentDisposition, disposition.String())
	return p
}

// ContentType returns the part's parsed Content-Type, defaulting to text/plain
func (p Part) ContentType() *contentheader.Value {
	raw, ok := p.Headers.Lookup(HeaderContentType)
	if !ok {
		raw = DefaultPartContentType
	}
	return contentheader.ParseMediaType(raw)
}

// ContentDisposition returns the part's parsed Content-Disposition,
// defaulting to form-data
func (p Part) ContentDisposition() *contentheader.Value {
	raw, ok := p.Headers.Lookup(HeaderContentDisposition)
	if !ok {
		raw = DefaultPartDisposition
	}
	return contentheader.ParseDisposition(raw)
}

// ContentID returns the raw Content-ID header
func (p Part) ContentID() string {
	return p.Headers.Get(HeaderContentID)
}

// Name returns the disposition name parameter
func (p Part) Name() string {
	return p.ContentDisposition().Param("name")
}

// Filename returns the disposition filename parameter
func (p Part) Filename() string {
	return p.ContentDisposition().Param("filename")
}

// NewBoundary generates a MIME boundary string
func NewBoundary() string {
	return fmt.Sprintf("----=_Part_%s", strings.ReplaceAll(uuid.New().String(), "-", ""))
}

// NewContentID generates a bracketed Content-ID under domain
func NewContentID(domain string) string {
	return fmt.Sprintf("<%s@%s>", uuid.New().String(), domain)
}

// normalizeContentID normalizes a Content-ID for comparison
func normalizeContentID(contentID string) string {
	contentID = strings.TrimPrefix(contentID, "cid:")
	return GetContentIDWithoutBrackets(contentID)
}

// GetContentIDWithoutBrackets removes < and > from Content-ID
func GetContentIDWithoutBrackets(contentID string) string {
	contentID = strings.TrimPrefix(contentID, "<")
	contentID = strings.TrimSuffix(contentID, ">")
	return contentID
}

// AddContentIDBrackets adds < and > to Content-ID if not present
func AddContentIDBrackets(contentID string) string {
	if !strings.HasPrefix(contentID, "<") {
		contentID = "<" + contentID
	}
	if !strings.HasSuffix(contentID, ">") {
		contentID = contentID + ">"
	}
	return contentID
}
