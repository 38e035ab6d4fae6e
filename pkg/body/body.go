// Package body decodes and encodes message bodies according to their media type
package body

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/sirosfoundation/go-mimeparts/pkg/compression"
	"github.com/sirosfoundation/go-mimeparts/pkg/contentheader"
	"github.com/sirosfoundation/go-mimeparts/pkg/headers"
	"github.com/sirosfoundation/go-mimeparts/pkg/mime"
	"github.com/sirosfoundation/go-mimeparts/pkg/urlencoded"
)

const (
	// ContentTypeJSON is the MIME type for JSON
	ContentTypeJSON = "application/json"
	// ContentTypeXML is the MIME type for XML
	ContentTypeXML = "application/xml"
	// ContentTypeTextXML is the MIME type for text XML
	ContentTypeTextXML = "text/xml"
	// ContentTypeOctetStream is the MIME type for opaque bytes
	ContentTypeOctetStream = "application/octet-stream"

	// DefaultMaxDepth bounds multipart nesting
	DefaultMaxDepth = 8
)

var (
	// ErrBrokenPart is returned for parts whose body could not be delimited
	ErrBrokenPart = errors.New("broken multipart part")
	// ErrTooDeep is returned when multipart nesting exceeds the decoder limit
	ErrTooDeep = errors.New("multipart nesting too deep")
)

// Kind classifies how a body was interpreted
type Kind int

const (
	KindBinary Kind = iota
	KindText
	KindJSON
	KindXML
	KindForm
	KindMultipart
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindJSON:
		return "json"
	case KindXML:
		return "xml"
	case KindForm:
		return "form"
	case KindMultipart:
		return "multipart"
	default:
		return "binary"
	}
}

// MarshalText lets Kind appear by name in JSON reports
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Content is a decoded body. Exactly one of the typed fields is set,
// selected by Kind; Raw always holds the (decompressed) bytes.
type Content struct {
	MediaType   *contentheader.Value
	Disposition *contentheader.Value
	Headers     *headers.Headers
	Kind        Kind
	Raw         []byte

	Text  string
	JSON  any
	XML   *etree.Document
	Form  *urlencoded.Form
	Parts []*Content

	// Broken marks a nested part without a delimitable body
	Broken bool
	// Err holds the failure of a nested part that could not be decoded
	Err error
}

// Decoder interprets bodies by media type
type Decoder struct {
	maxDepth   int
	compressor *compression.Compressor
}

// Option configures a Decoder
type Option func(*Decoder)

// WithMaxDepth sets the multipart nesting limit
func WithMaxDepth(depth int) Option {
	return func(d *Decoder) {
		d.maxDepth = depth
	}
}

// WithMaxDecompressedSize bounds gzip-encoded part bodies
func WithMaxDecompressedSize(n int64) Option {
	return func(d *Decoder) {
		d.compressor.WithMaxSize(n)
	}
}

// NewDecoder creates a decoder with the given options
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{
		maxDepth:   DefaultMaxDepth,
		compressor: compression.NewCompressor(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode interprets data with the default decoder
func Decode(contentType string, data []byte) (*Content, error) {
	return NewDecoder().Decode(contentType, data)
}

// DecodePart interprets a multipart part with the default decoder
func DecodePart(p mime.Part) (*Content, error) {
	return NewDecoder().DecodePart(p)
}

// Decode interprets data according to contentType
func (d *Decoder) Decode(contentType string, data []byte) (*Content, error) {
	return d.decode(contentheader.ParseMediaType(contentType), data, 0)
}

// DecodePart interprets a multipart part. Missing Content-Type and
// Content-Disposition headers default to text/plain and form-data, and a
// gzip Content-Encoding is undone first.
func (d *Decoder) DecodePart(p mime.Part) (*Content, error) {
	return d.decodePart(p, 0)
}

func (d *Decoder) decodePart(p mime.Part, depth int) (*Content, error) {
	if p.Broken() {
		return nil, ErrBrokenPart
	}

	data := p.Body
	if compression.IsEncoded(p.Headers.Get(mime.HeaderContentEncoding)) {
		plain, err := d.compressor.Decompress(data)
		if err != nil {
			return nil, fmt.Errorf("decoding content encoding: %w", err)
		}
		data = plain
	}

	c, err := d.decode(p.ContentType(), data, depth)
	if err != nil {
		return nil, err
	}
	c.Headers = p.Headers
	c.Disposition = p.ContentDisposition()
	return c, nil
}

func (d *Decoder) decode(mediaType *contentheader.Value, data []byte, depth int) (*Content, error) {
	c := &Content{
		MediaType: mediaType,
		Kind:      Classify(mediaType),
		Raw:       data,
	}

	switch c.Kind {
	case KindJSON:
		if err := json.Unmarshal(data, &c.JSON); err != nil {
			return nil, fmt.Errorf("failed to unmarshal JSON body: %w", err)
		}
	case KindXML:
		doc := etree.NewDocument()
		if err := doc.ReadFromBytes(data); err != nil {
			return nil, fmt.Errorf("failed to parse XML body: %w", err)
		}
		c.XML = doc
	case KindForm:
		c.Form = urlencoded.Parse(string(data))
	case KindText:
		c.Text = string(data)
	case KindMultipart:
		parts, err := d.decodeMultipart(mediaType, data, depth)
		if err != nil {
			return nil, err
		}
		c.Parts = parts
	}

	return c, nil
}

func (d *Decoder) decodeMultipart(mediaType *contentheader.Value, data []byte, depth int) ([]*Content, error) {
	if depth >= d.maxDepth {
		return nil, fmt.Errorf("%w: limit %d", ErrTooDeep, d.maxDepth)
	}

	boundary := mediaType.Param("boundary")
	if boundary == "" {
		return nil, mime.ErrMissingBoundary
	}

	parts, err := mime.Decode(boundary, data)
	if err != nil {
		return nil, err
	}

	out := make([]*Content, 0, len(parts))
	for i, p := range parts {
		child, err := d.decodePart(p, depth+1)
		switch {
		case errors.Is(err, ErrTooDeep):
			return nil, err
		case errors.Is(err, ErrBrokenPart):
			child = &Content{Headers: p.Headers, MediaType: p.ContentType(), Broken: true, Err: err}
		case err != nil:
			child = &Content{Headers: p.Headers, MediaType: p.ContentType(), Raw: p.Body, Err: fmt.Errorf("part %d: %w", i, err)}
		}
		out = append(out, child)
	}
	return out, nil
}

// Classify maps a media type to the kind of decoding applied to it
func Classify(mediaType *contentheader.Value) Kind {
	typ := strings.ToLower(mediaType.Type)

	switch {
	case typ == ContentTypeJSON, strings.HasSuffix(typ, "+json"):
		return KindJSON
	case typ == ContentTypeXML, typ == ContentTypeTextXML, strings.HasSuffix(typ, "+xml"):
		return KindXML
	case typ == urlencoded.ContentType:
		return KindForm
	case strings.HasPrefix(typ, "multipart/"):
		return KindMultipart
	case strings.HasPrefix(typ, "text/"):
		return KindText
	default:
		return KindBinary
	}
}

// EncodeJSON marshals v and returns the body with its Content-Type
func EncodeJSON(v any) ([]byte, string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal JSON body: %w", err)
	}
	return data, ContentTypeJSON, nil
}

// EncodeXML serializes doc and returns the body with its Content-Type
func EncodeXML(doc *etree.Document) ([]byte, string, error) {
	data, err := doc.WriteToBytes()
	if err != nil {
		return nil, "", fmt.Errorf("failed to serialize XML body: %w", err)
	}
	return data, ContentTypeXML, nil
}

// EncodeForm URL-encodes form and returns the body with its Content-Type
func EncodeForm(form *urlencoded.Form) ([]byte, string) {
	return []byte(urlencoded.Format(form)), urlencoded.ContentType
}

// EncodeMultipart renders parts under a fresh boundary and returns the body
// with its Content-Type
func EncodeMultipart(mediaType string, parts []mime.Part) ([]byte, string) {
	return mime.NewMessage(mediaType, parts).Serialize()
}
