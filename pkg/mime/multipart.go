// Package mime implements MIME multipart body decoding and encoding
package mime

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/sirosfoundation/go-mimeparts/pkg/bytestream"
	"github.com/sirosfoundation/go-mimeparts/pkg/headers"
)

var (
	crlf      = []byte("\r\n")
	emptyLine = []byte("\r\n\r\n")
	dashDash  = []byte("--")
)

// ErrMalformedBody is returned when a multipart body lacks its opening delimiter
var ErrMalformedBody = errors.New("malformed multipart body")

// Part is one section of a multipart body.
//
// Body is nil when the section's header separator or closing delimiter
// could not be located.
type Part struct {
	Headers *headers.Headers
	Body    []byte
}

// Broken reports whether the part could not be delimited
func (p Part) Broken() bool {
	return p.Body == nil
}

// Decode splits body into its parts.
//
// An empty body yields no parts. A body without the opening `--boundary`
// fails with ErrMalformedBody; every other malformation degrades into a part
// with empty headers or a nil body so well-formed siblings survive.
func Decode(boundary string, body []byte) ([]Part, error) {
	parts := []Part{}
	if len(body) == 0 {
		return parts, nil
	}

	opening := []byte("--" + boundary)
	delimiter := []byte("\r\n--" + boundary)
	stream := bytestream.New(body)

	// Skip the preamble
	if _, err := stream.ReadUntil(opening); err != nil {
		return nil, fmt.Errorf("%w: missing opening delimiter", ErrMalformedBody)
	}

	for !stream.EOS() {
		if isTerminator(stream) {
			_ = stream.Move(stream.Len() - stream.Pos())
			break
		}

		// Transport padding and the CRLF that ends the delimiter line
		_, _ = stream.ReadUntil(crlf)

		var headerText string
		if rawHeaders, err := stream.ReadUntil(emptyLine); err == nil {
			headerText = string(rawHeaders)
		}

		// A missing delimiter leaves Body nil
		rawBody, _ := stream.ReadUntil(delimiter)

		parts = append(parts, Part{
			Headers: headers.Parse(headerText),
			Body:    rawBody,
		})
	}

	return parts, nil
}

// Encode renders parts as a multipart body.
//
// Each part is written as CRLF "--boundary" CRLF headers CRLF CRLF body and
// the body ends with CRLF "--boundary--". Zero parts render as the bare
// "--boundary--" terminator.
func Encode(boundary string, parts []Part) []byte {
	if len(parts) == 0 {
		return []byte("--" + boundary + "--")
	}

	size := 0
	for _, p := range parts {
		size += len(p.Body) + 64
	}

	var buf bytes.Buffer
	buf.Grow(size + len(boundary)*(len(parts)+1))

	for _, p := range parts {
		buf.Write(crlf)
		buf.Write(dashDash)
		buf.WriteString(boundary)
		buf.Write(crlf)
		buf.WriteString(p.Headers.Format())
		buf.Write(emptyLine)
		buf.Write(p.Body)
	}

	buf.Write(crlf)
	buf.Write(dashDash)
	buf.WriteString(boundary)
	buf.Write(dashDash)

	return buf.Bytes()
}

func isTerminator(s *bytestream.Stream) bool {
	first, err := s.Peek(0)
	if err != nil || first != bytestream.HN {
		return false
	}
	second, err := s.Peek(1)
	return err == nil && second == bytestream.HN
}
