package mime

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirosfoundation/go-mimeparts/pkg/headers"
)

func TestNewPart(t *testing.T) {
	data := []byte("test payload data")

	part := NewPart(data, "text/plain")

	assert.Equal(t, "text/plain", part.Headers.Get("Content-Type"))
	assert.Equal(t, data, part.Body)
	assert.Empty(t, part.ContentID())
}

func TestNewPartWithID(t *testing.T) {
	part := NewPartWithID([]byte("test data"), "application/json", "custom-id-123")

	assert.Equal(t, "<custom-id-123>", part.ContentID())
	assert.Equal(t, "application/json", part.ContentType().Type)
}

func TestNewFormParts(t *testing.T) {
	field := NewFormField("title", []byte("report"))
	assert.Equal(t, `form-data; name=title`, field.Headers.Get("content-disposition"))
	assert.Equal(t, "title", field.Name())
	assert.Empty(t, field.Filename())

	file := NewFormFile("upload", "my report.pdf", "application/pdf", []byte("%PDF"))
	assert.Equal(t, `form-data; name=upload; filename="my report.pdf"`, file.Headers.Get("content-disposition"))
	assert.Equal(t, "upload", file.Name())
	assert.Equal(t, "my report.pdf", file.Filename())
	assert.Equal(t, "application/pdf", file.ContentType().Type)
}

func TestPart_Defaults(t *testing.T) {
	part := Part{Headers: headers.New(), Body: []byte("x")}

	assert.Equal(t, DefaultPartContentType, part.ContentType().Type)
	assert.Equal(t, DefaultPartDisposition, part.ContentDisposition().Type)

	var bare Part
	assert.Equal(t, DefaultPartContentType, bare.ContentType().Type)
	assert.True(t, bare.Broken())
}

func TestPart_ContentTypeParams(t *testing.T) {
	part := Part{Headers: headers.FromPairs("Content-Type", `text/plain; charset="utf-8"`)}

	ct := part.ContentType()
	assert.Equal(t, "text/plain", ct.Type)
	assert.Equal(t, "utf-8", ct.Param("charset"))
}

func TestNewMessage(t *testing.T) {
	parts := []Part{
		NewPart([]byte("payload1"), "text/plain"),
		NewPart([]byte("payload2"), "application/json"),
	}

	msg := NewMessage(ContentTypeMultipartRelated, parts)

	assert.NotEmpty(t, msg.Boundary)
	assert.True(t, strings.HasPrefix(msg.Boundary, "----=_Part_"))
	assert.Equal(t, ContentTypeMultipartRelated, msg.MediaType.Type)
	assert.Equal(t, msg.Boundary, msg.MediaType.Param("boundary"))
	assert.Len(t, msg.Parts, 2)
}

func TestMessage_SerializeAndParse(t *testing.T) {
	parts := []Part{
		NewPartWithID([]byte("payload data 1"), "text/plain", "payload-1"),
		NewPartWithID([]byte("payload data 2"), "application/json", "payload-2"),
	}

	msg := NewMessage(ContentTypeMultipartRelated, parts)
	msg.MediaType.SetParam("type", "application/soap+xml")

	data, contentType := msg.Serialize()

	assert.Contains(t, contentType, "multipart/related")
	assert.Contains(t, contentType, "boundary=")
	assert.Contains(t, contentType, `type="application/soap+xml"`)

	parsed, err := Parse(data, contentType)
	require.NoError(t, err)
	require.Len(t, parsed.Parts, 2)

	assert.Equal(t, msg.Boundary, parsed.Boundary)
	assert.Equal(t, "application/soap+xml", parsed.MediaType.Param("type"))
	assert.Equal(t, []byte("payload data 2"), parsed.PartByContentID("payload-2").Body)
}

func TestMessage_SerializeWithoutMediaType(t *testing.T) {
	msg := &Message{Boundary: "B"}

	data, contentType := msg.Serialize()
	assert.Equal(t, []byte("--B--"), data)
	assert.Equal(t, "multipart/mixed; boundary=B", contentType)
}

func TestParse_InvalidContentType(t *testing.T) {
	_, err := Parse([]byte("some data"), "text/plain")
	assert.ErrorIs(t, err, ErrNotMultipart)
	assert.Contains(t, err.Error(), "not a multipart message")
}

func TestParse_MissingBoundary(t *testing.T) {
	_, err := Parse([]byte("some data"), "multipart/related")
	assert.ErrorIs(t, err, ErrMissingBoundary)
}

func TestParse_MalformedBody(t *testing.T) {
	_, err := Parse([]byte("some data"), "multipart/form-data; boundary=abc")
	assert.ErrorIs(t, err, ErrMalformedBody)
}

func TestParse_QuotedBoundary(t *testing.T) {
	body := []byte("--a b\r\nContent-Disposition: form-data; name=\"field\"\r\n\r\nvalue\r\n--a b--")

	msg, err := Parse(body, `Multipart/Form-Data; boundary="a b"`)
	require.NoError(t, err)
	require.Len(t, msg.Parts, 1)

	field := msg.PartByName("field")
	require.NotNil(t, field)
	assert.Equal(t, []byte("value"), field.Body)
	assert.Nil(t, msg.PartByName("missing"))
}

func TestNewBoundary_Unique(t *testing.T) {
	a, b := NewBoundary(), NewBoundary()
	assert.NotEqual(t, a, b)
	assert.NotContains(t, a[len("----=_Part_"):], "-")
}

func TestNewContentID(t *testing.T) {
	id := NewContentID("example.com")
	assert.True(t, strings.HasPrefix(id, "<"))
	assert.True(t, strings.HasSuffix(id, "@example.com>"))
}

func TestGetContentIDWithoutBrackets(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"<id-123>", "id-123"},
		{"id-456", "id-456"},
		{"<some@example.com>", "some@example.com"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := GetContentIDWithoutBrackets(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestAddContentIDBrackets(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"id-123", "<id-123>"},
		{"<id-456>", "<id-456>"},
		{"<id-789", "<id-789>"},
		{"id-abc>", "<id-abc>"},
		{"", "<>"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := AddContentIDBrackets(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestMessage_PartByContentID(t *testing.T) {
	msg := &Message{
		Parts: []Part{
			NewPartWithID([]byte("data1"), "text/plain", "id1@example.com"),
			NewPartWithID([]byte("data2"), "text/plain", "id2@example.com"),
			NewPartWithID([]byte("data3"), "text/plain", "id3@example.com"),
		},
	}

	tests := []struct {
		name      string
		contentID string
		wantData  []byte
		wantNil   bool
	}{
		{"find by exact id", "id2@example.com", []byte("data2"), false},
		{"find with cid prefix", "cid:id1@example.com", []byte("data1"), false},
		{"find with brackets", "<id3@example.com>", []byte("data3"), false},
		{"not found", "nonexistent@example.com", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := msg.PartByContentID(tt.contentID)
			if tt.wantNil {
				assert.Nil(t, result)
			} else {
				require.NotNil(t, result)
				assert.Equal(t, tt.wantData, result.Body)
			}
		})
	}
}

func TestMessage_EmptyParts(t *testing.T) {
	msg := &Message{Parts: []Part{}}

	assert.Nil(t, msg.PartByContentID("any@example.com"))
	assert.Nil(t, msg.PartByName("any"))
}
