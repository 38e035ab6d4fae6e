package inspect

import (
	"github.com/sirosfoundation/go-mimeparts/pkg/body"
)

// previewLen bounds the text preview kept for textual parts
const previewLen = 256

// Report describes one inspected body
type Report struct {
	// ID is set when the inspection was archived
	ID          string       `json:"id,omitempty"`
	ContentType string       `json:"contentType"`
	Boundary    string       `json:"boundary"`
	Size        int          `json:"size"`
	BrokenParts int          `json:"brokenParts"`
	Parts       []PartReport `json:"parts"`
}

// PartReport describes one part and, for nested multipart bodies, its children
type PartReport struct {
	Index       int               `json:"index"`
	Headers     map[string]string `json:"headers,omitempty"`
	ContentType string            `json:"contentType"`
	Disposition string            `json:"disposition,omitempty"`
	Name        string            `json:"name,omitempty"`
	Filename    string            `json:"filename,omitempty"`
	ContentID   string            `json:"contentId,omitempty"`
	Kind        body.Kind         `json:"kind"`
	Size        int               `json:"size"`
	Broken      bool              `json:"broken,omitempty"`
	Error       string            `json:"error,omitempty"`

	// Value holds the decoded JSON document, form fields or a text preview
	Value    any          `json:"value,omitempty"`
	XMLRoot  string       `json:"xmlRoot,omitempty"`
	Children []PartReport `json:"children,omitempty"`
	StoredID string       `json:"storedId,omitempty"`
}

func summarize(c *body.Content) PartReport {
	pr := PartReport{
		Headers: c.Headers.Map(),
		Kind:    c.Kind,
		Size:    len(c.Raw),
		Broken:  c.Broken,
	}
	if c.MediaType != nil {
		pr.ContentType = c.MediaType.Type
	}
	if c.Disposition != nil {
		pr.Disposition = c.Disposition.Type
		pr.Name = c.Disposition.Param("name")
		pr.Filename = c.Disposition.Param("filename")
	}
	if c.Err != nil {
		pr.Error = c.Err.Error()
		return pr
	}

	switch c.Kind {
	case body.KindJSON:
		pr.Value = c.JSON
	case body.KindText:
		pr.Value = preview(c.Text)
	case body.KindForm:
		fields := make(map[string]string, c.Form.Len())
		for k, v := range c.Form.AllFromFront() {
			fields[k] = v
		}
		pr.Value = fields
	case body.KindXML:
		if root := c.XML.Root(); root != nil {
			pr.XMLRoot = root.Tag
		}
	case body.KindMultipart:
		for i, child := range c.Parts {
			cr := summarize(child)
			cr.Index = i
			pr.Children = append(pr.Children, cr)
		}
	}
	return pr
}

func preview(s string) string {
	if len(s) <= previewLen {
		return s
	}
	return s[:previewLen] + "..."
}
