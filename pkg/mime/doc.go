// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package mime handles MIME multipart bodies.

This package splits a multipart body into ordered parts and renders parts
back into a body. It works on complete in-memory buffers and keeps going
when individual parts are damaged.

# MIME Structure

A multipart body is a sequence of sections separated by the boundary taken
from the Content-Type header:

	Content-Type: multipart/related; boundary="----=_Part_..."

	preamble (ignored)
	------=_Part_...
	Content-Type: application/xml
	Content-ID: <payload-1>

	<Order/>
	------=_Part_...
	Content-Type: application/octet-stream

	[Binary payload data]
	------=_Part_...--

# Decoding

Decode works from the boundary token alone:

	parts, err := mime.Decode(boundary, body)
	if errors.Is(err, mime.ErrMalformedBody) {
	    // no opening delimiter, nothing to recover
	}
	for _, part := range parts {
	    if part.Broken() {
	        continue // header separator or closing delimiter missing
	    }
	    ct := part.ContentType() // text/plain when absent
	}

Parse resolves the boundary from a Content-Type header first:

	msg, err := mime.Parse(body, resp.Header.Get("Content-Type"))

# Decoding Rules

  - An empty body yields zero parts and no error.
  - A body without "--boundary" fails with [ErrMalformedBody]. This is the
    only hard failure.
  - The header block ends at the first CRLF CRLF. When that separator is
    missing the part gets empty headers.
  - The body ends at the next CRLF "--boundary". When that delimiter is
    missing the part body is nil and decoding stops at the end of input.
  - Blank lines after the header separator belong to the body.

# Encoding

Encode never fails:

	body := mime.Encode(boundary, parts)
	mime.Encode("B", nil) // "--B--"

Build a message with a generated boundary and get the matching header:

	msg := mime.NewMessage(mime.ContentTypeMultipartFormData, []mime.Part{
	    mime.NewFormField("title", []byte("report")),
	    mime.NewFormFile("file", "report.pdf", "application/pdf", pdf),
	})
	body, contentType := msg.Serialize()

# Content IDs

Parts are referenced by Content-ID (CID):

	cid:payload-1

PartByContentID accepts the bare id, the bracketed form and the cid: URL.

# References

  - MIME Multipart: https://datatracker.ietf.org/doc/html/rfc2046
  - multipart/form-data: https://datatracker.ietf.org/doc/html/rfc7578
*/
package mime
