// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package body interprets request and response bodies by media type.

This is the dispatch layer that sits on top of the multipart codec: it
resolves a Content-Type with the structured header grammar and decodes the
bytes accordingly.

# Decoding

	c, err := body.Decode(resp.Header.Get("Content-Type"), data)
	switch c.Kind {
	case body.KindJSON:      // c.JSON
	case body.KindXML:       // c.XML (*etree.Document)
	case body.KindForm:      // c.Form
	case body.KindMultipart: // c.Parts, decoded recursively
	case body.KindText:      // c.Text
	default:                 // c.Raw
	}

Parts without a Content-Type are treated as text/plain and parts without a
Content-Disposition as form-data. A gzip Content-Encoding on a part is undone
before decoding.

# Nested Failures

Inside a multipart body a part that cannot be decoded does not abort its
siblings. It is returned with Err set, and with Broken set when its body
could not be delimited at all. Only malformed top-level input and excessive
nesting fail the whole call.

# Encoding

	data, contentType, err := body.EncodeJSON(payload)
	data, contentType := body.EncodeForm(urlencoded.FromPairs("grant_type", "client_credentials"))
	data, contentType := body.EncodeMultipart(mime.ContentTypeMultipartFormData, parts)
*/
package body
