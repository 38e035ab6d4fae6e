// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package mimeparts implements byte-level framing for MIME multipart bodies and
the structured header grammars they depend on.

# Overview

go-mimeparts parses and formats multipart message bodies directly from byte
buffers. It is built for integration code that receives a response body and a
Content-Type header and needs structured parts back, including from bodies
that are truncated or otherwise malformed.

# Specifications Referenced

  - RFC 2046 Section 5.1: Multipart Media Type
  - RFC 2045: Content-Type header field
  - RFC 6266 / RFC 7578: Content-Disposition and multipart/form-data
  - WHATWG URL Standard: application/x-www-form-urlencoded

# Package Structure

The library is organized into the following packages:

	github.com/sirosfoundation/go-mimeparts/pkg/bytestream    - Random-access byte cursor
	github.com/sirosfoundation/go-mimeparts/pkg/contentheader - Content-Type / Content-Disposition grammar
	github.com/sirosfoundation/go-mimeparts/pkg/headers       - Raw header blocks
	github.com/sirosfoundation/go-mimeparts/pkg/urlencoded    - URL-encoded forms
	github.com/sirosfoundation/go-mimeparts/pkg/mime          - Multipart decode/encode and message helpers
	github.com/sirosfoundation/go-mimeparts/pkg/body          - Media-type driven body decoding
	github.com/sirosfoundation/go-mimeparts/pkg/compression   - GZIP Content-Encoding

# Quick Start

To split a captured body into parts:

	import "github.com/sirosfoundation/go-mimeparts/pkg/mime"

	msg, err := mime.Parse(body, resp.Header.Get("Content-Type"))
	if err != nil {
	    return err
	}
	for _, part := range msg.Parts {
	    if part.Broken() {
	        continue // no closing delimiter
	    }
	    fmt.Println(part.Name(), part.ContentType().Type, len(part.Body))
	}

To build a form-data request body:

	data, contentType := body.EncodeMultipart(mime.ContentTypeMultipartFormData, []mime.Part{
	    mime.NewFormField("title", []byte("report")),
	    mime.NewFormFile("file", "report.json", "application/json", payload),
	})

# Malformed Input

Decoding never panics on bad input. A body without an opening delimiter is
rejected with [mime.ErrMalformedBody]; a part that loses its closing delimiter
is returned with a nil body so that its siblings survive. Header grammars
degrade softly: unparseable parameters are dropped and an unparseable type
yields an empty type.

# License

BSD-2-Clause License
*/
package mimeparts
