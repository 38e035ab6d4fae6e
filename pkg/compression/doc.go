// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package compression provides GZIP handling for multipart part bodies.

Parts may carry a Content-Encoding header naming gzip. The body package uses
this package to undo the encoding before interpreting the media type.

# Compression

	compressor := compression.NewCompressor()
	compressed, err := compressor.Compress(body)

Decompress with an upper bound on the output size:

	plain, err := compression.NewCompressor().WithMaxSize(10 << 20).Decompress(compressed)
	if errors.Is(err, compression.ErrTooLarge) {
	    // refuse the part
	}

# Content Type Detection

	if compression.ShouldCompress("application/xml; charset=utf-8") {
	    // compress before sending
	}

Not compressed (already compressed):
  - application/gzip, application/x-gzip
  - application/zip
  - image/jpeg, image/png

# References

  - GZIP RFC 1952: https://datatracker.ietf.org/doc/html/rfc1952
  - HTTP Content-Encoding: https://datatracker.ietf.org/doc/html/rfc9110#section-8.4
*/
package compression
