// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package contentheader implements the structured header grammar shared by
Content-Type and Content-Disposition.

# Grammar

	header    = type *( ";" parameter )
	parameter = token "=" ( token / quoted-string )

The primary value is checked against a type/subtype pattern in [MediaType]
mode and against a bare token in [Disposition] mode.

# Lenient Parsing

Parsing never fails. A primary value that does not match leaves Type empty,
and malformed parameters are dropped:

	v := contentheader.Parse(`multipart/related; boundary="a b"; broken`, contentheader.MediaType)
	v.Type              // "multipart/related"
	v.Param("boundary") // "a b"

# Formatting

Format emits parameters in insertion order and quotes values that are not
bare tokens:

	contentheader.New("attachment").SetParam("filename", `say "hi".txt`).String()
	// attachment; filename="say \"hi\".txt"

# References

  - MIME Part One: https://datatracker.ietf.org/doc/html/rfc2045
  - Content-Disposition: https://datatracker.ietf.org/doc/html/rfc2183
*/
package contentheader
