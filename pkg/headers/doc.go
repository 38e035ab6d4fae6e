// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package headers parses and formats raw header blocks such as the ones found
at the top of each MIME multipart section.

	h := headers.Parse("Content-Type: text/plain\r\nContent-ID: <a>")
	h.Get("content-type") // "text/plain"
	h.Format()            // "content-type: text/plain\r\ncontent-id: <a>"

Names are trimmed and lower-cased, values are trimmed. Iteration follows the
order in which names were first seen; a repeated name overwrites the earlier
value in place.
*/
package headers
