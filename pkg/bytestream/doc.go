// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package bytestream provides the random-access byte cursor used by the MIME
multipart decoder.

# Cursor Model

A [Stream] holds a buffer, its length and a position. The position always
stays within [0, length]; a position equal to the length is the
end-of-stream state, not an error.

	s := bytestream.New(body)
	preamble, err := s.ReadUntil([]byte("--" + boundary))
	if err == io.EOF {
	    // delimiter not present, cursor is now at the end
	}

# End of Stream

Reads that can legitimately run out of input (ReadByte, ReadN, ReadLine,
ReadUntil) return io.EOF instead of an error value describing a failure.
Only programmer errors surface as errors:

  - [ErrInvalidArgument]: negative read length, empty search sequence
  - [ErrOutOfRange]: Move or Peek outside the buffer

# Complexity

ReadUntil compares a window of len(sequence) bytes at every offset, so a scan
over n bytes for a b-byte sequence costs O(n*b) in the worst case. Callers
that accept untrusted input should bound the body size.
*/
package bytestream
