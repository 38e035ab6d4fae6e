// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package urlencoded parses and formats URL-encoded form bodies while keeping
field order.

	form := urlencoded.Parse("name=J%C3%BCrgen&city=New+York")
	form.Get("city") // "New York", true

	urlencoded.Format(urlencoded.FromPairs("q", "a&b", "lang", "en"))
	// q=a%26b&lang=en

Spaces encode as '+'. Reserved characters are percent-escaped.
*/
package urlencoded
