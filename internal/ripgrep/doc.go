// Package ripgrep runs ripgrep in JSON mode and decodes its output.
//
// # Overview
//
// `rg --json` writes one JSON object per line. Each object has a "type" and a
// "data" field. This package turns those lines into Record values, a closed
// union discriminated by Kind:
//
//   - KindBegin: ripgrep started reporting matches for Path
//   - KindMatch: one matching line with its byte-range submatches
//   - KindEnd: ripgrep finished Path, with per-file Stats
//   - KindSummary: aggregate Stats for the whole search
//
// Other message types, such as "context", are rejected with a DecodeError.
//
// # Usage
//
//	search, err := ripgrep.Command{Args: []string{"-e", "TODO"}}.Start(ctx)
//	if err != nil {
//		return err
//	}
//	for search.Next() {
//		rec := search.Record()
//		// ...
//	}
//	if err := search.Err(); err != nil {
//		return err
//	}
//	return search.Wait()
//
// # Arbitrary data
//
// ripgrep reports paths and line text as {"text": "..."} when they are valid
// UTF-8 and as {"bytes": "<base64>"} otherwise. Both forms decode to a Go
// string holding the raw bytes.
//
// # Errors
//
// Malformed JSON, unknown message types and match messages without a line
// number produce a *DecodeError, which matches ErrProtocol with errors.Is.
// Exit status 1 from ripgrep means "no matches" and is not an error.
package ripgrep
