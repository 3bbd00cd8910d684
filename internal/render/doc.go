// Package render formats ripgrep records as aligned, colorized terminal lines.
//
// Each match line is laid out as
//
//	<ordinal><pad>    <line number><pad>    <text>
//
// with the text wrapped to the space left by the prefix. Continuation lines
// are indented by the prefix width so the text column stays aligned. Batch
// sizes the ordinal and line number columns over the whole result set, while
// Record sizes them per record for streaming output.
//
// Colors come from a Theme. Styles are bound to an explicit termenv profile
// so output does not depend on the environment the tests run in.
package render
