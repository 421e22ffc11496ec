// Package render turns transcript entries and command output into text for
// the non-interactive surfaces: plain terminals, Markdown export and logs.
package render
