// Package literal parses the typed value syntax of environment overrides.
//
// A raw value is either plain text or "<tag>:<payload>", split at the first
// colon. The recognized tags are:
//
//	bool:<payload>  true when payload equals "true" ignoring case, else false
//	num:<payload>   base-10 integer with optional sign and "_" separators
//	arr:<payload>   JSON array; payload must start with "[" and end with "]"
//	raw:<payload>   payload as a string, verbatim
//
// Any other value, including one with an unrecognized tag, is taken
// verbatim as a string.
package literal
