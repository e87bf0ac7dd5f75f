// Package utils provides small helpers shared across notevault: the resty
// HTTP client wrapper, unverified JWT claim parsing, id generation and
// content hashing.
package utils
