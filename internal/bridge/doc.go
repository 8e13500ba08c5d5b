// Package bridge serves bimo's operations to a UI shell over a stream of
// newline-delimited JSON requests and responses.
//
// Every command has a fixed argument schema. Arguments are checked against
// the embedded JSON Schema before they are decoded into the command's Go
// type, so a misspelled or missing argument is reported back as an
// InvalidArgument failure listing the offending fields.
package bridge
