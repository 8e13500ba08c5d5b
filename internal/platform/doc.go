// Package platform smooths over filesystem differences between Unix and
// Windows, currently just permission bits.
package platform
