// Package project creates and opens editor projects. A project is nothing
// more than a directory: creating one makes exactly one new directory under a
// chosen base, and opening one resolves an existing directory. No manifest or
// default assets are written.
package project
