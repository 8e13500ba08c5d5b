// Package workspace implements the file operations the editor performs inside
// an open project: listing a directory for the file tree, reading and saving
// files, and watching the tree for changes so the listing can be refreshed.
package workspace
