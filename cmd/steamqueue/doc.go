// Command steamqueue enriches a Steam library against the store catalog
// and emits a games log plus a packer queue file.
package main
