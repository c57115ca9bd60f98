// Package manifest persists the dependency manifest on disk.
//
// FileRepository reads the whole file and writes it back atomically through a
// temporary file in the same directory, keeping the original permissions.
package manifest
