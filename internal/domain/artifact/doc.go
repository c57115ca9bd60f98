// Package artifact contains the release artifact model: the fixed, ordered
// set of java_tools artifact names, the table mapping each name to its
// uploaded path and checksum, and the release classification derived from
// the generic artifact's path.
package artifact
