// Package manifest mirrors documentation files listed in a directory's
// manifest from a raw source directory into a curated destination.
//
// A manifest is a markdown file (README.md by default) that references
// files as "essentials/<name>.json". For each referenced name the syncer
// copies the file from the raw/ subdirectory into the essentials/
// subdirectory. When the exact name is absent from raw/, the syncer falls
// back to a prefix lookup: any raw file whose name starts with the
// referenced name (minus the .json extension) is a candidate, and the
// shortest candidate wins. Names with no candidate at all are reported as
// missing, not treated as errors.
package manifest
