// Package store persists fetched documentation documents as JSON files.
//
// Each topic path maps to one file in the destination directory: path
// separators become underscores and a ".json" extension is appended, so
// "documentation/Widgets/Gadget" is written as
// "documentation_Widgets_Gadget.json". Two distinct paths can collide on
// the same derived name; the last write wins. This is an accepted
// limitation of the naming scheme, not something the store deduplicates.
//
// Documents are written with stable two-space indentation so repeated runs
// against an unchanged remote graph produce byte-identical files.
package store
