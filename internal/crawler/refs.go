package crawler

import (
	"strings"

	"github.com/tidwall/gjson"
)

// extractReferences returns the in-scope topic paths referenced by a
// document, in document order.
//
// A document's "references" value is an object whose entries each carry a
// "url" field. The key is irrelevant. Any shape mismatch along the way
// (missing object, non-object entry, non-string url) means "no reference
// here", never an error. Only URLs that stay inside the module namespace
// are returned, with leading and trailing separators trimmed.
//
// The result may contain the same path twice when a document references a
// topic more than once; the caller's visited check handles that.
func extractReferences(data []byte, module string) []string {
	refs := gjson.GetBytes(data, "references")
	if !refs.IsObject() {
		return nil
	}

	prefix := "documentation/" + module
	var paths []string
	refs.ForEach(func(_, ref gjson.Result) bool {
		if !ref.IsObject() {
			return true
		}

		u := ref.Get("url")
		if u.Type != gjson.String {
			return true
		}

		candidate := strings.TrimPrefix(u.String(), "/")
		if !strings.HasPrefix(candidate, prefix) {
			return true
		}

		paths = append(paths, strings.Trim(candidate, "/"))
		return true
	})

	return paths
}
