// SPDX-License-Identifier: MPL-2.0

// Package resolve merges parsed chorefile sources into the immutable
// namespace the lister and executor operate on: later sources override
// earlier ones, aliases are dereferenced up front, attribute conflicts are
// rejected, and the default recipe is computed once.
package resolve
