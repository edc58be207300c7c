// SPDX-License-Identifier: MPL-2.0

// Package issue catalogs chore's known failure modes with rendered
// Markdown guidance, and provides the actionable-error builder used for
// user-facing error messages.
package issue
