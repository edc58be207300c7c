// SPDX-License-Identifier: MPL-2.0

// Package chorefile defines the recipe model and the parser and loader for
// chorefile sources: a line-oriented format of imports, aliases, and
// attributed recipe declarations with indented command bodies.
package chorefile
