// SPDX-License-Identifier: MPL-2.0

// Package run executes recipes: it walks body lines in declaration order
// through a pluggable runtime (host shell or the embedded mvdan/sh
// interpreter), tracks each invocation through an explicit state machine,
// and detects recipe invocation cycles with a call stack.
package run
