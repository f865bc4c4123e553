// Package boundary confines every filesystem access made by the scanner to a
// fixed project root. Its Validator resolves candidate paths to canonical
// form, proves containment, and special-cases symlinks so a link pointing
// outside the root can never pull the scan out of bounds. SafeWalk builds a
// lazy, depth-bounded traversal on top of that validation; a single bad entry
// is logged and skipped, never fatal. This package is internal; external
// consumers should use the stable facade in pkg/core.
package boundary
