// Package sensitive decides whether a path likely holds secrets without ever
// opening it: classification is name and location based only, so a
// classification bug can never leak sensitive bytes. Rules run in a fixed
// priority order (sensitive directory, filename pattern, extension) and the
// first match supplies the reason.
package sensitive
