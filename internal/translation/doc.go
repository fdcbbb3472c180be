// Package translation provides the English <-> alien glyph substitution
// codec. It holds the fixed alphabet table, the translation direction and
// a small translation cache for batch operations.
package translation
