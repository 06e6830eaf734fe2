// Package attr implements the attribute machinery shared by every sprite:
// per-kind schemas, the normalizer that turns loosely typed change
// requests into canonical values, and the live attribute set that applies
// them and propagates derived state through updaters.
//
// A Schema is built once per sprite kind from one or more Definitions and
// is immutable afterwards. A Set holds one shape's values and its
// canonical Transform; it is not safe for concurrent use.
//
//	schema := attr.MustSchema(base, lineDef)
//	set := attr.NewSet(schema, line)
//	err := set.Apply(attr.Changes{"stroke": "#f00", "scaling": 2})
package attr
