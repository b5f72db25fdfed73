// Package core defines the syntax tree shared by every sqlequiv component.
//
// This package contains:
//   - The closed node set (statements, table references, expressions)
//   - The Kind tag and the Children/WithChildren slot protocol
//   - Comment annotations carried on NodeInfo
//   - Static dialect configuration (DialectConfig)
//
// The Golden Rule: pkg/core imports ONLY pkg/token and stdlib.
// All other packages depend on core, not the reverse.
package core
