// components/library/library.go
//
// Built-in component library.
//
// Each file in this package registers one registry.Descriptor from init().
// Import the package for side effects wherever descriptors must be
// available:
//
//	import _ "github.com/yanizio/sitebuilder/components/library"
//
// Default payloads are shared read-only templates; the document model deep
// copies them into every new instance.
package library

import "github.com/yanizio/sitebuilder/internal/registry"

// line is shorthand for building preview rows.
func line(label, value string) registry.PreviewLine {
	return registry.PreviewLine{Label: label, Value: value}
}
