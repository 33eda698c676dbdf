// Package metadata defines the name/value pairs attached to archived
// run records by deployment configuration.
package metadata

import "sort"

// NameValue is a BigQuery-compatible type for metadata "name"/"value"
// pairs.
type NameValue struct {
	Name  string
	Value string
}

// FromMap converts flag-provided labels into a deterministic, sorted
// NameValue slice. An empty map yields nil so that the field is omitted
// from serialized records.
func FromMap(labels map[string]string) []NameValue {
	if len(labels) == 0 {
		return nil
	}
	result := make([]NameValue, 0, len(labels))
	for name, value := range labels {
		result = append(result, NameValue{Name: name, Value: value})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}
