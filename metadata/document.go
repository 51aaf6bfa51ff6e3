package metadata

import (
	"fmt"
	"maps"
	"slices"

	"github.com/Masterminds/semver/v3"
)

// Document is the serialized form of a DatasetDescriptor shared by the file and SQL backends
// and by the CLI. All fields are plain values so every encoder handles them the same way.
type Document struct {
	Format          string            `json:"format" yaml:"format" toml:"format"`
	Location        string            `json:"location,omitempty" yaml:"location,omitempty" toml:"location,omitempty"`
	Schema          string            `json:"schema" yaml:"schema" toml:"schema"`
	SchemaVersion   string            `json:"schemaVersion,omitempty" yaml:"schema_version,omitempty" toml:"schema_version,omitempty"`
	PartitionFields []string          `json:"partitionFields,omitempty" yaml:"partition_fields,omitempty" toml:"partition_fields,omitempty"`
	Properties      map[string]string `json:"properties,omitempty" yaml:"properties,omitempty" toml:"properties,omitempty"`
}

// NewDocument converts a descriptor into its serialized form.
func NewDocument(d *DatasetDescriptor) Document {
	doc := Document{
		Format:   d.Format.String(),
		Location: d.Location,
		Schema:   d.Schema,
	}
	if d.SchemaVersion != nil {
		doc.SchemaVersion = d.SchemaVersion.String()
	}
	if len(d.PartitionFields) > 0 {
		doc.PartitionFields = slices.Clone(d.PartitionFields)
	}
	if len(d.Properties) > 0 {
		doc.Properties = maps.Clone(d.Properties)
	}

	return doc
}

// Descriptor parses the document back into a descriptor.
func (doc Document) Descriptor() (*DatasetDescriptor, error) {
	format, err := ParseFormat(doc.Format)
	if err != nil {
		return nil, err
	}

	d := &DatasetDescriptor{
		Format:   format,
		Location: doc.Location,
		Schema:   doc.Schema,
	}
	if doc.SchemaVersion != "" {
		v, err := semver.NewVersion(doc.SchemaVersion)
		if err != nil {
			return nil, fmt.Errorf("failed to parse schema version %q: %w", doc.SchemaVersion, err)
		}
		d.SchemaVersion = v
	}
	if len(doc.PartitionFields) > 0 {
		d.PartitionFields = slices.Clone(doc.PartitionFields)
	}
	if len(doc.Properties) > 0 {
		d.Properties = maps.Clone(doc.Properties)
	}

	return d, nil
}
