package metadata

import (
	"maps"
	"slices"

	"github.com/Masterminds/semver/v3"
)

// DatasetDescriptor describes where a dataset lives and how its records are shaped.
// The LegacyAdapter never looks inside it.
type DatasetDescriptor struct {
	// Format is the format of the dataset's data files.
	Format Format `json:"format"`
	// Location is the URI of the dataset's root directory or table.
	Location string `json:"location,omitempty"`
	// Schema is the literal schema text, e.g. an Avro schema in JSON form.
	Schema string `json:"schema"`
	// SchemaVersion is the optional semantic version of Schema.
	SchemaVersion *semver.Version `json:"schemaVersion,omitempty"`
	// PartitionFields lists the fields the dataset is partitioned by, outermost first.
	PartitionFields []string `json:"partitionFields,omitempty"`
	// Properties holds free-form key/value settings.
	Properties map[string]string `json:"properties,omitempty"`
}

// Clone returns a copy of the descriptor that shares no mutable state with the receiver.
func (d *DatasetDescriptor) Clone() *DatasetDescriptor {
	if d == nil {
		return nil
	}

	c := &DatasetDescriptor{
		Format:   d.Format,
		Location: d.Location,
		Schema:   d.Schema,
	}
	if d.SchemaVersion != nil {
		v := *d.SchemaVersion
		c.SchemaVersion = &v
	}
	if d.PartitionFields != nil {
		c.PartitionFields = slices.Clone(d.PartitionFields)
	}
	if d.Properties != nil {
		c.Properties = maps.Clone(d.Properties)
	}

	return c
}

// Equals returns true if both descriptors hold the same values.
func (d *DatasetDescriptor) Equals(other *DatasetDescriptor) bool {
	if d == nil || other == nil {
		return d == other
	}

	if d.Format != other.Format || d.Location != other.Location || d.Schema != other.Schema {
		return false
	}

	switch {
	case d.SchemaVersion == nil && other.SchemaVersion == nil:
	case d.SchemaVersion == nil || other.SchemaVersion == nil:
		return false
	case !d.SchemaVersion.Equal(other.SchemaVersion):
		return false
	}

	return slices.Equal(d.PartitionFields, other.PartitionFields) &&
		maps.Equal(d.Properties, other.Properties)
}
