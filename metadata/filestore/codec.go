package filestore

import (
	"bytes"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/smartcontractkit/dataset-metadata/metadata"
)

// Codec encodes descriptor documents to and from one file format.
type Codec interface {
	// Ext is the file extension, without the dot.
	Ext() string
	Marshal(doc metadata.Document) ([]byte, error)
	Unmarshal(data []byte, doc *metadata.Document) error
}

// CodecFor returns the codec registered for a format name ("yaml", "yml" or "toml").
func CodecFor(format string) (Codec, error) {
	switch format {
	case "", "yaml", "yml":
		return YAMLCodec{}, nil
	case "toml":
		return TOMLCodec{}, nil
	default:
		return nil, fmt.Errorf("unsupported file store format %q", format)
	}
}

// YAMLCodec stores documents as YAML.
type YAMLCodec struct{}

func (YAMLCodec) Ext() string { return "yaml" }

func (YAMLCodec) Marshal(doc metadata.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (YAMLCodec) Unmarshal(data []byte, doc *metadata.Document) error {
	return yaml.Unmarshal(data, doc)
}

// TOMLCodec stores documents as TOML.
type TOMLCodec struct{}

func (TOMLCodec) Ext() string { return "toml" }

func (TOMLCodec) Marshal(doc metadata.Document) ([]byte, error) {
	return toml.Marshal(doc)
}

func (TOMLCodec) Unmarshal(data []byte, doc *metadata.Document) error {
	return toml.Unmarshal(data, doc)
}
