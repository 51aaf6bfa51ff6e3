package metadata

import (
	"context"
	"errors"

	"github.com/Masterminds/semver/v3"
)

var errBoom = errors.New("boom")

func newTestDescriptor(schema string) *DatasetDescriptor {
	return &DatasetDescriptor{
		Format:          FormatAvro,
		Location:        "hdfs:///data/" + schema,
		Schema:          `{"type":"record","name":"` + schema + `","fields":[]}`,
		SchemaVersion:   semver.MustParse("1.2.0"),
		PartitionFields: []string{"year", "month"},
		Properties:      map[string]string{"owner": "analytics"},
	}
}

// call records one invocation of a fake store method.
type call struct {
	op         string
	name       string
	descriptor *DatasetDescriptor
}

// bareStore implements only the required Store methods.
type bareStore struct {
	records map[string]*DatasetDescriptor
	calls   []call

	// loadErr, when set, is returned by Load instead of the lookup result.
	loadErr error
	// nilOnMissing makes Load return (nil, nil) instead of ErrNoSuchDataset.
	nilOnMissing bool
}

func newBareStore() *bareStore {
	return &bareStore{records: map[string]*DatasetDescriptor{}}
}

func (s *bareStore) Load(_ context.Context, name string) (*DatasetDescriptor, error) {
	s.calls = append(s.calls, call{op: "load", name: name})
	if s.loadErr != nil {
		return nil, s.loadErr
	}

	d, ok := s.records[name]
	if !ok {
		if s.nilOnMissing {
			return nil, nil
		}

		return nil, ErrNoSuchDataset
	}

	return d, nil
}

func (s *bareStore) Exists(_ context.Context, name string) (bool, error) {
	s.calls = append(s.calls, call{op: "exists", name: name})
	_, ok := s.records[name]

	return ok, nil
}

func (s *bareStore) Delete(_ context.Context, name string) (bool, error) {
	s.calls = append(s.calls, call{op: "delete", name: name})
	if _, ok := s.records[name]; !ok {
		return false, nil
	}
	delete(s.records, name)

	return true, nil
}

func (s *bareStore) ops() []string {
	ops := make([]string, 0, len(s.calls))
	for _, c := range s.calls {
		ops = append(ops, c.op)
	}

	return ops
}

// saveOnlyStore implements the legacy contract only.
type saveOnlyStore struct {
	*bareStore

	saveErr error
}

func (s *saveOnlyStore) Save(_ context.Context, name string, descriptor *DatasetDescriptor) error {
	s.calls = append(s.calls, call{op: "save", name: name, descriptor: descriptor})
	if s.saveErr != nil {
		return s.saveErr
	}
	s.records[name] = descriptor

	return nil
}

// modernStore implements Create and Update.
type modernStore struct {
	*bareStore

	// createErrs is consumed one entry per Create call.
	createErrs []error
	// panicOnCreate makes Create panic.
	panicOnCreate bool
}

func (s *modernStore) Create(_ context.Context, name string, descriptor *DatasetDescriptor) (*DatasetDescriptor, error) {
	s.calls = append(s.calls, call{op: "create", name: name, descriptor: descriptor})
	if s.panicOnCreate {
		panic("create exploded")
	}
	if len(s.createErrs) > 0 {
		err := s.createErrs[0]
		s.createErrs = s.createErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	s.records[name] = descriptor

	return descriptor, nil
}

func (s *modernStore) Update(_ context.Context, name string, descriptor *DatasetDescriptor) (*DatasetDescriptor, error) {
	s.calls = append(s.calls, call{op: "update", name: name, descriptor: descriptor})
	if _, ok := s.records[name]; !ok {
		return nil, ErrNoSuchDataset
	}
	s.records[name] = descriptor

	return descriptor, nil
}

// createOnlyStore implements Create but not Update.
type createOnlyStore struct {
	*bareStore
}

func (s *createOnlyStore) Create(_ context.Context, name string, descriptor *DatasetDescriptor) (*DatasetDescriptor, error) {
	s.calls = append(s.calls, call{op: "create", name: name, descriptor: descriptor})
	s.records[name] = descriptor

	return descriptor, nil
}
