package sqlstore

const (
	sCHEMA_DATASET_METADATA = `
		CREATE TABLE IF NOT EXISTS dataset_metadata (
			name        TEXT PRIMARY KEY,
			descriptor  TEXT
		);`

	query_DATASET_METADATA_BY_NAME = `
		SELECT descriptor FROM dataset_metadata
		WHERE name = $1`
	query_DATASET_NAME_BY_NAME = `
		SELECT name FROM dataset_metadata
		WHERE name = $1`
	query_ALL_DATASET_NAMES = `
		SELECT name FROM dataset_metadata`
	query_INSERT_DATASET_METADATA = `
		INSERT INTO dataset_metadata (name, descriptor)
		VALUES ($1, $2)`
	query_UPDATE_DATASET_METADATA = `
		UPDATE dataset_metadata SET descriptor = $2
		WHERE name = $1`
	query_DELETE_DATASET_METADATA = `
		DELETE FROM dataset_metadata
		WHERE name = $1`
)
