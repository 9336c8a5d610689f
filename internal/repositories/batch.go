package repositories

// idChunkSize bounds how many ids go into one IN list. SQLite and Postgres both
// cap the number of bound parameters per statement.
const idChunkSize = 1000

// forEachIDChunk calls fn with consecutive slices of ids no longer than idChunkSize
func forEachIDChunk(ids []uint, fn func(chunk []uint) error) error {
	for start := 0; start < len(ids); start += idChunkSize {
		end := start + idChunkSize
		if end > len(ids) {
			end = len(ids)
		}
		if err := fn(ids[start:end]); err != nil {
			return err
		}
	}
	return nil
}
