package entity

// SnapshotFile is one named data stream of a snapshot, e.g. "2023-07-01_contracts.csv".
type SnapshotFile struct {
	Name string
	Data []byte
}
