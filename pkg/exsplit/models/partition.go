package models

// Partition is a non-empty row subset of a Dataset paired with the name it
// should be written under.
type Partition struct {
	// Name is the requested sheet or file name, before sanitizing.
	Name string `json:"name"`
	// Data holds the selected rows with the source columns.
	Data *Dataset `json:"-"`
}

// Rows returns the number of rows in the partition.
func (p Partition) Rows() int {
	if p.Data == nil {
		return 0
	}
	return p.Data.Len()
}
