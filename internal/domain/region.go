package domain

// Region is a game region with the national dex id range it introduced.
type Region struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Generation  int    `json:"generation"`
	StartID     int    `json:"start_id"`
	EndID       int    `json:"end_id"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// Contains reports whether a national dex id belongs to the region.
func (r Region) Contains(id int) bool {
	return id >= r.StartID && id <= r.EndID
}

// Size is the number of species in the region's range.
func (r Region) Size() int {
	return r.EndID - r.StartID + 1
}
