package viewmodel

// Pagination contains pager metadata for list views. The backend reports a
// page count rather than a record count, so TotalCount is derived from it.
type Pagination struct {
	Page       int
	PageSize   int
	TotalPages int
	TotalCount int
	HasPrev    bool
	HasNext    bool
	PrevURL    string
	NextURL    string
}
