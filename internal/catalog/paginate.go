package catalog

// DefaultPerPage is high enough to return whole lists unless the caller
// asks for real paging.
const DefaultPerPage = 25000

// Paginate slices list down to one page and reports the total entry and
// page counts. Page numbers start at 1; out-of-range pages yield an empty
// slice.
func Paginate[T any](list []T, page, perPage int) (pageItems []T, total, pages int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	total = len(list)
	pages = (total + perPage - 1) / perPage

	start := (page - 1) * perPage
	if start >= total {
		return []T{}, total, pages
	}
	end := start + perPage
	if end > total {
		end = total
	}
	return list[start:end], total, pages
}
