package report

// DefaultPageSize is the number of tweet cards per report page.
// 24 divides evenly into the 1/2/3 column layouts the stylesheet produces
// at common viewport widths.
const DefaultPageSize = 24

// PageRange is a half-open range of record positions [Start, End)
// belonging to one report page.
type PageRange struct {
	// Start is the zero-based position of the first record on the page.
	Start int

	// End is the zero-based position one past the last record on the page.
	End int
}

// TotalPages returns ceil(n / pageSize) for n records.
// Zero records means zero pages; the renderer then emits no page
// containers and no pagination links.
func TotalPages(n, pageSize int) int {
	if n <= 0 || pageSize <= 0 {
		return 0
	}
	return (n + pageSize - 1) / pageSize
}

// Paginate partitions n records into fixed-size pages.
// The returned ranges are in page order (page 1 first), cover every
// position exactly once, and never overlap. Pagination is purely
// positional: no sorting or filtering happens here.
func Paginate(n, pageSize int) []PageRange {
	total := TotalPages(n, pageSize)
	if total == 0 {
		return nil
	}

	pages := make([]PageRange, 0, total)
	for page := 1; page <= total; page++ {
		start := (page - 1) * pageSize
		end := start + pageSize
		if end > n {
			end = n
		}
		pages = append(pages, PageRange{Start: start, End: end})
	}
	return pages
}
