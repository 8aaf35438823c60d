package questionnaire

// pageBounds computes the item range of one questionnaire page.
// Packing follows the orphan rule: the final page absorbs up to
// `orphans` leftover items rather than leaving a tiny trailing page.
// A seven-item catalog with five per page and two orphans is one page
// of seven, not five plus two.
func pageBounds(total, perPage, orphans, page int) (start, end int) {
	start = (page - 1) * perPage
	if start >= total {
		return total, total
	}
	end = start + perPage
	if end >= total-orphans {
		end = total
	}
	return start, end
}

// numPages computes how many pages the catalog packs into
func numPages(total, perPage, orphans int) int {
	if total <= 0 {
		return 1
	}
	hits := total - orphans
	if hits < 1 {
		hits = 1
	}
	pages := hits / perPage
	if hits%perPage != 0 {
		pages++
	}
	if pages < 1 {
		pages = 1
	}
	return pages
}
