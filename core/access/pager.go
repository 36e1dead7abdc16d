package access

import "gorm.io/gorm"

// Pageable is implemented by models that can be cursor-paginated. PageKey
// returns the unique, monotonically assigned integer key pages are ordered by.
type Pageable interface {
	PageKey() int64
}

// Page is one slice of a cursor-paginated listing. Items are strictly
// ascending by key. Offset is the key of the last item, to be passed back on
// the next call; it is nil only when the page is empty, so callers page until
// they get an empty page.
type Page[T Pageable] struct {
	Items  []T    `json:"items"`
	Total  int64  `json:"total"`
	Limit  int    `json:"limit"`
	Offset *int64 `json:"offset,omitempty"`
}

// Paginate fetches one page of q ordered ascending by key. A nil offset means
// the first page; otherwise rows with key > *offset are returned (exclusive
// bound, so feeding a page's Offset back yields the disjoint next slice).
// Total counts everything q matches, ignoring the window. Cursor pagination
// over a live table is only best-effort stable under concurrent writes.
func Paginate[T Pageable](q *gorm.DB, key string, limit int, offset *int64) (*Page[T], error) {
	if limit <= 0 {
		return nil, ErrInvalidPageSize
	}

	page := &Page[T]{Items: []T{}, Limit: limit}

	if err := q.Session(&gorm.Session{}).Count(&page.Total).Error; err != nil {
		return nil, err
	}

	slice := q.Session(&gorm.Session{})
	if offset != nil {
		slice = slice.Where(key+" > ?", *offset)
	}
	if err := slice.Order(key + " ASC").Limit(limit).Find(&page.Items).Error; err != nil {
		return nil, err
	}

	if n := len(page.Items); n > 0 {
		last := page.Items[n-1].PageKey()
		page.Offset = &last
	}
	return page, nil
}
