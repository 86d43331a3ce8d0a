package database

// DefaultPageSize bounds owner-scoped listings when no size is given.
const DefaultPageSize = 20

// Page selects one window of an owner-scoped listing. The zero value is
// the first page at the default size.
type Page struct {
	Number int
	Size   int
}

func (p Page) Limit() int {
	if p.Size <= 0 {
		return DefaultPageSize
	}
	return p.Size
}

func (p Page) Offset() int {
	if p.Number <= 0 {
		return 0
	}
	return p.Number * p.Limit()
}
