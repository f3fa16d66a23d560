package application

// PageControlKind tells the control bar which kind of link to render.
type PageControlKind int

const (
	ControlPrevious PageControlKind = iota
	ControlPage
	ControlNext
)

// PageControl is one link of the pagination bar.
type PageControl struct {
	Kind   PageControlKind
	Page   int
	Active bool
}

// Pagination is the state of one page of project cards. Cards with an index
// in [Start, End) are visible.
type Pagination struct {
	Count    int
	Size     int
	Page     int
	Total    int
	Start    int
	End      int
	Controls []PageControl
}

// TotalPages returns ceil(count/size).
func TotalPages(count, size int) int {
	if size <= 0 || count <= 0 {
		return 0
	}
	return (count + size - 1) / size
}

// Paginate computes which cards are visible on page and the controls of the
// bar. It returns false when count fits on a single page, in which case no
// pagination is rendered at all. page is clamped to [1, total].
func Paginate(count, size, page int) (Pagination, bool) {
	if size <= 0 || count <= size {
		return Pagination{}, false
	}
	total := TotalPages(count, size)
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}

	p := Pagination{
		Count: count,
		Size:  size,
		Page:  page,
		Total: total,
		Start: (page - 1) * size,
		End:   min(page*size, count),
	}

	p.Controls = make([]PageControl, 0, total+2)
	if page > 1 {
		p.Controls = append(p.Controls, PageControl{Kind: ControlPrevious, Page: page - 1})
	}
	for i := 1; i <= total; i++ {
		p.Controls = append(p.Controls, PageControl{Kind: ControlPage, Page: i, Active: i == page})
	}
	if page < total {
		p.Controls = append(p.Controls, PageControl{Kind: ControlNext, Page: page + 1})
	}
	return p, true
}

// Visible reports whether the card at index i is shown.
func (p Pagination) Visible(i int) bool {
	return i >= p.Start && i < p.End
}
