package twin

// Session is the browsing state of the dashboard: the loaded twins, the
// current list page and the selected container.
type Session struct {
	Source   string
	Twins    []Twin
	Warnings []string
	PerPage  int
	page     int
	selected int
}

// NewSession starts on the first page with the first container selected.
func NewSession(source string, twins []Twin, warnings []string, perPage int) *Session {
	if perPage <= 0 {
		perPage = 7
	}
	s := &Session{
		Source:   source,
		Twins:    twins,
		Warnings: warnings,
		PerPage:  perPage,
		page:     1,
		selected: -1,
	}
	if len(twins) > 0 {
		s.selected = 0
	}
	return s
}

// Page returns the current 1-based page.
func (s *Session) Page() int { return s.page }

// PageCount returns the number of list pages.
func (s *Session) PageCount() int {
	_, n := Paginate(s.Twins, s.page, s.PerPage)
	return n
}

// PageItems returns the twins on the current page.
func (s *Session) PageItems() []Twin {
	items, _ := Paginate(s.Twins, s.page, s.PerPage)
	return items
}

// SetPage moves to page p, clamped to the valid range.
func (s *Session) SetPage(p int) {
	n := s.PageCount()
	if p < 1 {
		p = 1
	}
	if p > n {
		p = n
	}
	s.page = p
}

// NextPage advances one page. It reports whether the page changed.
func (s *Session) NextPage() bool {
	before := s.page
	s.SetPage(s.page + 1)
	return s.page != before
}

// PrevPage goes back one page. It reports whether the page changed.
func (s *Session) PrevPage() bool {
	before := s.page
	s.SetPage(s.page - 1)
	return s.page != before
}

// Select marks the twin with the given shipment ID as selected.
func (s *Session) Select(id string) bool {
	for i, t := range s.Twins {
		if t.Shipment.ID == id {
			s.selected = i
			return true
		}
	}
	return false
}

// Selected returns the selected twin, or false when nothing is loaded.
func (s *Session) Selected() (Twin, bool) {
	if s.selected < 0 || s.selected >= len(s.Twins) {
		return Twin{}, false
	}
	return s.Twins[s.selected], true
}
