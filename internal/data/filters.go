package data

import "github.com/myk4040okothogodo/moviecatalog/internal/validator"

// Page is the skip/take window used by the list endpoints. PageIndex is the number of rows to
// skip, not a page number.
type Page struct {
	PageIndex int
	PageSize  int
}

func ValidatePage(v *validator.Validator, p Page) {
	v.Check(p.PageIndex >= 0, "pageIndex", "must be zero or greater")
	v.Check(p.PageSize > 0, "pageSize", "must be greater than zero")
}
