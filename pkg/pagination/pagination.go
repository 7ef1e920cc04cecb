package pagination

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const DefaultCount = 50

// Params holds pagination parameters extracted from a request. Count is
// passed through to the repositories uncapped; callers decide page size.
type Params struct {
	Count  int
	Offset int
}

// FromContext extracts _count and _offset from the echo context. Missing or
// non-numeric values fall back to the defaults (50 and 0).
func FromContext(c echo.Context) Params {
	count, err := strconv.Atoi(c.QueryParam("_count"))
	if err != nil || count <= 0 {
		count = DefaultCount
	}

	offset, err := strconv.Atoi(c.QueryParam("_offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	return Params{Count: count, Offset: offset}
}

// HasNext returns true if there are more results after the current page.
func (p Params) HasNext(total int) bool {
	return p.Offset+p.Count < total
}

// HasPrevious returns true if there are results before the current page.
func (p Params) HasPrevious() bool {
	return p.Offset > 0
}
