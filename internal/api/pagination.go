package api

import (
	"net/url" // Page links
	"strconv" // Query parsing

	"github.com/gin-gonic/gin" // Gin web framework
)

const defaultPageSize = 10

// Paginator slices result sets by ?page= and ?page_size=
type Paginator struct {
	PageSize    int // used when page_size is absent or invalid
	MaxPageSize int // page_size is clamped to this
}

// page is one window of a result set
type page struct {
	Start, End     int
	Next, Previous *string
}

// size returns the requested page size, clamped to the maximum
func (p Paginator) size(c *gin.Context) int {
	size := p.PageSize
	if size <= 0 {
		size = defaultPageSize
	}
	if v, err := strconv.Atoi(c.Query("page_size")); err == nil && v > 0 {
		size = v
	}
	if p.MaxPageSize > 0 && size > p.MaxPageSize {
		size = p.MaxPageSize
	}
	return size
}

// Paginate picks the requested window of count items. Page 1 of an empty set
// is valid; any other page past the end is errInvalidPage.
func (p Paginator) Paginate(c *gin.Context, count int) (page, error) {
	size := p.size(c)
	number := 1
	if raw := c.Query("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return page{}, errInvalidPage
		}
		number = v
	}
	pages := (count + size - 1) / size
	if pages == 0 {
		pages = 1
	}
	if number > pages {
		return page{}, errInvalidPage
	}

	pg := page{Start: (number - 1) * size, End: min(number*size, count)}
	if number < pages {
		link := pageLink(c, number+1)
		pg.Next = &link
	}
	if number > 1 {
		link := pageLink(c, number-1)
		pg.Previous = &link
	}
	return pg, nil
}

// pageLink rebuilds the request URL for another page; the first page carries no page parameter
func pageLink(c *gin.Context, number int) string {
	u := url.URL{Scheme: "http", Host: c.Request.Host, Path: c.Request.URL.Path}
	if c.Request.TLS != nil {
		u.Scheme = "https"
	}
	q := c.Request.URL.Query()
	if number == 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(number))
	}
	u.RawQuery = q.Encode()
	return u.String()
}
