package httpserver

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"jerseyshop/internal/domain"
)

// pageQuery reads ?page and ?limit. Bad values fall back to defaults.
func pageQuery(c *gin.Context) domain.PageRequest {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return domain.PageRequest{Page: page, Limit: limit}.Normalize()
}

// maxPriceBound caps price filters well below the int64 cent range.
var maxPriceBound = decimal.NewFromInt(10_000_000)

// centsQuery parses a decimal money amount such as "49.99".
func centsQuery(c *gin.Context, op, name string) (*domain.Cents, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() || d.GreaterThan(maxPriceBound) {
		return nil, domain.Invalid(op, "Invalid "+name)
	}
	v := domain.CentsFromDecimal(d)
	return &v, nil
}

// jerseyIDParam reads the numeric :id. Non-numeric ids cannot exist.
func jerseyIDParam(c *gin.Context, op string) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NotFound(op, "Jersey not found")
	}
	return id, nil
}
