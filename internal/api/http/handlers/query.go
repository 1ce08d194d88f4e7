package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/admin-portal/pkg/util"
)

// queryParser reads list filters and collects every invalid parameter
// so a single 400 reports all of them.
type queryParser struct {
	c       *fiber.Ctx
	invalid map[string]any
}

func newQueryParser(c *fiber.Ctx) *queryParser {
	return &queryParser{c: c, invalid: map[string]any{}}
}

func (p *queryParser) text(key string) string {
	return strings.TrimSpace(p.c.Query(key))
}

// positiveInt returns 0 when the parameter is absent.
func (p *queryParser) positiveInt(key string) int {
	val := p.text(key)
	if val == "" {
		return 0
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		p.invalid[key] = val
		return 0
	}
	return n
}

func (p *queryParser) err() error {
	if len(p.invalid) == 0 {
		return nil
	}
	return apperrors.NewValidationError("invalid query parameters", p.invalid)
}

// queryEnum returns the zero value when the parameter is absent.
func queryEnum[T ~string](p *queryParser, key string, valid func(T) bool) T {
	val := T(p.text(key))
	if val == "" {
		return val
	}
	if !valid(val) {
		p.invalid[key] = string(val)
		return ""
	}
	return val
}
