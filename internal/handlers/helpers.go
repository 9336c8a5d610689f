package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/casual-cat/instamini-project/internal/filter"
	"github.com/casual-cat/instamini-project/internal/metrics"
	"github.com/labstack/echo/v4"
)

// paramID parses a numeric path parameter. Non-numeric ids do not match any route.
func paramID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("invalid %s", name))
	}
	return uint(id), nil
}

// screened is user text after trimming, the word limit and redaction
type screened struct {
	Text      string
	WordCount int
	TooLong   bool
}

// screenText trims text, checks the word limit and, when within it, masks disallowed tokens
func screenText(kind, text string, words filter.WordSet, m *metrics.Metrics) screened {
	text = strings.TrimSpace(text)
	count, ok := filter.WithinLimit(text)
	if !ok {
		m.ObserveRejection(kind, "too_long")
		return screened{WordCount: count, TooLong: true}
	}
	clean, n := filter.Redact(text, words)
	m.ObserveRedaction(kind, n)
	return screened{Text: clean, WordCount: count}
}

func jsonError(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"error": msg})
}
