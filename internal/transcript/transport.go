package transcript

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/jsodoma4050/business-intelligence/internal/apperror"
)

const (
	MinYear    = 2000
	MaxYear    = 2030
	MinQuarter = 1
	MaxQuarter = 4
)

var tickerPattern = regexp.MustCompile(`^[A-Z]{1,5}$`)

type Request struct {
	Ticker  string
	Year    int
	Quarter int
}

// ParseRequest reads and validates ticker, year and quarter from q. Presence
// is checked for every field before any format check.
func ParseRequest(q url.Values) (Request, *apperror.AppError) {
	ticker := strings.TrimSpace(q.Get("ticker"))
	year := strings.TrimSpace(q.Get("year"))
	quarter := strings.TrimSpace(q.Get("quarter"))

	switch {
	case ticker == "":
		return Request{}, apperror.New(apperror.MissingParameter, "Ticker is required")
	case year == "":
		return Request{}, apperror.New(apperror.MissingParameter, "Year is required")
	case quarter == "":
		return Request{}, apperror.New(apperror.MissingParameter, "Quarter is required")
	}

	req := Request{Ticker: strings.ToUpper(ticker)}
	if !tickerPattern.MatchString(req.Ticker) {
		return Request{}, apperror.New(apperror.InvalidParameter, "Ticker must be 1-5 letters")
	}

	var ok bool
	if req.Year, ok = parseInRange(year, MinYear, MaxYear); !ok {
		return Request{}, apperror.New(apperror.InvalidParameter,
			fmt.Sprintf("Year must be an integer between %d and %d", MinYear, MaxYear))
	}
	if req.Quarter, ok = parseInRange(quarter, MinQuarter, MaxQuarter); !ok {
		return Request{}, apperror.New(apperror.InvalidParameter,
			fmt.Sprintf("Quarter must be an integer between %d and %d", MinQuarter, MaxQuarter))
	}

	return req, nil
}

func parseInRange(s string, lo, hi int) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < lo || n > hi {
		return 0, false
	}
	return n, true
}
