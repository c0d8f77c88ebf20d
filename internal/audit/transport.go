package audit

import (
	"strconv"

	"github.com/jsodoma4050/business-intelligence/internal/apperror"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

type ListRequest struct {
	Limit int
}

// ParseListRequest reads the optional limit query value.
func ParseListRequest(limit string) (ListRequest, *apperror.AppError) {
	if limit == "" {
		return ListRequest{Limit: DefaultLimit}, nil
	}
	n, err := strconv.Atoi(limit)
	if err != nil {
		return ListRequest{}, apperror.New(apperror.InvalidParameter, "limit must be an integer")
	}
	req := ListRequest{Limit: n}
	if appErr := req.Validate(); appErr != nil {
		return ListRequest{}, appErr
	}
	return req, nil
}

func (r ListRequest) Validate() *apperror.AppError {
	if r.Limit < 1 || r.Limit > MaxLimit {
		return apperror.New(apperror.InvalidParameter, "limit must be between 1 and 500")
	}
	return nil
}
