package httpx

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/irishmetals/skipdispatch/internal/domain/lifecycle"
	"github.com/irishmetals/skipdispatch/internal/domain/model"
	"github.com/irishmetals/skipdispatch/internal/domain/validation"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// parseIntQuery returns the integer value of a query param or a default.
// It is tolerant of missing/invalid values.
func parseIntQuery(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

// ParseLimitOffset parses common pagination params and clamps to sane bounds.
// - defLimit: default limit when not specified
// - maxLimit: maximum allowed limit (values > maxLimit are clamped to maxLimit).
func ParseLimitOffset(r *http.Request, defLimit, maxLimit int) (int, int) {
	if maxLimit < 1 {
		maxLimit = 1
	}

	lim := parseIntQuery(r, "limit", defLimit)
	off := parseIntQuery(r, "offset", 0)
	if lim < 1 {
		lim = 1
	}
	if lim > maxLimit {
		lim = maxLimit
	}
	if off < 0 {
		off = 0
	}
	return lim, off
}

// parseJobListOptions reads the job list filters, collecting every bad value.
func parseJobListOptions(r *http.Request) (*model.SkipJobListOptions, error) {
	q := r.URL.Query()
	opts := &model.SkipJobListOptions{
		DriverID:   queryPtr(q.Get("driver_id")),
		CustomerID: queryPtr(q.Get("customer_id")),
		DateFrom:   queryPtr(q.Get("date_from")),
		DateTo:     queryPtr(q.Get("date_to")),
		DocketNo:   queryPtr(q.Get("docket_no")),
	}
	opts.Limit, opts.Offset = ParseLimitOffset(r, defaultListLimit, maxListLimit)

	c := validation.New().
		OptionalUUID("driver_id", opts.DriverID).
		OptionalUUID("customer_id", opts.CustomerID)
	if opts.DateFrom != nil {
		c.RequireDate("date_from", *opts.DateFrom)
	}
	if opts.DateTo != nil {
		c.RequireDate("date_to", *opts.DateTo)
	}
	if opts.DocketNo != nil {
		c.Check(lifecycle.IsDocketNo(*opts.DocketNo), "docket_no must look like YYMMDD-NNNN-"+lifecycle.DocketSuffix)
	}
	if v := queryPtr(q.Get("status")); v != nil {
		c.OneOf("status", *v, model.JobStatusValues(), "must be a valid status")
		status := model.JobStatus(*v)
		opts.Status = &status
	}
	if err := c.Err(); err != nil {
		return nil, err
	}
	return opts, nil
}

func queryPtr(raw string) *string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return nil
	}
	return &v
}
