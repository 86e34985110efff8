// Package http provides HTTP server and handler implementations.
//
// This file implements utilities for parsing and validating HTTP request data.

package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"reviewdesk/internal/core"
)

const maxBodyBytes = 64 << 10

var (
	// ErrMissingID is returned when a review request names no expense.
	ErrMissingID = errors.New("missing expense id")
	// ErrBodyTooLarge is returned when a request body exceeds 64 KiB.
	ErrBodyTooLarge = errors.New("request body too large")
)

// RequestBodyParser handles different content types for request body parsing.
// It supports both JSON and form-encoded data, commonly used with HTMX.
type RequestBodyParser struct {
	body     []byte
	jsonData map[string]interface{}
	formData url.Values
	parsed   bool
	err      error
}

// NewRequestBodyParser reads the body once. A body over 64 KiB is rejected
// with ErrBodyTooLarge instead of being parsed in part.
func NewRequestBodyParser(r *http.Request) *RequestBodyParser {
	p := &RequestBodyParser{}
	if r.Body != nil {
		p.body, p.err = io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
		if p.err == nil && len(p.body) > maxBodyBytes {
			p.body, p.err = nil, ErrBodyTooLarge
		}
	}
	return p
}

// Parse attempts to parse the body as JSON or form data.
func (p *RequestBodyParser) Parse() error {
	if p.parsed {
		return p.err
	}
	p.parsed = true

	if p.err != nil {
		return p.err
	}

	if len(p.body) == 0 {
		p.formData = url.Values{}
		return nil
	}

	if p.body[0] == '{' {
		p.jsonData = make(map[string]interface{})
		if err := json.Unmarshal(p.body, &p.jsonData); err != nil {
			p.err = err
			return err
		}
		return nil
	}

	p.formData, p.err = url.ParseQuery(string(p.body))
	return p.err
}

// Get returns a sanitized string value from the parsed data (JSON or form).
func (p *RequestBodyParser) Get(key string) string {
	if p.jsonData != nil {
		if val, ok := p.jsonData[key]; ok {
			return sanitizeInput(stringValue(val))
		}
		return ""
	}
	if p.formData != nil {
		return sanitizeInput(p.formData.Get(key))
	}
	return ""
}

// IsJSON returns true if the parsed content was JSON.
func (p *RequestBodyParser) IsJSON() bool {
	return p.jsonData != nil
}

func stringValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// ReviewForm carries the fields of an approve or reject request.
type ReviewForm struct {
	ID      string
	Comment string
	Tab     core.Status
}

// ParseReviewForm reads id and comment from a form or JSON body.
func ParseReviewForm(r *http.Request) (ReviewForm, error) {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		return ReviewForm{}, err
	}
	f := ReviewForm{
		ID:      p.Get("id"),
		Comment: p.Get("comment"),
		Tab:     tabStatus(p.Get("tab")),
	}
	if f.ID == "" {
		return f, ErrMissingID
	}
	return f, nil
}

// ParseTab maps the tab query value to a status; anything unknown is pending.
func ParseTab(query url.Values) core.Status {
	return tabStatus(query.Get("tab"))
}

func tabStatus(v string) core.Status {
	st, err := core.ParseStatus(v)
	if err != nil {
		return core.StatusPending
	}
	return st
}

// RequireMethod checks if the request method matches the expected method(s).
// Returns an error response builder if the method doesn't match.
func RequireMethod(r *http.Request, methods ...string) *HTMXResponseBuilder {
	for _, m := range methods {
		if r.Method == m {
			return nil
		}
	}
	return MethodNotAllowedError(strings.Join(methods, ", "))
}

// RequirePOST is a convenience function for POST-only handlers.
func RequirePOST(r *http.Request) *HTMXResponseBuilder {
	return RequireMethod(r, http.MethodPost)
}

// RequireGET is a convenience function for read-only handlers.
func RequireGET(r *http.Request) *HTMXResponseBuilder {
	return RequireMethod(r, http.MethodGet, http.MethodHead)
}
