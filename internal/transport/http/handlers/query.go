package handlers

import (
	"net/url"
	"strconv"

	"github.com/scoutlens/tracking-service/internal/domain"
	"github.com/scoutlens/tracking-service/internal/service"
)

// parsePage reads limit/offset query params. Absent params fall through to
// the service defaults; garbage is a validation failure.
func parsePage(q url.Values) (service.Page, error) {
	var p service.Page
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return p, domain.ErrValidationMeta("invalid query param", map[string]string{"limit": "must be an integer"})
		}
		p.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return p, domain.ErrValidationMeta("invalid query param", map[string]string{"offset": "must be an integer"})
		}
		p.Offset = n
	}
	return p, nil
}

func parseBool(q url.Values, name string) (*bool, error) {
	v := q.Get(name)
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, domain.ErrValidationMeta("invalid query param", map[string]string{name: "must be true or false"})
	}
	return &b, nil
}
