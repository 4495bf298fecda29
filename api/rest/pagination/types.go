package pagination

// page size bounds for catalog listings. A request can never pull the
// whole table in one call.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params is a clamped limit/offset pair ready for a repository query
type Params struct {
	Limit  int
	Offset int
}

// Clamp applies the package bounds to raw query values. Non-positive
// limits get the default, oversized ones are capped, negative offsets
// reset to zero.
func Clamp(limit, offset int) Params {
	if limit <= 0 {
		limit = DefaultLimit
	}

	if limit > MaxLimit {
		limit = MaxLimit
	}

	if offset < 0 {
		offset = 0
	}

	return Params{Limit: limit, Offset: offset}
}

// Meta describes the returned page in a list response
type Meta struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"hasMore"`
}

// NewMeta builds the response metadata for one page
func NewMeta(params Params, total int) Meta {
	return Meta{
		Total:   total,
		Limit:   params.Limit,
		Offset:  params.Offset,
		HasMore: params.Offset+params.Limit < total,
	}
}
