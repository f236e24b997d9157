package odata

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the flavor of OData operation a Request addresses.
type Kind int

const (
	// KindFunction is a read-only function import at the service root,
	// invoked as /Name(p1='v',p2=123).
	KindFunction Kind = iota

	// KindBoundAction is a mutating action bound to one entity,
	// invoked as /EntitySet(key)/Namespace.name.
	KindBoundAction

	// KindUnboundAction is a mutating action at the service root,
	// invoked as /Namespace.name.
	KindUnboundAction
)

type param struct {
	name  string
	value any
}

// Request is one OData operation with its parameters. Construct it with
// Function, BoundAction, or UnboundAction; it is built fresh at every
// call site and never reused.
type Request struct {
	name      string
	kind      Kind
	entitySet string
	key       any
	params    []param
	body      map[string]any
}

// Function creates a request for a function import at the service root.
func Function(name string) *Request {
	return &Request{name: name, kind: KindFunction}
}

// BoundAction creates a request for an action bound to one entity.
func BoundAction(entitySet string, key any, name string) *Request {
	return &Request{name: name, kind: KindBoundAction, entitySet: entitySet, key: key}
}

// UnboundAction creates a request for an action at the service root.
func UnboundAction(name string) *Request {
	return &Request{name: name, kind: KindUnboundAction}
}

// Param appends a named parameter. Nil values are omitted from the
// built path entirely rather than serialized, matching the backend's
// treatment of absent optionals. Parameter order is preserved.
func (r *Request) Param(name string, value any) *Request {
	if value == nil {
		return r
	}
	r.params = append(r.params, param{name: name, value: value})
	return r
}

// Body sets a named field in the JSON body sent with action requests.
// Nil values are omitted.
func (r *Request) Body(name string, value any) *Request {
	if value == nil {
		return r
	}
	if r.body == nil {
		r.body = make(map[string]any)
	}
	r.body[name] = value
	return r
}

// Name returns the operation name.
func (r *Request) Name() string {
	return r.name
}

// Kind returns the operation kind.
func (r *Request) Kind() Kind {
	return r.kind
}

// BodyMap returns the JSON body for action requests, or nil.
func (r *Request) BodyMap() map[string]any {
	return r.body
}

// Path builds the URL path for the request, relative to the service
// root. Quoting and escaping live here instead of at call sites.
func (r *Request) Path(namespace string) string {
	switch r.kind {
	case KindBoundAction:
		return fmt.Sprintf("/%s(%s)/%s.%s", r.entitySet, literal(r.key), namespace, r.name)
	case KindUnboundAction:
		return fmt.Sprintf("/%s.%s", namespace, r.name)
	default:
		if len(r.params) == 0 {
			return "/" + r.name + "()"
		}
		parts := make([]string, 0, len(r.params))
		for _, p := range r.params {
			parts = append(parts, p.name+"="+literal(p.value))
		}
		return "/" + r.name + "(" + strings.Join(parts, ",") + ")"
	}
}

// literal renders a scalar as an OData URL literal. Strings are quoted
// with single quotes doubled; numerics and booleans are bare; times use
// the ISO date-time literal form.
func literal(v any) string {
	switch val := v.(type) {
	case string:
		return "'" + strings.ReplaceAll(val, "'", "''") + "'"
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		return "'" + val.UTC().Format("2006-01-02T15:04:05Z") + "'"
	default:
		return "'" + strings.ReplaceAll(fmt.Sprint(val), "'", "''") + "'"
	}
}

// Query holds optional system query options for entity set reads.
type Query struct {
	Filter  string
	Select  string
	OrderBy string
	Top     int
	Skip    int
}

// Encode renders the query options as a URL query string, empty when no
// option is set.
func (q Query) Encode() string {
	values := url.Values{}
	if q.Filter != "" {
		values.Set("$filter", q.Filter)
	}
	if q.Select != "" {
		values.Set("$select", q.Select)
	}
	if q.OrderBy != "" {
		values.Set("$orderby", q.OrderBy)
	}
	if q.Top > 0 {
		values.Set("$top", strconv.Itoa(q.Top))
	}
	if q.Skip > 0 {
		values.Set("$skip", strconv.Itoa(q.Skip))
	}
	return values.Encode()
}
