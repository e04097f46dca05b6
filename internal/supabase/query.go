package supabase

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// QueryBuilder builds PostgREST requests for one table.
type QueryBuilder struct {
	client  *Client
	table   string
	columns string
	filters []string
	orders  []string
	limit   int
	single  bool
}

// Select specifies the columns to return.
func (q *QueryBuilder) Select(columns string) *QueryBuilder {
	q.columns = columns
	return q
}

// Eq adds an equality filter.
func (q *QueryBuilder) Eq(column string, value any) *QueryBuilder {
	q.filters = append(q.filters, fmt.Sprintf("%s=eq.%v", column, value))
	return q
}

// Order adds an ORDER BY clause.
func (q *QueryBuilder) Order(column string, ascending bool) *QueryBuilder {
	dir := "asc"
	if !ascending {
		dir = "desc"
	}
	q.orders = append(q.orders, fmt.Sprintf("%s.%s", column, dir))
	return q
}

// Limit caps the number of returned rows.
func (q *QueryBuilder) Limit(n int) *QueryBuilder {
	q.limit = n
	return q
}

// Single requests exactly one object instead of an array. A request that
// matches no rows fails as not-found.
func (q *QueryBuilder) Single() *QueryBuilder {
	q.single = true
	return q
}

func (q *QueryBuilder) restURL() string {
	return fmt.Sprintf("%s/rest/v1/%s", q.client.baseURL, q.table)
}

func (q *QueryBuilder) params() url.Values {
	params := url.Values{}
	if q.columns != "" {
		params.Set("select", q.columns)
	}
	for _, f := range q.filters {
		parts := strings.SplitN(f, "=", 2)
		if len(parts) == 2 {
			params.Add(parts[0], parts[1])
		}
	}
	if len(q.orders) > 0 {
		params.Set("order", strings.Join(q.orders, ","))
	}
	if q.limit > 0 {
		params.Set("limit", fmt.Sprintf("%d", q.limit))
	}
	return params
}

func (q *QueryBuilder) urlWithParams() string {
	reqURL := q.restURL()
	if params := q.params(); len(params) > 0 {
		reqURL += "?" + params.Encode()
	}
	return reqURL
}

// Execute performs a SELECT and returns the raw JSON body: an array, or a
// single object when Single was requested.
func (q *QueryBuilder) Execute(ctx context.Context) ([]byte, error) {
	req, err := q.client.newRequest(ctx, http.MethodGet, q.urlWithParams(), nil)
	if err != nil {
		return nil, err
	}
	q.client.setHeaders(req)
	if q.single {
		req.Header.Set("Accept", "application/vnd.pgrst.object+json")
	}

	resp, err := q.client.do(req, q.table)
	if err != nil {
		return nil, err
	}
	if resp.statusCode >= 400 {
		return nil, tableError(resp.body, resp.statusCode)
	}
	return resp.body, nil
}

// ExecuteInsert performs an INSERT.
func (q *QueryBuilder) ExecuteInsert(ctx context.Context, data any) error {
	return q.write(ctx, http.MethodPost, q.restURL(), data, "return=minimal")
}

// ExecuteUpsert performs an insert-or-replace keyed on the table's primary
// key.
func (q *QueryBuilder) ExecuteUpsert(ctx context.Context, data any) error {
	return q.write(ctx, http.MethodPost, q.restURL(), data, "resolution=merge-duplicates,return=minimal")
}

// ExecuteUpdate performs a PATCH over the rows matched by the filters.
func (q *QueryBuilder) ExecuteUpdate(ctx context.Context, data any) error {
	return q.write(ctx, http.MethodPatch, q.urlWithParams(), data, "return=minimal")
}

// ExecuteDelete removes the rows matched by the filters. Matching no rows
// is not an error.
func (q *QueryBuilder) ExecuteDelete(ctx context.Context) error {
	return q.write(ctx, http.MethodDelete, q.urlWithParams(), nil, "return=minimal")
}

func (q *QueryBuilder) write(ctx context.Context, method, reqURL string, data any, prefer string) error {
	req, err := q.client.newRequest(ctx, method, reqURL, data)
	if err != nil {
		return err
	}
	q.client.setHeaders(req)
	req.Header.Set("Prefer", prefer)

	resp, err := q.client.do(req, q.table)
	if err != nil {
		return err
	}
	if resp.statusCode >= 400 {
		return tableError(resp.body, resp.statusCode)
	}
	return nil
}
