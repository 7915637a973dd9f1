package repository

import (
	"fmt"
	"strings"
)

// Query is a backend-neutral filter. Clauses are combined with AND and
// rendered with `?` placeholders; backends rebind as needed.
type Query struct {
	clauses []clause
	orders  []Order
	limit   int
}

type clause struct {
	sql  string
	args []any
}

// Order sorts by one column
type Order struct {
	Column string
	Desc   bool
}

func Asc(column string) Order  { return Order{Column: column} }
func Desc(column string) Order { return Order{Column: column, Desc: true} }

func (o Order) String() string {
	if o.Desc {
		return o.Column + " DESC"
	}
	return o.Column + " ASC"
}

// NewQuery returns an empty query
func NewQuery() Query {
	return Query{}
}

func (q Query) with(sql string, args ...any) Query {
	clauses := make([]clause, len(q.clauses), len(q.clauses)+1)
	copy(clauses, q.clauses)
	q.clauses = append(clauses, clause{sql: sql, args: args})
	return q
}

func (q Query) Eq(column string, value any) Query {
	if value == nil {
		return q.with(column + " IS NULL")
	}
	return q.with(column+" = ?", value)
}

func (q Query) Neq(column string, value any) Query {
	return q.with(column+" <> ?", value)
}

func (q Query) Gte(column string, value any) Query {
	return q.with(column+" >= ?", value)
}

func (q Query) Lte(column string, value any) Query {
	return q.with(column+" <= ?", value)
}

// Search adds a case-insensitive substring match of term against any of
// columns. LIKE metacharacters in term match literally.
func (q Query) Search(term string, columns ...string) Query {
	if len(columns) == 0 {
		return q
	}
	pattern := "%" + EscapeLike(term) + "%"
	parts := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		parts[i] = fmt.Sprintf(`LOWER(%s) LIKE LOWER(?) ESCAPE '\'`, col)
		args[i] = pattern
	}
	return q.with("("+strings.Join(parts, " OR ")+")", args...)
}

func (q Query) OrderBy(orders ...Order) Query {
	merged := make([]Order, 0, len(q.orders)+len(orders))
	merged = append(merged, q.orders...)
	q.orders = append(merged, orders...)
	return q
}

func (q Query) Limit(n int) Query {
	q.limit = n
	return q
}

// Ordered reports whether any ordering was requested
func (q Query) Ordered() bool {
	return len(q.orders) > 0
}

// Where renders the filter clauses, without the WHERE keyword
func (q Query) Where() (string, []any) {
	if len(q.clauses) == 0 {
		return "", nil
	}
	parts := make([]string, len(q.clauses))
	var args []any
	for i, c := range q.clauses {
		parts[i] = c.sql
		args = append(args, c.args...)
	}
	return strings.Join(parts, " AND "), args
}

func (q Query) Orders() []Order {
	return q.orders
}

func (q Query) LimitValue() int {
	return q.limit
}

// SQL renders the trailing clauses of a statement: WHERE, ORDER BY, LIMIT
func (q Query) SQL() (string, []any) {
	var b strings.Builder
	where, args := q.Where()
	if where != "" {
		b.WriteString(" WHERE ")
		b.WriteString(where)
	}
	if len(q.orders) > 0 {
		parts := make([]string, len(q.orders))
		for i, o := range q.orders {
			parts[i] = o.String()
		}
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(parts, ", "))
	}
	if q.limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", q.limit)
	}
	return b.String(), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE metacharacters with a backslash
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
