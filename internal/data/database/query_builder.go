// Package database builds parameterised list queries.
package database

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
)

type ConditionType string

const (
	Equal              ConditionType = "="
	NotEqual           ConditionType = "!="
	GreaterThanOrEqual ConditionType = ">="
	LessThanOrEqual    ConditionType = "<="
	ILike              ConditionType = "ILIKE"
	In                 ConditionType = "IN"
	Custom             ConditionType = "CUSTOM"
	defaultLimit                     = -1
	defaultOffset                    = -1
)

var placeholderRe = regexp.MustCompile(`\$(\d+)`)

type Condition struct {
	Field    string
	Type     ConditionType
	Value    any
	rawQuery *string
}

// WhereCond compares a (possibly qualified) column against a parameter.
func WhereCond(field string, condType ConditionType, value any) Condition {
	if condType == Custom {
		//nolint:forbidigo // panic prevents misuse; custom conditions must provide raw SQL via WhereRawCond.
		panic("Use WhereRawCond for Custom type")
	}
	return Condition{Field: field, Type: condType, Value: value}
}

// WhereRawCond embeds trusted SQL. Its $n placeholders are renumbered to
// follow the parameters already in the query.
func WhereRawCond(rawQuery string, params ...any) Condition {
	return Condition{Type: Custom, rawQuery: &rawQuery, Value: params}
}

// OrderTerm is one ORDER BY column.
type OrderTerm struct {
	Column string
	Desc   bool
}

// ListQueryOptions describes a SELECT over a trusted FROM expression.
// From and Columns are written as given; condition and order columns are
// quoted.
type ListQueryOptions struct {
	From       string
	Columns    []string
	CountOnly  bool
	Conditions []Condition
	OrderBy    []OrderTerm
	Limit      int
	Offset     int
}

type ListQueryOption func(*ListQueryOptions)

func NewListQueryOptions(from string, opts ...ListQueryOption) *ListQueryOptions {
	options := &ListQueryOptions{
		From:   from,
		Limit:  defaultLimit,
		Offset: defaultOffset,
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// WithColumns sets the select list.
func WithColumns(cols ...string) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.Columns = cols
	}
}

// WithCondition adds a single condition.
func WithCondition(cond Condition) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.Conditions = append(o.Conditions, cond)
	}
}

// WithOrderBy appends an ordering column.
func WithOrderBy(column string, desc bool) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.OrderBy = append(o.OrderBy, OrderTerm{Column: column, Desc: desc})
	}
}

// WithLimit sets the limit. Accepts 0.
func WithLimit(limit int) ListQueryOption {
	return func(o *ListQueryOptions) {
		if limit >= 0 {
			o.Limit = limit
		}
	}
}

// WithOffset sets the offset. Accepts 0.
func WithOffset(offset int) ListQueryOption {
	return func(o *ListQueryOptions) {
		if offset >= 0 {
			o.Offset = offset
		}
	}
}

// WithCountOnly selects COUNT(*) and drops ordering and pagination.
func WithCountOnly() ListQueryOption {
	return func(o *ListQueryOptions) {
		o.CountOnly = true
	}
}

// sanitizeQualifiedIdentifier quotes "alias.column" as "alias"."column".
func sanitizeQualifiedIdentifier(ident string) string {
	return pgx.Identifier(strings.Split(ident, ".")).Sanitize()
}

// BuildListQuery renders options into SQL and its arguments.
func BuildListQuery(options *ListQueryOptions) (string, []any) {
	if options == nil {
		return "", nil
	}

	var query strings.Builder
	switch {
	case options.CountOnly:
		query.WriteString("SELECT COUNT(*)")
	case len(options.Columns) == 0:
		query.WriteString("SELECT *")
	default:
		query.WriteString("SELECT ")
		query.WriteString(strings.Join(options.Columns, ", "))
	}
	query.WriteString(" FROM ")
	query.WriteString(options.From)

	whereClause, args, next := buildWhereClause(options.Conditions, 1)
	if whereClause != "" {
		query.WriteString(" ")
		query.WriteString(whereClause)
	}
	if options.CountOnly {
		return query.String(), args
	}

	if len(options.OrderBy) > 0 {
		terms := make([]string, 0, len(options.OrderBy))
		for _, t := range options.OrderBy {
			term := sanitizeQualifiedIdentifier(t.Column)
			if t.Desc {
				term += " DESC"
			}
			terms = append(terms, term)
		}
		query.WriteString(" ORDER BY ")
		query.WriteString(strings.Join(terms, ", "))
	}
	if options.Limit != defaultLimit {
		fmt.Fprintf(&query, " LIMIT $%d", next)
		args = append(args, options.Limit)
		next++
	}
	if options.Offset != defaultOffset {
		fmt.Fprintf(&query, " OFFSET $%d", next)
		args = append(args, options.Offset)
	}

	return query.String(), args
}

func buildWhereClause(conds []Condition, start int) (string, []any, int) {
	parts := make([]string, 0, len(conds))
	args := []any{}
	next := start

	for _, cond := range conds {
		sql, condArgs, n := processCondition(cond, next)
		if sql == "" {
			continue
		}
		parts = append(parts, sql)
		args = append(args, condArgs...)
		next = n
	}

	if len(parts) == 0 {
		return "", args, next
	}
	return "WHERE " + strings.Join(parts, " AND "), args, next
}

func processCondition(cond Condition, next int) (string, []any, int) {
	if cond.Type == Custom {
		return handleCustomCondition(cond, next)
	}
	if cond.Field == "" {
		return "", nil, next
	}
	field := sanitizeQualifiedIdentifier(cond.Field)

	switch cond.Type {
	case In:
		rv := reflect.ValueOf(cond.Value)
		if rv.Kind() != reflect.Slice || rv.Len() == 0 {
			return "", nil, next
		}
		placeholders := make([]string, rv.Len())
		args := make([]any, rv.Len())
		for i := range rv.Len() {
			placeholders[i] = fmt.Sprintf("$%d", next)
			args[i] = rv.Index(i).Interface()
			next++
		}
		return fmt.Sprintf("%s IN (%s)", field, strings.Join(placeholders, ", ")), args, next
	case Equal, NotEqual, GreaterThanOrEqual, LessThanOrEqual, ILike:
		return fmt.Sprintf("%s %s $%d", field, cond.Type, next), []any{cond.Value}, next + 1
	}
	return "", nil, next
}

func handleCustomCondition(cond Condition, next int) (string, []any, int) {
	if cond.rawQuery == nil || *cond.rawQuery == "" {
		return "", nil, next
	}
	params, _ := cond.Value.([]any)

	// $10 must not be read as $1 followed by 0.
	args := []any{}
	idxMap := make(map[int]int)
	sql := placeholderRe.ReplaceAllStringFunc(*cond.rawQuery, func(m string) string {
		n, err := strconv.Atoi(m[1:])
		if err != nil || n < 1 || n > len(params) {
			return m
		}
		if _, ok := idxMap[n]; !ok {
			idxMap[n] = next
			args = append(args, params[n-1])
			next++
		}
		return fmt.Sprintf("$%d", idxMap[n])
	})
	return sql, args, next
}
