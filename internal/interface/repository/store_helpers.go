package repository

import (
	"errors"
	"fmt"
	"time"

	"aeroops-service/internal/domain/repository"
	"aeroops-service/pkg/utils"

	"gorm.io/gorm"
)

// columnKind drives filter value coercion per whitelisted column.
type columnKind int

const (
	colString columnKind = iota
	colNumber
	colTime
)

// columnSpec maps a schema field name onto its physical column.
type columnSpec struct {
	column string
	kind   columnKind
}

// wrapStoreErr classifies a GORM error into the domain error vocabulary.
// Anything that is not a missing record is treated as the store being
// unavailable, so callers can degrade instead of crashing.
func wrapStoreErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrNotFound
	}
	return &repository.StorageUnavailableError{Cause: err}
}

// applyFilters adds WHERE clauses for each filter, checking fields and
// operators against the kind's column whitelist.
func applyFilters(tx *gorm.DB, columns map[string]columnSpec, filters []repository.Filter) (*gorm.DB, error) {
	for _, f := range filters {
		spec, ok := columns[f.Field]
		if !ok {
			return nil, &repository.QueryError{Field: f.Field, Reason: "field is not filterable"}
		}
		value, err := coerceFilterValue(spec, f.Value)
		if err != nil {
			return nil, &repository.QueryError{Field: f.Field, Reason: err.Error()}
		}
		switch f.Op {
		case repository.OpEq:
			tx = tx.Where(spec.column+" = ?", value)
		case repository.OpGte:
			tx = tx.Where(spec.column+" >= ?", value)
		case repository.OpLte:
			tx = tx.Where(spec.column+" <= ?", value)
		default:
			return nil, &repository.QueryError{Field: f.Field, Reason: fmt.Sprintf("unsupported operator %q", f.Op)}
		}
	}
	return tx, nil
}

// coerceFilterValue normalizes a filter value to the column's type, so JSON
// callers can pass strings and numbers interchangeably.
func coerceFilterValue(spec columnSpec, value any) (any, error) {
	switch spec.kind {
	case colTime:
		switch v := value.(type) {
		case time.Time:
			return v, nil
		case string:
			t, err := utils.ParseDateTime(v)
			if err != nil {
				return nil, err
			}
			return t, nil
		}
		return nil, fmt.Errorf("cannot use %T as a time value", value)
	case colNumber:
		switch v := value.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		case string:
			return utils.ParseNumber(v)
		}
		return nil, fmt.Errorf("cannot use %T as a numeric value", value)
	}
	return value, nil
}

// applySort adds the ORDER BY clause for a whitelisted field.
func applySort(tx *gorm.DB, columns map[string]columnSpec, sort *repository.Sort) (*gorm.DB, error) {
	if sort == nil {
		return tx, nil
	}
	spec, ok := columns[sort.Field]
	if !ok {
		return nil, &repository.QueryError{Field: sort.Field, Reason: "field is not sortable"}
	}
	order := spec.column
	if sort.Desc {
		order += " DESC"
	}
	return tx.Order(order), nil
}

type aggregateRow struct {
	GroupKey string
	Value    float64
}

// runAggregate executes a grouped metric query over the given table.
// timeColumn is the kind's canonical time field used for the window. Groups
// with no matching rows are simply absent from the result.
func runAggregate(tx *gorm.DB, table string, columns map[string]columnSpec, timeColumn string, req repository.AggregateRequest) (map[string]float64, error) {
	groupSpec, ok := columns[req.GroupBy]
	if !ok {
		return nil, &repository.QueryError{Field: req.GroupBy, Reason: "field cannot be grouped on"}
	}

	var expr string
	switch req.Metric {
	case repository.MetricCount:
		expr = "COUNT(*)"
	case repository.MetricSum, repository.MetricAvg:
		metricSpec, ok := columns[req.MetricField]
		if !ok || metricSpec.kind != colNumber {
			return nil, &repository.QueryError{Field: req.MetricField, Reason: "metric field must be numeric"}
		}
		if req.Metric == repository.MetricSum {
			expr = fmt.Sprintf("SUM(%s)", metricSpec.column)
		} else {
			expr = fmt.Sprintf("AVG(%s)", metricSpec.column)
		}
	default:
		return nil, &repository.QueryError{Field: string(req.Metric), Reason: "unsupported metric"}
	}

	query := tx.Table(table).
		Select(fmt.Sprintf("%s AS group_key, %s AS value", groupSpec.column, expr)).
		Group(groupSpec.column)
	if !req.Window.From.IsZero() {
		query = query.Where(timeColumn+" >= ?", req.Window.From)
	}
	if !req.Window.To.IsZero() {
		query = query.Where(timeColumn+" < ?", req.Window.To)
	}

	var rows []aggregateRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, wrapStoreErr(err)
	}

	result := make(map[string]float64, len(rows))
	for _, row := range rows {
		result[row.GroupKey] = row.Value
	}
	return result, nil
}
