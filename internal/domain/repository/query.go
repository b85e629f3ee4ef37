package repository

import (
	"time"
)

// FilterOp is a simple equality/range predicate operator.
type FilterOp string

const (
	OpEq  FilterOp = "eq"
	OpGte FilterOp = "gte"
	OpLte FilterOp = "lte"
)

// Filter restricts a query to records whose field satisfies the predicate.
// Fields are schema field names, not physical columns.
type Filter struct {
	Field string   `json:"field"`
	Op    FilterOp `json:"op"`
	Value any      `json:"value"`
}

// Sort orders query results by one field.
type Sort struct {
	Field string `json:"field"`
	Desc  bool   `json:"desc"`
}

// Metric selects the computation applied per aggregate group.
type Metric string

const (
	MetricCount Metric = "count"
	MetricSum   Metric = "sum"
	MetricAvg   Metric = "avg"
)

// TimeWindow bounds an aggregate to [From, To) on the kind's canonical time
// field. A zero bound is unbounded on that side.
type TimeWindow struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// AggregateRequest groups records by one field and computes a metric per
// group. MetricField is ignored for count.
type AggregateRequest struct {
	GroupBy     string     `json:"group_by"`
	Metric      Metric     `json:"metric"`
	MetricField string     `json:"metric_field,omitempty"`
	Window      TimeWindow `json:"window"`
}
