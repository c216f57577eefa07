package scoring

import "fmt"

// MissingMetricError reports a metric the schema requires but the
// input did not supply.
type MissingMetricError struct {
	Metric string
}

func (e *MissingMetricError) Error() string {
	return fmt.Sprintf("missing required metric: %s", e.Metric)
}

// UnknownMetricError reports an input key that matches no metric in
// the schema.
type UnknownMetricError struct {
	Metric string
}

func (e *UnknownMetricError) Error() string {
	return fmt.Sprintf("unknown metric: %s", e.Metric)
}
