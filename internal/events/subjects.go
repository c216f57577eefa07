package events

const (
	SubjectStats = "pulse.stats"

	StreamName   = "COMPASS_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

func SubjectPredictionRecorded(id string) string  { return "pulse.prediction." + id + ".recorded" }
func SubjectPredictionSimulated(id string) string { return "pulse.prediction." + id + ".simulated" }
