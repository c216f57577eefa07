package scoring

import "fmt"

// MetricInput is a student profile: raw metric values keyed by metric
// name. A valid input carries exactly the metrics the schema defines.
type MetricInput map[string]float64

// Clone returns an independent copy of the input.
func (m MetricInput) Clone() MetricInput {
	out := make(MetricInput, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// PredictionResult is the full outcome of evaluating one profile.
type PredictionResult struct {
	Probability     float64           `json:"probability"`
	Subscores       CategorySubscores `json:"subscores"`
	Tier            RiskTier          `json:"tier"`
	Recommendations []Recommendation  `json:"recommendations"`
	Factors         []FactorScore     `json:"factors"`
	TopFactors      []FactorScore     `json:"top_factors"`
}

// Config assembles an Engine. Zero-value fields fall back to the
// defaults noted on each field.
type Config struct {
	Schema             Schema          // DefaultSchema when nil
	Weights            CategoryWeights // DefaultWeights when zero
	Tiers              TierThresholds  // DefaultTierThresholds when zero
	HealthyThreshold   float64         // 0.70 when zero
	MaxRecommendations int             // 3 when zero
	TopFactorCount     int             // 3 when zero
}

// Engine evaluates student profiles. It holds no mutable state, so a
// single engine serves concurrent callers, and the same input always
// produces an identical result.
type Engine struct {
	schema             Schema
	weights            CategoryWeights
	tiers              TierThresholds
	healthyThreshold   float64
	maxRecommendations int
	topFactorCount     int
}

// NewEngine validates cfg and builds an Engine.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.Schema == nil {
		cfg.Schema = DefaultSchema()
	}
	if cfg.Weights == (CategoryWeights{}) {
		cfg.Weights = DefaultWeights()
	}
	if cfg.Tiers == (TierThresholds{}) {
		cfg.Tiers = DefaultTierThresholds()
	}
	if cfg.HealthyThreshold == 0 {
		cfg.HealthyThreshold = 0.70
	}
	if cfg.MaxRecommendations == 0 {
		cfg.MaxRecommendations = 3
	}
	if cfg.TopFactorCount == 0 {
		cfg.TopFactorCount = 3
	}

	if err := cfg.Schema.Validate(); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	if err := cfg.Weights.Validate(); err != nil {
		return nil, fmt.Errorf("invalid weights: %w", err)
	}
	if err := cfg.Tiers.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tier thresholds: %w", err)
	}
	if cfg.HealthyThreshold <= 0 || cfg.HealthyThreshold > 1 {
		return nil, fmt.Errorf("healthy threshold %.4f outside (0, 1]", cfg.HealthyThreshold)
	}
	if cfg.MaxRecommendations < 1 {
		return nil, fmt.Errorf("max recommendations must be at least 1, got %d", cfg.MaxRecommendations)
	}

	return &Engine{
		schema:             cfg.Schema,
		weights:            cfg.Weights,
		tiers:              cfg.Tiers,
		healthyThreshold:   cfg.HealthyThreshold,
		maxRecommendations: cfg.MaxRecommendations,
		topFactorCount:     cfg.TopFactorCount,
	}, nil
}

// Evaluate runs the full pipeline for one profile: normalize, score,
// classify, recommend. The input map is never mutated.
func (e *Engine) Evaluate(input MetricInput) (*PredictionResult, error) {
	normalized, err := Normalize(e.schema, input)
	if err != nil {
		return nil, err
	}

	subs, overall, factors := Score(e.schema, e.weights, input, normalized)

	return &PredictionResult{
		Probability:     overall,
		Subscores:       subs,
		Tier:            e.tiers.Classify(overall),
		Recommendations: Recommend(e.schema, e.weights, normalized, e.healthyThreshold, e.maxRecommendations),
		Factors:         factors,
		TopFactors:      TopFactors(factors, e.topFactorCount),
	}, nil
}

// Schema returns the metric catalog the engine scores against.
func (e *Engine) Schema() Schema { return e.schema }

// Weights returns the category weights in effect.
func (e *Engine) Weights() CategoryWeights { return e.weights }

// Tiers returns the tier thresholds in effect.
func (e *Engine) Tiers() TierThresholds { return e.tiers }

// HealthyThreshold returns the normalized level below which a factor
// draws a recommendation.
func (e *Engine) HealthyThreshold() float64 { return e.healthyThreshold }
