package recommend

// Weights distribute the user's priorities across the four scoring
// axes. They are normalized to sum to 1 before use.
type Weights struct {
	Fit      float64 `json:"fit"`
	Prestige float64 `json:"prestige"`
	Speed    float64 `json:"speed"`
	Accept   float64 `json:"accept"`
}

// Preset names accepted by the API. "manual" means the caller supplies
// raw weights.
const (
	PresetBalanced      = "balanced"
	PresetMaxPrestige   = "max_prestige"
	PresetFastestReview = "fastest_review"
	PresetMinimizeCost  = "minimize_cost"
	PresetBestFitOnly   = "best_fit_only"
	PresetManual        = "manual"
)

// PresetWeights returns the weight set for a named preset. Unknown
// names fall back to balanced.
func PresetWeights(preset string) Weights {
	switch preset {
	case PresetMaxPrestige:
		return Weights{Fit: 0.2, Prestige: 0.6, Speed: 0.1, Accept: 0.1}
	case PresetFastestReview:
		return Weights{Fit: 0.2, Prestige: 0.1, Speed: 0.6, Accept: 0.1}
	case PresetMinimizeCost:
		return Weights{Fit: 0.3, Prestige: 0.1, Speed: 0.1, Accept: 0.5}
	case PresetBestFitOnly:
		return Weights{Fit: 1, Prestige: 0, Speed: 0, Accept: 0}
	default:
		return Weights{Fit: 0.4, Prestige: 0.3, Speed: 0.2, Accept: 0.1}
	}
}

// Normalized scales the weights to sum to 1. An all-zero set collapses
// to fit-only, matching the original sidebar behavior.
func (w Weights) Normalized() Weights {
	total := w.Fit + w.Prestige + w.Speed + w.Accept
	if total == 0 {
		return Weights{Fit: 1}
	}
	return Weights{
		Fit:      w.Fit / total,
		Prestige: w.Prestige / total,
		Speed:    w.Speed / total,
		Accept:   w.Accept / total,
	}
}
