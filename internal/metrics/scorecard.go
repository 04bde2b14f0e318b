package metrics

import "github.com/san-kum/pidlab/internal/sim"

type Verdict string

const (
	VerdictPerfect   Verdict = "perfect"
	VerdictGreat     Verdict = "great"
	VerdictGoodStart Verdict = "good start"
	VerdictNeedsWork Verdict = "needs work"
)

func (v Verdict) Message() string {
	switch v {
	case VerdictPerfect:
		return "beat the baseline on all metrics"
	case VerdictGreat:
		return "2/3 metrics better, fine-tune for perfection"
	case VerdictGoodStart:
		return "1/3 metrics improved, keep adjusting"
	default:
		return "try: increase P for speed, add I for accuracy, add D for smoothness"
	}
}

// Scorecard compares a PID run against the baseline on tracking error,
// overshoot and control smoothness. Lower is better for all three.
type Scorecard struct {
	PID      Summary `json:"pid"`
	Baseline Summary `json:"baseline"`

	ErrorWin     bool `json:"error_win"`
	OvershootWin bool `json:"overshoot_win"`
	SmoothWin    bool `json:"smooth_win"`

	// Improvements relative to the baseline. ErrorGain and SmoothGain are
	// percentages, OvershootGain is absolute.
	ErrorGain     float64 `json:"error_gain_pct"`
	OvershootGain float64 `json:"overshoot_gain"`
	SmoothGain    float64 `json:"smooth_gain_pct"`
}

func Compare(pid, baseline *sim.Result) Scorecard {
	return CompareSummaries(Compute(pid), Compute(baseline))
}

func CompareSummaries(pid, base Summary) Scorecard {
	return Scorecard{
		PID:           pid,
		Baseline:      base,
		ErrorWin:      pid.MeanAbsError < base.MeanAbsError,
		OvershootWin:  pid.MaxOvershoot < base.MaxOvershoot,
		SmoothWin:     pid.TotalVariation < base.TotalVariation,
		ErrorGain:     percentGain(base.MeanAbsError, pid.MeanAbsError),
		OvershootGain: base.MaxOvershoot - pid.MaxOvershoot,
		SmoothGain:    percentGain(base.TotalVariation, pid.TotalVariation),
	}
}

func (s Scorecard) Wins() int {
	n := 0
	for _, w := range []bool{s.ErrorWin, s.OvershootWin, s.SmoothWin} {
		if w {
			n++
		}
	}
	return n
}

func (s Scorecard) Verdict() Verdict {
	switch s.Wins() {
	case 3:
		return VerdictPerfect
	case 2:
		return VerdictGreat
	case 1:
		return VerdictGoodStart
	}
	return VerdictNeedsWork
}

func percentGain(base, v float64) float64 {
	if base == 0 {
		return 0
	}
	return (base - v) / base * 100
}
