package metrics

import (
	"testing"

	"github.com/san-kum/pidlab/internal/control"
	"github.com/san-kum/pidlab/internal/sim"
)

func TestCompare_SingleStep(t *testing.T) {
	base := sim.SimulateBaseline(sim.Constant(22), 18, 30)

	tests := []struct {
		name    string
		gains   control.Gains
		wins    int
		verdict Verdict
	}{
		// sluggish PI loses on tracking error but is far smoother
		{"default tune", control.Gains{Kp: 2, Ki: 0.15}, 2, VerdictGreat},
		{"well damped", control.Gains{Kp: 6, Ki: 0.8, Kd: 4.5}, 3, VerdictPerfect},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pid := sim.SimulatePID(tt.gains, sim.Constant(22), 18, 30)
			sc := Compare(pid, base)

			if sc.Wins() != tt.wins {
				t.Errorf("wins = %d, want %d (%+v)", sc.Wins(), tt.wins, sc)
			}
			if sc.Verdict() != tt.verdict {
				t.Errorf("verdict = %q, want %q", sc.Verdict(), tt.verdict)
			}
			if !sc.SmoothWin || sc.SmoothGain <= 0 {
				t.Errorf("PID should be smoother than bang-bang: %+v", sc)
			}
		})
	}
}

func TestCompareSummaries(t *testing.T) {
	base := Summary{MeanAbsError: 2, MaxOvershoot: 1, TotalVariation: 100}

	tests := []struct {
		name    string
		pid     Summary
		verdict Verdict
	}{
		{"all worse", Summary{MeanAbsError: 3, MaxOvershoot: 2, TotalVariation: 200}, VerdictNeedsWork},
		{"ties are not wins", Summary{MeanAbsError: 2, MaxOvershoot: 1, TotalVariation: 100}, VerdictNeedsWork},
		{"one better", Summary{MeanAbsError: 1, MaxOvershoot: 2, TotalVariation: 200}, VerdictGoodStart},
		{"all better", Summary{MeanAbsError: 1, MaxOvershoot: 0, TotalVariation: 50}, VerdictPerfect},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompareSummaries(tt.pid, base).Verdict(); got != tt.verdict {
				t.Errorf("verdict = %q, want %q", got, tt.verdict)
			}
		})
	}

	sc := CompareSummaries(Summary{MeanAbsError: 1, MaxOvershoot: 0.25, TotalVariation: 25}, base)
	if sc.ErrorGain != 50 || sc.SmoothGain != 75 || sc.OvershootGain != 0.75 {
		t.Errorf("unexpected gains: %+v", sc)
	}
}

func TestCompareSummaries_ZeroBaseline(t *testing.T) {
	sc := CompareSummaries(Summary{MeanAbsError: 1}, Summary{})
	if sc.ErrorGain != 0 {
		t.Errorf("percentage against a zero baseline should be 0, got %v", sc.ErrorGain)
	}
}

func TestHints(t *testing.T) {
	tests := []struct {
		name  string
		gains control.Gains
		sum   Summary
		want  []string
	}{
		{"untuned", control.Gains{}, Summary{}, []string{"start with P: try Kp=3.0"}},
		{"slow P", control.Gains{Kp: 1}, Summary{}, []string{"increase P for faster response"}},
		{"offset", control.Gains{Kp: 3}, Summary{FinalError: 4}, []string{"add I (Ki~0.5) to eliminate steady-state error"}},
		{"overshoot and ringing", control.Gains{Kp: 6, Ki: 0.8}, Summary{MaxOvershoot: 3, Oscillations: 12}, []string{
			"add D (Kd~3.0) to reduce overshoot",
			"too many oscillations: increase D",
		}},
		{"tuned", control.Gains{Kp: 6, Ki: 0.8, Kd: 4.5}, Summary{FinalError: 0.1}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Hints(tt.gains, tt.sum)
			if len(got) != len(tt.want) {
				t.Fatalf("Hints() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("hint[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSolved(t *testing.T) {
	tuned := control.Gains{Kp: 6, Ki: 0.8, Kd: 4.5}
	settled := Summary{FinalError: 0.1, MaxOvershoot: 0.5}

	tests := []struct {
		name  string
		gains control.Gains
		sum   Summary
		want  bool
	}{
		{"all terms, settled", tuned, settled, true},
		{"hint pending", control.Gains{Kp: 1, Ki: 0.5, Kd: 1}, settled, false},
		{"no P", control.Gains{Ki: 0.8, Kd: 4.5}, settled, false},
		{"no I", control.Gains{Kp: 6, Kd: 4.5}, settled, false},
		{"no D", control.Gains{Kp: 6, Ki: 0.8}, settled, false},
		{"final error too large", tuned, Summary{FinalError: 0.7, MaxOvershoot: 0.5}, false},
		{"final error at limit", tuned, Summary{FinalError: 0.5}, false},
		{"overshoot too large", tuned, Summary{FinalError: 0.1, MaxOvershoot: 2.5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Solved(tt.gains, tt.sum); got != tt.want {
				t.Errorf("Solved(%+v, %+v) = %v, want %v", tt.gains, tt.sum, got, tt.want)
			}
		})
	}
}
