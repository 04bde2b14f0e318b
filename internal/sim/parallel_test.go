package sim

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/san-kum/pidlab/internal/control"
)

func TestRunAll_MatchesSequential(t *testing.T) {
	profile := step(20, 22, 25)
	runs := []Run{
		{Name: "pid", Strategy: control.NewPIDStrategy(control.Gains{Kp: 6, Ki: 0.8}), Profile: profile, Initial: 18, Duration: 40},
		{Name: "baseline", Strategy: control.NewBaselineStrategy(), Profile: profile, Initial: 18, Duration: 40},
		{Name: "pid-d", Strategy: control.NewPIDStrategy(control.Gains{Kp: 6, Ki: 0.8, Kd: 4.5}), Profile: profile, Initial: 18, Duration: 40},
	}

	results, err := RunAll(context.Background(), runs, 2)
	if err != nil {
		t.Fatalf("run all failed: %v", err)
	}
	if len(results) != len(runs) {
		t.Fatalf("expected %d results, got %d", len(runs), len(results))
	}

	for i, r := range runs {
		want, _ := Simulate(r.Strategy, r.Profile, r.Initial, r.Duration)
		if !reflect.DeepEqual(results[i], want) {
			t.Errorf("run %s differs from a sequential run", r.Name)
		}
	}
}

func TestRunAll_PropagatesError(t *testing.T) {
	runs := []Run{
		{Name: "ok", Strategy: control.NewBaselineStrategy(), Profile: Constant(22), Initial: 18, Duration: 1},
		{Name: "bad", Strategy: control.NewBaselineStrategy(), Initial: 18, Duration: 1},
	}

	_, err := RunAll(context.Background(), runs, 0)
	if !errors.Is(err, ErrNilProfile) {
		t.Errorf("expected ErrNilProfile, got %v", err)
	}
}

func TestRunAll_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runs := []Run{{Name: "pid", Strategy: control.NewBaselineStrategy(), Profile: Constant(22), Duration: 1}}
	if _, err := RunAll(ctx, runs, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
