package experiment

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pidlab/internal/control"
	"github.com/san-kum/pidlab/internal/metrics"
	"github.com/san-kum/pidlab/internal/optim"
	"github.com/san-kum/pidlab/internal/scenario"
	"github.com/san-kum/pidlab/internal/sim"
)

var _ = Describe("Runner", func() {
	var (
		ctx    context.Context
		runner *Runner
		single scenario.Scenario
	)

	BeforeEach(func() {
		ctx = context.Background()
		runner = NewRunner(nil, 4)

		var err error
		single, err = scenario.Lookup("single-step")
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Run", func() {
		It("simulates one strategy on the scenario", func() {
			out, err := runner.Run(ctx, single, control.NewBaselineStrategy())
			Expect(err).NotTo(HaveOccurred())

			Expect(out.Name).To(Equal("baseline"))
			Expect(out.Result.Len()).To(Equal(600))
			Expect(out.Result.Error).To(BeNil())
			Expect(out.Summary).To(Equal(metrics.Compute(out.Result)))
		})
	})

	Describe("Compare", func() {
		It("scores a well damped PID as beating the baseline everywhere", func() {
			cmp, err := runner.Compare(ctx, control.Gains{Kp: 6, Ki: 0.8, Kd: 4.5}, single)
			Expect(err).NotTo(HaveOccurred())

			Expect(cmp.Scenario).To(Equal("single-step"))
			Expect(cmp.Scorecard.Wins()).To(Equal(3))
			Expect(cmp.Scorecard.Verdict()).To(Equal(metrics.VerdictPerfect))
		})

		It("matches running both controllers directly", func() {
			g := control.Gains{Kp: 2, Ki: 0.15}
			cmp, err := runner.Compare(ctx, g, single)
			Expect(err).NotTo(HaveOccurred())

			pid := sim.SimulatePID(g, single.Profile, single.Initial, single.Duration)
			base := sim.SimulateBaseline(single.Profile, single.Initial, single.Duration)

			Expect(cmp.PID.Result).To(Equal(pid))
			Expect(cmp.Baseline.Result).To(Equal(base))
			Expect(cmp.Scorecard).To(Equal(metrics.Compare(pid, base)))
		})

		It("gives identical results when repeated", func() {
			g := control.Gains{Kp: 3, Ki: 0.5, Kd: 1}
			first, err := runner.Compare(ctx, g, single)
			Expect(err).NotTo(HaveOccurred())
			second, err := runner.Compare(ctx, g, single)
			Expect(err).NotTo(HaveOccurred())

			Expect(second).To(Equal(first))
		})

		It("reports an empty run without failing", func() {
			cmp, err := runner.Compare(ctx, control.Gains{Kp: 1}, single.WithDuration(0))
			Expect(err).NotTo(HaveOccurred())
			Expect(cmp.PID.Result.Empty()).To(BeTrue())
			Expect(cmp.Baseline.Result.Empty()).To(BeTrue())
		})
	})

	Describe("Sweep", func() {
		var changing scenario.Scenario

		BeforeEach(func() {
			var err error
			changing, err = scenario.Lookup("changing")
			Expect(err).NotTo(HaveOccurred())
		})

		It("overlays the D values on the demo PI gains", func() {
			res, err := runner.Sweep(ctx, ModeD, control.Gains{Kp: 1, Ki: 0, Kd: 4.4}, changing)
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Demo).To(Equal("demo: Kp=6.0, Ki=0.8"))
			Expect(res.Members).To(HaveLen(4))

			labels := []string{}
			highlighted := []string{}
			for _, m := range res.Members {
				labels = append(labels, m.Label)
				Expect(m.Gains.Kp).To(Equal(6.0))
				Expect(m.Gains.Ki).To(Equal(0.8))
				if m.Highlighted {
					highlighted = append(highlighted, m.Label)
				}
			}
			Expect(labels).To(Equal([]string{"Kd=0", "Kd=2", "Kd=4.5", "Kd=7"}))
			Expect(highlighted).To(Equal([]string{"Kd=4.5"}))
		})

		It("shows derivative action cutting overshoot", func() {
			res, err := runner.Sweep(ctx, ModeD, control.Gains{}, changing)
			Expect(err).NotTo(HaveOccurred())

			noD := res.Members[0].Summary.MaxOvershoot
			withD := res.Members[2].Summary.MaxOvershoot
			Expect(withD).To(BeNumerically("<", noD))
		})

		It("keeps the user's Kd in the I sweep", func() {
			res, err := runner.Sweep(ctx, ModeI, control.Gains{Kp: 5, Ki: 0.3, Kd: 1.5}, changing)
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Demo).To(Equal("demo: Kp=3.0, Kd=1.5"))
			for _, m := range res.Members {
				Expect(m.Gains.Kp).To(Equal(3.0))
				Expect(m.Gains.Kd).To(Equal(1.5))
				Expect(m.Highlighted).To(Equal(m.Gains.Ki == 0.3))
			}
		})

		It("coaches an untuned controller", func() {
			res, err := runner.Sweep(ctx, ModeP, control.Gains{}, changing)
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Current.Gains).To(Equal(control.Gains{}))
			Expect(res.Hints).To(ContainElement("start with P: try Kp=3.0"))
			Expect(res.Solved).To(BeFalse())
		})

		It("marks a full PID that settles on target as solved", func() {
			res, err := runner.Sweep(ctx, ModeD, control.Gains{Kp: 6, Ki: 0.8, Kd: 4.5}, changing)
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Hints).To(BeEmpty())
			Expect(res.Current.Summary.FinalError).To(BeNumerically("<", 0.5))
			Expect(res.Solved).To(BeTrue())
		})

		It("rejects unknown modes", func() {
			_, err := runner.Sweep(ctx, Mode("X"), control.Gains{}, changing)
			Expect(err).To(MatchError(ErrUnknownMode))
		})
	})

	Describe("Tune", func() {
		It("finds the integral gain that removes the offset", func() {
			grid := optim.NewGridSearch([]float64{3}, []float64{0, 0.5}, []float64{0})
			constant, _ := scenario.Lookup("constant")

			best, cmp, err := runner.Tune(ctx, grid, constant, "final_error")
			Expect(err).NotTo(HaveOccurred())

			Expect(best.Gains).To(Equal(control.Gains{Kp: 3, Ki: 0.5}))
			Expect(cmp.PID.Gains).To(Equal(best.Gains))
		})

		It("rejects unknown metrics", func() {
			grid := optim.NewGridSearch([]float64{3}, []float64{0}, []float64{0})
			_, _, err := runner.Tune(ctx, grid, single, "energy")
			Expect(err).To(MatchError(ErrUnknownMetric))
		})
	})
})

var _ = Describe("ParseMode", func() {
	DescribeTable("accepts either case",
		func(in string, want Mode) {
			m, err := ParseMode(in)
			Expect(err).NotTo(HaveOccurred())
			Expect(m).To(Equal(want))
		},
		Entry("p", "p", ModeP),
		Entry("I", "I", ModeI),
		Entry("d", "d", ModeD),
	)

	It("rejects anything else", func() {
		_, err := ParseMode("pid")
		Expect(err).To(MatchError(ErrUnknownMode))
	})
})

var _ = Describe("Registry", func() {
	It("builds strategies by name", func() {
		r := NewRegistry()
		Expect(r.ListControllers()).To(Equal([]string{"baseline", "pid"}))

		s, err := r.GetController("pid", GainParams(control.Gains{Kp: 2, Kd: 1}))
		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(Equal(control.NewPIDStrategy(control.Gains{Kp: 2, Kd: 1})))

		s, err = r.GetController("baseline", nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Kind).To(Equal(control.KindBaseline))

		_, err = r.GetController("lqr", nil)
		Expect(err).To(MatchError(control.ErrUnknownKind))
	})
})
