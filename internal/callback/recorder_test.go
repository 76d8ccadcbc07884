package callback_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dynstep/internal/callback"
	"github.com/san-kum/dynstep/internal/dynamo"
)

func iteration(iter int, _ *dynamo.Integrator) float64 { return float64(iter) }

func first(_ int, in *dynamo.Integrator) float64 { return in.U[0] }

var _ = Describe("Recorder", func() {
	It("records the iteration index in call order", func() {
		rec, err := callback.NewRecorder(callback.Observable{Name: "iter", Extract: iteration})
		Expect(err).NotTo(HaveOccurred())

		in := newIntegrator(0)
		for i := 1; i <= 100; i++ {
			rec.Apply(i, in)
		}

		want := make([]float64, 100)
		for i := range want {
			want[i] = float64(i + 1)
		}
		got, err := rec.Series("iter")
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(want))
		Expect(rec.Len()).To(Equal(100))
	})

	It("samples every observable on each call", func() {
		rec, _ := callback.NewRecorder(
			callback.Observable{Name: "iter", Extract: iteration},
			callback.Observable{Name: "x", Extract: first},
		)
		in := newIntegrator(10)
		for i := 1; i <= 3; i++ {
			in.U[0] = float64(i * 10)
			rec.Apply(i, in)
		}

		Expect(rec.Names()).To(Equal([]string{"iter", "x"}))
		Expect(rec.Snapshot()).To(Equal(map[string][]float64{
			"iter": {1, 2, 3},
			"x":    {10, 20, 30},
		}))

		last, ok, err := rec.Last("x")
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(last).To(Equal(30.0))
	})

	It("fails lookups of unregistered names", func() {
		rec, _ := callback.NewRecorder(callback.Observable{Name: "x", Extract: first})

		_, err := rec.Series("y")
		Expect(err).To(MatchError(callback.ErrUnknownObservable))
		Expect(err.Error()).To(ContainSubstring(`"y"`))

		_, _, err = rec.Last("y")
		Expect(err).To(MatchError(callback.ErrUnknownObservable))
	})

	It("hands out copies", func() {
		rec, _ := callback.NewRecorder(callback.Observable{Name: "x", Extract: first})
		rec.Apply(1, newIntegrator(1))

		s, _ := rec.Series("x")
		s[0] = 99
		again, _ := rec.Series("x")
		Expect(again).To(Equal([]float64{1}))

		names := rec.Names()
		names[0] = "z"
		Expect(rec.Names()).To(Equal([]string{"x"}))
	})

	It("reports no last sample before the first call", func() {
		rec, _ := callback.NewRecorder(callback.Observable{Name: "x", Extract: first})
		_, ok, err := rec.Last("x")
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
	})

	DescribeTable("rejects invalid observables",
		func(obs []callback.Observable) {
			rec, err := callback.NewRecorder(obs...)
			Expect(rec).To(BeNil())
			Expect(err).To(MatchError(dynamo.ErrConfiguration))
		},
		Entry("none", []callback.Observable{}),
		Entry("empty name", []callback.Observable{{Name: "", Extract: first}}),
		Entry("nil extractor", []callback.Observable{{Name: "x"}}),
		Entry("duplicate", []callback.Observable{{Name: "x", Extract: first}, {Name: "x", Extract: iteration}}),
	)

	It("builds a periodic callback", func() {
		rec, _ := callback.NewRecorder(callback.Observable{Name: "iter", Extract: iteration})
		cb, err := rec.Every(25)
		Expect(err).NotTo(HaveOccurred())

		in := newIntegrator(0)
		for i := 1; i <= 100; i++ {
			Expect(cb.Invoke(i, in)).To(BeIdenticalTo(in))
		}
		Expect(rec.Series("iter")).To(Equal([]float64{25, 50, 75, 100}))

		_, err = rec.Every(0)
		Expect(err).To(MatchError(dynamo.ErrConfiguration))
	})

	It("builds a callback guarded by any condition", func() {
		rec, _ := callback.NewRecorder(callback.Observable{Name: "iter", Extract: iteration})
		once, _ := callback.Once(4)
		cb, err := rec.Callback(once)
		Expect(err).NotTo(HaveOccurred())

		in := newIntegrator(0)
		for i := 1; i <= 20; i++ {
			cb.Invoke(i, in)
		}
		Expect(rec.Series("iter")).To(Equal([]float64{4}))
	})
})
