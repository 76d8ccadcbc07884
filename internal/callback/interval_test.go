package callback_test

import (
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dynstep/internal/callback"
	"github.com/san-kum/dynstep/internal/dynamo"
)

func firings(c callback.Condition, from, to int) []int {
	var hits []int
	for i := from; i <= to; i++ {
		if c.Check(i, nil) {
			hits = append(hits, i)
		}
	}
	return hits
}

var _ = Describe("IterationInterval", func() {
	It("fires on every multiple of the period in loop mode", func() {
		c, err := callback.NewIterationInterval(3, true)
		Expect(err).NotTo(HaveOccurred())
		Expect(firings(c, 1, 9)).To(Equal([]int{3, 6, 9}))
	})

	It("keeps firing forever in loop mode", func() {
		c, _ := callback.Every(3)
		firings(c, 1, 9)
		Expect(firings(c, 1, 9)).To(Equal([]int{3, 6, 9}))
	})

	It("fires exactly once in one-shot mode", func() {
		c, err := callback.NewIterationInterval(3, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Fired()).To(BeFalse())
		Expect(firings(c, 1, 9)).To(Equal([]int{3}))
		Expect(c.Fired()).To(BeTrue())
	})

	It("stays latched for the lifetime of the instance", func() {
		c, _ := callback.Once(3)
		Expect(firings(c, 1, 9)).To(Equal([]int{3}))
		Expect(firings(c, 1, 100)).To(BeEmpty())
	})

	It("stays latched inside nested groups reused across runs", func() {
		c, _ := callback.Once(2)
		hits := &counter{}
		cb, _ := callback.New(c, hits)
		root := callback.NewGroup(callback.NewGroup(cb))

		for run := 0; run < 3; run++ {
			in := newIntegrator(0)
			for i := 1; i <= 10; i++ {
				root.Invoke(i, in)
			}
		}
		Expect(hits.n).To(Equal(1))
	})

	DescribeTable("rejects non-positive periods",
		func(period int) {
			c, err := callback.NewIterationInterval(period, true)
			Expect(c).To(BeNil())
			Expect(errors.Is(err, dynamo.ErrConfiguration)).To(BeTrue())

			var ce *dynamo.ConfigError
			Expect(errors.As(err, &ce)).To(BeTrue())
			Expect(ce.Field).To(Equal("period"))
		},
		Entry("zero", 0),
		Entry("negative", -3),
	)

	It("exposes its configuration", func() {
		c, _ := callback.NewIterationInterval(4, false)
		Expect(c.Period()).To(Equal(4))
		Expect(c.Loop()).To(BeFalse())
	})
})

var _ = Describe("WallClockInterval", func() {
	var clock *fakeClock

	BeforeEach(func() {
		clock = newFakeClock()
	})

	It("does not fire before the threshold has elapsed", func() {
		w, err := callback.NewWallClockInterval(5, "s", callback.WithClock(clock))
		Expect(err).NotTo(HaveOccurred())

		Expect(w.Check(1, nil)).To(BeFalse())
		clock.Advance(5 * time.Second)
		Expect(w.Check(2, nil)).To(BeFalse())
	})

	It("fires once the threshold is exceeded and resets its timestamp", func() {
		w, _ := callback.NewWallClockInterval(5, "seconds", callback.WithClock(clock))

		clock.Advance(6 * time.Second)
		Expect(w.Check(1, nil)).To(BeTrue())
		Expect(w.Check(2, nil)).To(BeFalse())

		clock.Advance(4 * time.Second)
		Expect(w.Check(3, nil)).To(BeFalse())
		clock.Advance(2 * time.Second)
		Expect(w.Check(4, nil)).To(BeTrue())
	})

	It("ignores the iteration count", func() {
		w, _ := callback.NewWallClockInterval(1, "m", callback.WithClock(clock))
		Expect(firings(w, 1, 1000)).To(BeEmpty())
		clock.Advance(61 * time.Second)
		Expect(firings(w, 1, 1000)).To(Equal([]int{1}))
	})

	DescribeTable("converts units",
		func(value float64, unit string, want time.Duration) {
			w, err := callback.NewWallClockInterval(value, unit, callback.WithClock(clock))
			Expect(err).NotTo(HaveOccurred())
			Expect(w.Threshold()).To(Equal(want))
		},
		Entry("seconds", 5.0, "s", 5*time.Second),
		Entry("fractional seconds", 0.5, "sec", 500*time.Millisecond),
		Entry("minutes", 2.0, "minutes", 2*time.Minute),
		Entry("hours", 1.0, "H", time.Hour),
	)

	DescribeTable("rejects invalid configuration",
		func(value float64, unit string) {
			w, err := callback.NewWallClockInterval(value, unit, callback.WithClock(clock))
			Expect(w).To(BeNil())
			Expect(err).To(MatchError(dynamo.ErrConfiguration))
		},
		Entry("days", 5.0, "days"),
		Entry("milliseconds", 5.0, "ms"),
		Entry("empty unit", 5.0, ""),
		Entry("zero duration", 0.0, "s"),
		Entry("negative duration", -1.0, "h"),
		Entry("overflowing duration", 3e6, "h"),
	)

	It("defaults to the system clock", func() {
		w, err := callback.NewWallClockInterval(1, "h")
		Expect(err).NotTo(HaveOccurred())
		Expect(w.Check(1, nil)).To(BeFalse())
	})
})
