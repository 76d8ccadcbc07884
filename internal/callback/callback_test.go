package callback_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dynstep/internal/callback"
	"github.com/san-kum/dynstep/internal/dynamo"
)

var _ = Describe("Callback", func() {
	var in *dynamo.Integrator

	BeforeEach(func() {
		in = newIntegrator(1.0, 2.0)
	})

	It("rejects a nil condition or effect", func() {
		_, err := callback.New(nil, &counter{})
		Expect(err).To(MatchError(dynamo.ErrConfiguration))

		_, err = callback.New(callback.Always, nil)
		Expect(err).To(MatchError(dynamo.ErrConfiguration))
	})

	It("runs the effect only when the condition holds", func() {
		c := &counter{}
		even := callback.ConditionFunc(func(iter int, _ *dynamo.Integrator) bool { return iter%2 == 0 })
		cb, err := callback.New(even, c)
		Expect(err).NotTo(HaveOccurred())

		for i := 1; i <= 10; i++ {
			cb.Invoke(i, in)
		}
		Expect(c.n).To(Equal(5))
	})

	It("returns the integrator it was given whether or not the effect ran", func() {
		yes, _ := callback.New(callback.Always, &counter{})
		no, _ := callback.New(callback.Never, &counter{})

		Expect(yes.Invoke(1, in)).To(BeIdenticalTo(in))
		Expect(no.Invoke(1, in)).To(BeIdenticalTo(in))
	})

	It("lets effects mutate the state", func() {
		double := callback.EffectFunc(func(_ int, in *dynamo.Integrator) {
			for i := range in.U {
				in.U[i] *= 2
			}
		})
		cb, _ := callback.New(callback.Always, double)
		cb.Invoke(1, in)
		Expect(in.U).To(Equal(dynamo.State{2.0, 4.0}))
	})

	It("exposes its parts", func() {
		c := &counter{}
		cb, _ := callback.New(callback.Never, c)
		Expect(cb.Condition()).NotTo(BeNil())
		Expect(cb.Effect()).To(BeIdenticalTo(c))
	})
})

var _ = Describe("Group", func() {
	var in *dynamo.Integrator

	BeforeEach(func() {
		in = newIntegrator(1.0, 2.0)
	})

	It("leaves the integrator unchanged when no condition holds", func() {
		mutate := callback.EffectFunc(func(_ int, in *dynamo.Integrator) {
			in.U[0] = -99
			in.T = 42
		})
		a, _ := callback.New(callback.Never, mutate)
		b, _ := callback.New(callback.Never, mutate)
		g := callback.NewGroup(a, callback.NewGroup(b))

		before := deepCopy(in)
		Expect(g.Invoke(3, in)).To(BeIdenticalTo(in))
		Expect(*in).To(Equal(before))
	})

	It("applies the single always-true member exactly once per invocation", func() {
		hit, miss := &counter{}, &counter{}
		a, _ := callback.New(callback.Never, miss)
		b, _ := callback.New(callback.Always, hit)
		c, _ := callback.New(callback.Never, miss)
		g := callback.NewGroup(a, b, c)

		for i := 1; i <= 7; i++ {
			g.Invoke(i, in)
			Expect(hit.n).To(Equal(i))
		}
		Expect(miss.n).To(Equal(0))
	})

	It("invokes members in list order", func() {
		var order []string
		record := func(name string) callback.Handler {
			return callback.HandlerFunc(func(int, *dynamo.Integrator) { order = append(order, name) })
		}
		g := callback.NewGroup(record("a"), callback.NewGroup(record("b"), record("c")), record("d"))

		g.Invoke(1, in)
		Expect(order).To(Equal([]string{"a", "b", "c", "d"}))
	})

	It("threads the same integrator through every member", func() {
		add := func(v float64) callback.Handler {
			cb, _ := callback.New(callback.Always, callback.EffectFunc(func(_ int, in *dynamo.Integrator) { in.U[0] += v }))
			return cb
		}
		g := callback.NewGroup(add(1), add(10), callback.NewGroup(add(100)))
		g.Invoke(1, in)
		Expect(in.U[0]).To(Equal(112.0))
	})

	It("offers read-only indexed access and skips nil members", func() {
		a, _ := callback.New(callback.Always, &counter{})
		inner := callback.NewGroup()
		g := callback.NewGroup(a, nil, inner)

		Expect(g.Len()).To(Equal(2))
		Expect(g.At(0)).To(BeIdenticalTo(a))
		Expect(g.At(1)).To(BeIdenticalTo(inner))
	})

	It("is a no-op when empty", func() {
		before := deepCopy(in)
		Expect(callback.NewGroup().Invoke(1, in)).To(BeIdenticalTo(in))
		Expect(*in).To(Equal(before))
	})
})

var _ = Describe("Effects", func() {
	It("clamps a component in place", func() {
		in := newIntegrator(5.0, -5.0)
		hi, err := callback.NewClamp(0, -1, 1)
		Expect(err).NotTo(HaveOccurred())
		lo, _ := callback.NewClamp(1, -1, 1)
		out, _ := callback.NewClamp(7, -1, 1)

		hi.Apply(1, in)
		lo.Apply(1, in)
		out.Apply(1, in)
		Expect(in.U).To(Equal(dynamo.State{1, -1}))
	})

	It("rejects invalid clamp bounds", func() {
		_, err := callback.NewClamp(0, 1, -1)
		Expect(err).To(MatchError(dynamo.ErrConfiguration))
		_, err = callback.NewClamp(-1, 0, 1)
		Expect(err).To(MatchError(dynamo.ErrConfiguration))
	})

	It("snapshots independent copies of the state", func() {
		in := newIntegrator(1.0)
		s := callback.NewSnapshot()
		in.T = 0.3
		s.Apply(3, in)
		in.U[0] = 7

		Expect(s.Len()).To(Equal(1))
		iter, t, st := s.At(0)
		Expect(iter).To(Equal(3))
		Expect(t).To(Equal(0.3))
		Expect(st).To(Equal(dynamo.State{1.0}))
	})
})
