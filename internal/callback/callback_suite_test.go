package callback_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dynstep/internal/dynamo"
)

func TestCallback(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Callback Suite")
}

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type counter struct {
	n int
}

func (c *counter) Apply(int, *dynamo.Integrator) { c.n++ }

func newIntegrator(u0 ...float64) *dynamo.Integrator {
	grid, err := dynamo.Linspace(0, 1, 11)
	Expect(err).NotTo(HaveOccurred())
	in, err := dynamo.NewIntegrator(dynamo.State(u0), grid)
	Expect(err).NotTo(HaveOccurred())
	return in
}

// deepCopy copies every field and buffer of in.
func deepCopy(in *dynamo.Integrator) dynamo.Integrator {
	c := *in
	c.U = in.U.Clone()
	c.K1, c.K2, c.K3, c.K4 = in.K1.Clone(), in.K2.Clone(), in.K3.Clone(), in.K4.Clone()
	c.Tmp = in.Tmp.Clone()
	return c
}
