package det_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/crnsim/internal/crn"
	"github.com/san-kum/crnsim/internal/det"
)

// integrate runs the network to target with step dt and returns the
// final state, since RunFor's trace stops strictly before the target.
func integrate(text string, target, dt float64) crn.State[float64] {
	net, err := crn.ParseDeterministic(text)
	Expect(err).NotTo(HaveOccurred())
	sim := det.New(net)
	sim.RunFor(target, dt)
	return net.Snapshot()
}

var _ = Describe("RK4 convergence", func() {
	It("reproduces exponential decay", func() {
		// A' = -A with A(0)=1: A(1) = e^-1.
		final := integrate("A = 1; A -> ;", 1.0, 0.001)
		Expect(final.Species[0]).To(BeNumerically("~", math.Exp(-1), 1e-3*math.Exp(-1)))
	})

	It("reproduces linear growth under a constant birth rate", func() {
		// A' = 1 with A(0)=0: A(10) = 10.
		final := integrate("A = 0; -> A;", 10.0, 0.001)
		Expect(final.Species[0]).To(BeNumerically("~", 10.0, 1e-3))
	})

	It("reproduces autocatalytic exponential growth", func() {
		// A' = A with A(0)=1: A(10) = e^10.
		final := integrate("A = 1; A -> 2A;", 10.0, 0.01)
		Expect(final.Species[0]).To(BeNumerically("~", math.Exp(10), 1e-3))
	})

	It("settles predator-prey dynamics without blowing up", func() {
		final := integrate("a = 100; b = 100; a + b -> 2b : 0.005; a -> 2a; b -> ;", 5.0, 0.001)
		for _, v := range final.Species {
			Expect(math.IsNaN(v)).To(BeFalse())
			Expect(math.IsInf(v, 0)).To(BeFalse())
		}
	})

	It("halves the error sixteen-fold when the step is halved", func() {
		// Fourth-order convergence on exponential decay.
		exact := math.Exp(-1)
		coarse := math.Abs(integrate("A = 1; A -> ;", 1.0, 0.02).Species[0] - exact)
		fine := math.Abs(integrate("A = 1; A -> ;", 1.0, 0.01).Species[0] - exact)
		Expect(fine).To(BeNumerically("<", coarse/10))
	})
})
