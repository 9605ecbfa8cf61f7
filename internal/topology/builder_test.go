package topology_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/softsim/internal/topology"
)

func unique(pairs []topology.Pair) bool {
	for i := range pairs {
		for j := i + 1; j < len(pairs); j++ {
			a, b := pairs[i], pairs[j]
			if (a.A == b.A && a.B == b.B) || (a.A == b.B && a.B == b.A) {
				return false
			}
		}
	}
	return true
}

var _ = Describe("SpringSet", func() {
	It("drops duplicates in either order", func() {
		s := topology.NewSpringSet()
		Expect(s.Add(1, 2)).To(BeTrue())
		Expect(s.Add(2, 1)).To(BeFalse())
		Expect(s.Add(1, 2)).To(BeFalse())
		Expect(s.Len()).To(Equal(1))
		Expect(s.Has(2, 1)).To(BeTrue())
		Expect(s.Pairs()).To(Equal([]topology.Pair{{A: 1, B: 2}}))
	})

	It("ignores self pairs", func() {
		s := topology.NewSpringSet()
		Expect(s.Add(3, 3)).To(BeFalse())
		Expect(s.Has(3, 3)).To(BeFalse())
		Expect(s.Len()).To(BeZero())
	})
})

var _ = Describe("Cloth", func() {
	It("skips the collapsed edge of a degenerate triangle", func() {
		st, bt, err := topology.Cloth([]int{0, 0, 1}, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(st).To(Equal([]topology.Pair{{A: 0, B: 1}}))
		Expect(bt).To(BeEmpty())
	})

	It("builds three structural and no bending springs for one triangle", func() {
		st, bt, err := topology.Cloth([]int{0, 1, 2}, 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(st).To(HaveLen(3))
		Expect(bt).To(BeEmpty())
	})

	It("adds one bending spring across a shared edge", func() {
		st, bt, err := topology.Cloth([]int{0, 1, 2, 2, 1, 3}, 4)
		Expect(err).NotTo(HaveOccurred())
		Expect(st).To(HaveLen(5))
		Expect(bt).To(HaveLen(1))

		b := bt[0]
		Expect([]int{b.A, b.B}).To(ConsistOf(0, 3))
	})

	It("keeps every pair unique on a grid", func() {
		// 3x3 vertex grid, 8 triangles
		tris := []int{
			0, 1, 3, 1, 4, 3,
			1, 2, 4, 2, 5, 4,
			3, 4, 6, 4, 7, 6,
			4, 5, 7, 5, 8, 7,
		}
		st, bt, err := topology.Cloth(tris, 9)
		Expect(err).NotTo(HaveOccurred())
		Expect(st).To(HaveLen(16))
		Expect(unique(st)).To(BeTrue())
		Expect(unique(bt)).To(BeTrue())
		Expect(unique(append(st, bt...))).To(BeTrue())
	})

	It("rejects out of range indices", func() {
		_, _, err := topology.Cloth([]int{0, 1, 5}, 3)
		Expect(err).To(MatchError(topology.ErrIndexOutOfRange))
	})

	It("rejects a partial triangle", func() {
		_, _, err := topology.Cloth([]int{0, 1}, 3)
		Expect(err).To(MatchError(topology.ErrMalformed))
	})
})

var _ = Describe("Volume", func() {
	It("adds six springs per tetrahedron", func() {
		pairs, err := topology.Volume([][4]int{{0, 1, 2, 3}}, 4)
		Expect(err).NotTo(HaveOccurred())
		Expect(pairs).To(HaveLen(6))
	})

	It("shares the common face of two tetrahedra", func() {
		pairs, err := topology.Volume([][4]int{{0, 1, 2, 3}, {1, 2, 3, 4}}, 5)
		Expect(err).NotTo(HaveOccurred())
		Expect(pairs).To(HaveLen(9))
		Expect(unique(pairs)).To(BeTrue())
	})
})

var _ = Describe("Chain", func() {
	It("links consecutive nodes", func() {
		Expect(topology.Chain(4)).To(Equal([]topology.Pair{{A: 0, B: 1}, {A: 1, B: 2}, {A: 2, B: 3}}))
		Expect(topology.Chain(1)).To(BeEmpty())
	})
})
