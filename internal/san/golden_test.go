package san_test

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/IsabelB18/HumanSAN-Fabbri2017/internal/params"
	"github.com/IsabelB18/HumanSAN-Fabbri2017/internal/san"
)

// goldenFile pins derived constants and initial-state derivatives for a grid
// of modulator doses. Values were produced by an independent evaluation of
// the published model equations.
type goldenFile struct {
	T     float64 `json:"t"`
	Cases []struct {
		ACh           float64   `json:"ach"`
		Noradrenaline float64   `json:"noradrenaline"`
		Derived       []float64 `json:"derived"`
		Dydt          []float64 `json:"dydt"`
	} `json:"cases"`
}

func loadGolden() goldenFile {
	data, err := os.ReadFile("testdata/golden.json")
	Expect(err).NotTo(HaveOccurred())
	var g goldenFile
	Expect(json.Unmarshal(data, &g)).To(Succeed())
	return g
}

// tol is a mixed relative/absolute tolerance: relative against the reference
// magnitude with an absolute floor for near-zero values.
func tol(want, rel float64) float64 {
	return math.Max(math.Abs(want)*rel, 1e-12)
}

var _ = Describe("golden regression", func() {
	var (
		golden goldenFile
		ps     *san.ParameterSet
	)

	BeforeEach(func() {
		golden = loadGolden()
		var err error
		ps, err = params.Default()
		Expect(err).NotTo(HaveOccurred())
	})

	It("covers the modulator dose grid", func() {
		Expect(golden.Cases).NotTo(BeEmpty())
	})

	It("reproduces the derived constants", func() {
		for _, c := range golden.Cases {
			cell, err := san.NewCell(ps, c.ACh, c.Noradrenaline)
			Expect(err).NotTo(HaveOccurred())

			derived := cell.Constants()[san.NumPrimary:]
			Expect(derived).To(HaveLen(len(c.Derived)))
			for i, want := range c.Derived {
				Expect(derived[i]).To(BeNumerically("~", want, tol(want, 1e-9)),
					fmt.Sprintf("derived constant %d at ach=%g nor=%g", i, c.ACh, c.Noradrenaline))
			}
		}
	})

	It("reproduces the initial-state derivatives", func() {
		for _, c := range golden.Cases {
			cell, err := san.NewCell(ps, c.ACh, c.Noradrenaline)
			Expect(err).NotTo(HaveOccurred())

			dydt, err := cell.Evaluate(golden.T, cell.InitialState())
			Expect(err).NotTo(HaveOccurred())
			Expect(dydt).To(HaveLen(len(c.Dydt)))
			for i, want := range c.Dydt {
				Expect(dydt[i]).To(BeNumerically("~", want, tol(want, 1e-6)),
					fmt.Sprintf("dydt[%d] at ach=%g nor=%g", i, c.ACh, c.Noradrenaline))
			}
		}
	})

	It("matches after an in-place modulator update", func() {
		c := golden.Cases[len(golden.Cases)-1]
		cell, err := san.NewCell(ps, 0, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(cell.Update(c.ACh, c.Noradrenaline)).To(Succeed())

		dydt, err := cell.Evaluate(golden.T, cell.InitialState())
		Expect(err).NotTo(HaveOccurred())
		for i, want := range c.Dydt {
			Expect(dydt[i]).To(BeNumerically("~", want, tol(want, 1e-6)),
				fmt.Sprintf("dydt[%d] after update", i))
		}
	})
})
