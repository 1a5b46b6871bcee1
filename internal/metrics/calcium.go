package metrics

import (
	"github.com/IsabelB18/HumanSAN-Fabbri2017/internal/dynamo"
)

// State slots observed by the calcium metrics.
const (
	idxCai   = 17
	idxCajsr = 15
)

// DiastolicCa reports the minimum intracellular Ca2+ concentration in mM.
type DiastolicCa struct {
	min     float64
	samples int
}

func NewDiastolicCa() *DiastolicCa { return &DiastolicCa{} }

func (d *DiastolicCa) Name() string { return "diastolic_cai_mm" }

func (d *DiastolicCa) Observe(x dynamo.State, t float64) {
	if d.samples == 0 || x[idxCai] < d.min {
		d.min = x[idxCai]
	}
	d.samples++
}

func (d *DiastolicCa) Value() float64 { return d.min }

func (d *DiastolicCa) Reset() { *d = DiastolicCa{} }

// SRLoad reports the mean junctional SR Ca2+ content in mM.
type SRLoad struct {
	sum     float64
	samples int
}

func NewSRLoad() *SRLoad { return &SRLoad{} }

func (s *SRLoad) Name() string { return "mean_ca_jsr_mm" }

func (s *SRLoad) Observe(x dynamo.State, t float64) {
	s.sum += x[idxCajsr]
	s.samples++
}

func (s *SRLoad) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.sum / float64(s.samples)
}

func (s *SRLoad) Reset() { *s = SRLoad{} }
