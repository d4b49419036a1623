package models

// Sample is one stored measurement of a labelled workload. Seq starts at 1
// for every label.
type Sample struct {
	Label   string `json:"label" yaml:"label"`
	Seq     uint64 `json:"seq" yaml:"seq"`
	Seconds uint64 `json:"seconds" yaml:"seconds"`
	Nanos   uint32 `json:"nanos" yaml:"nanos"`
}

func (s Sample) Secs() uint64        { return s.Seconds }
func (s Sample) SubsecNanos() uint32 { return s.Nanos }
