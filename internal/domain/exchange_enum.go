package domain

// SourceID identifies a quote provider in the source registry.
type SourceID string

const (
	Bit2me       SourceID = "bit2me"
	Bit2meNew    SourceID = "bit2me_new"
	Ripio        SourceID = "ripio"
	SatoshiTango SourceID = "satoshitango"
	Buenbit      SourceID = "buenbit"
	Qubit        SourceID = "qubit"
)

func (id SourceID) String() string {
	return string(id)
}
