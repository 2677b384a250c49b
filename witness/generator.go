package witness

// A WitnessGenerator fills wires that are not circuit inputs. It is run once, after every
// wire returned by Dependencies has been set, and must compute its outputs as a pure function
// of those wires.
type WitnessGenerator interface {
	Id() string
	Dependencies() []Wire
	RunOnce(witness *PartialWitness) (*GeneratedValues, error)
}
