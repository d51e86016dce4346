package domain

// Instruction applies one operation to already-computed registers.
type Instruction struct {
	Target InternedString     `json:"target"`
	Dst    int                `json:"dst"`
	Srcs   []int              `json:"srcs,omitempty"`
	Attrs  map[string]float64 `json:"attrs,omitempty"`
}

// Program is the executable representation lowered from a graph: a flat
// register machine. It is plain data, so a program survives serialization
// and can be rebound to a callable without lowering again.
type Program struct {
	Registers    int           `json:"registers"`
	Inputs       []int         `json:"inputs,omitempty"`
	Output       int           `json:"output"`
	Instructions []Instruction `json:"instructions,omitempty"`
}

// Artifact is the derived representation of a graph snapshot: the
// generated source text and the compiled program it documents.
type Artifact struct {
	Source  string  `json:"source"`
	Program Program `json:"program"`
}
