package domain

// Snapshot is the persisted form of a module. Snapshots are always taken
// after realization, so the artifact matches the graph and a restored
// module starts fresh — loading a snapshot never triggers lowering unless
// the graph is mutated afterwards.
type Snapshot struct {
	Name        string   `json:"name"`
	Fingerprint string   `json:"fingerprint"`
	Graph       *Graph   `json:"graph"`
	Artifact    Artifact `json:"artifact"`
}

// ModuleDef is a named graph definition produced by the config loader.
type ModuleDef struct {
	Name  string
	Graph *Graph
}
