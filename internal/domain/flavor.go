package domain

// Flavor identifies the project-type convention that determines where
// version metadata lives. Detected once per invocation and immutable for
// the operation's duration.
type Flavor int

const (
	FlavorPlain Flavor = iota
	FlavorNode
	FlavorErlang
	FlavorAnsible
)

func (f Flavor) String() string {
	switch f {
	case FlavorPlain:
		return "plain"
	case FlavorNode:
		return "node"
	case FlavorErlang:
		return "erlang"
	case FlavorAnsible:
		return "ansible"
	default:
		return "unknown"
	}
}
