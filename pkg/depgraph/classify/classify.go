// Package classify decides which proof-dependency nodes are "technical":
// infrastructural type-class machinery rather than user-meaningful content.
//
// The distinction drives the filtering engine: technical nodes are elided
// from display graphs and replaced by synthetic edges that preserve
// reachability between the substantive nodes around them.
//
// Classification is a policy, not a structural guarantee. The default policy
// encodes the naming convention of the Lean elaborator (auto-generated
// instance names like "instAddNat"), but front ends for other proof systems
// can supply their own [Classifier].
package classify

import (
	"regexp"

	"github.com/proofgraph/proofgraph/pkg/depgraph"
)

// Classifier reports whether a node is technical. Implementations must be
// pure: no side effects, total over any well-formed node, and O(1).
type Classifier interface {
	IsTechnical(n depgraph.Node) bool
}

// Func adapts an ordinary function to the Classifier interface.
type Func func(n depgraph.Node) bool

// IsTechnical calls f(n).
func (f Func) IsTechnical(n depgraph.Node) bool { return f(n) }

// instNamePattern matches auto-generated type-class-instance names: "inst"
// immediately followed by an uppercase letter, as produced by the Lean
// elaborator (e.g. "instAddNat", "instDecidableEqNat"). Applied to the
// unqualified short name only.
var instNamePattern = regexp.MustCompile(`^inst[A-Z]`)

// KindName is the default classification policy: a node is technical iff
// its kind is [depgraph.KindInstance], or its unqualified short name looks
// like an auto-generated instance name. The name heuristic catches instances
// recorded under a different nominal kind by older front ends.
type KindName struct{}

// IsTechnical implements Classifier.
func (KindName) IsTechnical(n depgraph.Node) bool {
	if n.Kind == depgraph.KindInstance {
		return true
	}
	return instNamePattern.MatchString(n.ShortName())
}

// Default returns the standard Lean-convention classifier.
func Default() Classifier { return KindName{} }
