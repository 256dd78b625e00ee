package lexer

import (
	"github.com/cnf/structhash"
)

// fingerprintVersion is the structhash version of Spec.
const fingerprintVersion = 1

type specList struct {
	Specs []Spec
}

// Fingerprint returns a structural hash of a list of specs. Lists with equal
// fingerprints compile to equivalent lexers.
func Fingerprint(specs []Spec) (string, error) {
	return structhash.Hash(specList{Specs: specs}, fingerprintVersion)
}
