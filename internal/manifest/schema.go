package manifest

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schema.cue
var schemaSource []byte

// checkSchema encodes the decoded manifest as a CUE value and unifies it
// with #Manifest. Closed definitions reject fields the schema doesn't know.
func checkSchema(m *Manifest) error {
	ctx := cuecontext.New()
	root := ctx.CompileBytes(schemaSource, cue.Filename("schema.cue"))
	if err := root.Err(); err != nil {
		return fmt.Errorf("compiling manifest schema: %w", err)
	}
	def := root.LookupPath(cue.ParsePath("#Manifest"))
	if !def.Exists() {
		return fmt.Errorf("manifest schema has no #Manifest definition")
	}

	v := ctx.Encode(m)
	if err := v.Err(); err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}

	if err := def.Unify(v).Validate(cue.Concrete(true)); err != nil {
		return &ValidationError{Message: fmt.Sprintf("schema: %v", err)}
	}
	return nil
}
