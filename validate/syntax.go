package validate

import (
	"os"

	"github.com/dop251/goja/parser"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/qemu-wasm/buildcheck"
	"github.com/qemu-wasm/buildcheck/errors"
)

// Syntax parses every glue-script artifact with a real ECMAScript
// parser and discards the AST. Parsing never executes artifact code;
// a diagnostic from the parser fails the check for that artifact.
// Emscripten output is large but parses in one pass, so the whole
// target is checked per run.
func Syntax(target *buildcheck.Target) error {
	var err error

	for _, a := range target.ByKind(buildcheck.KindGlueScript) {
		src, readErr := os.ReadFile(a.Path)
		if readErr != nil {
			err = multierr.Append(err, errors.IO(errors.PhaseSyntax, a.Path, readErr))
			continue
		}

		if _, parseErr := parser.ParseFile(nil, a.Name, string(src), 0); parseErr != nil {
			err = multierr.Append(err, errors.Syntax(a.Name, parseErr))
			continue
		}

		Logger().Debug("script parsed",
			zap.String("target", target.Name),
			zap.String("artifact", a.Name),
			zap.Int("bytes", len(src)))
	}

	return err
}
