package validate

import (
	"os"
	"regexp"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/qemu-wasm/buildcheck"
	"github.com/qemu-wasm/buildcheck/errors"
)

// Wrapper capability patterns. The contract is textual: the wrapper is
// never executed, so capabilities are recognized by their declaration
// shape in the source.
var (
	reNamedClass   = regexp.MustCompile(`\bclass\s+[A-Za-z_$][A-Za-z0-9_$]*`)
	reNoArgCtor    = regexp.MustCompile(`\bconstructor\s*\(\s*\)`)
	reAsyncInit    = regexp.MustCompile(`\basync\s+init\s*\(`)
	rePromiseInit  = regexp.MustCompile(`\binit\s*\([^)]*\)\s*\{\s*return\s+(?:new\s+Promise|Promise\.)`)
	reAsyncStart   = regexp.MustCompile(`\basync\s+start\s*\(\s*[^\s)]`)
	rePromiseStart = regexp.MustCompile(`\bstart\s*\(\s*[^\s)][^)]*\)\s*\{\s*return\s+(?:new\s+Promise|Promise\.)`)
	reStopCall     = regexp.MustCompile(`\bstop\s*\(\s*\)`)
	reAsyncStop    = regexp.MustCompile(`\basync\s+stop\b`)
	reGetStatus    = regexp.MustCompile(`\bgetStatus\s*\(`)
	reBuildArgs    = regexp.MustCompile(`\bbuildArgs\s*\(`)

	exportPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\bmodule\.exports\b`),
		regexp.MustCompile(`\bexport\s+default\b`),
		regexp.MustCompile(`\b(?:window|globalThis)\.[A-Za-z_$][A-Za-z0-9_$]*\s*=`),
	}
)

// capability is one entry of the wrapper contract.
type capability struct {
	Name    string
	present func(src string) bool
}

// capabilityTable is the declared wrapper contract, iterated in order.
// Every absent capability is reported individually.
var capabilityTable = []capability{
	{
		// A named class constructible without arguments.
		Name: "constructor",
		present: func(src string) bool {
			return reNamedClass.MatchString(src) && reNoArgCtor.MatchString(src)
		},
	},
	{
		// Asynchronous initialization, either async or promise-returning.
		Name: "init",
		present: func(src string) bool {
			return reAsyncInit.MatchString(src) || rePromiseInit.MatchString(src)
		},
	},
	{
		// Asynchronous start taking parameters.
		Name: "start",
		present: func(src string) bool {
			return reAsyncStart.MatchString(src) || rePromiseStart.MatchString(src)
		},
	},
	{
		// Synchronous stop.
		Name: "stop",
		present: func(src string) bool {
			return reStopCall.MatchString(src) && !reAsyncStop.MatchString(src)
		},
	},
	{
		Name:    "getStatus",
		present: func(src string) bool { return reGetStatus.MatchString(src) },
	},
	{
		Name:    "buildArgs",
		present: func(src string) bool { return reBuildArgs.MatchString(src) },
	},
}

// APIContract checks the glue wrapper against the declared capability
// table and requires at least one export mechanism (CommonJS, ES
// default export, or global attachment). Each absent capability yields
// its own error so a report names everything the wrapper is missing.
func APIContract(target *buildcheck.Target) error {
	wrapper, ok := target.Wrapper()
	if !ok {
		return errors.New(errors.PhaseAPI, errors.KindMissingArtifact).
			Target(target.Name).
			Detail("wrapper %s not present, capability contract unchecked", buildcheck.WrapperName).
			Build()
	}

	raw, readErr := os.ReadFile(wrapper.Path)
	if readErr != nil {
		return errors.IO(errors.PhaseAPI, wrapper.Path, readErr)
	}
	src := string(raw)

	var err error
	for _, c := range capabilityTable {
		if !c.present(src) {
			err = multierr.Append(err, errors.MissingCapability(c.Name))
		}
	}
	if !hasExport(src) {
		err = multierr.Append(err, errors.MissingExport(wrapper.Name))
	}

	if err != nil {
		Logger().Debug("api contract check failed",
			zap.String("target", target.Name),
			zap.Int("violations", len(multierr.Errors(err))))
	}
	return err
}

func hasExport(src string) bool {
	for _, re := range exportPatterns {
		if re.MatchString(src) {
			return true
		}
	}
	return false
}
