package bench

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/qemu-wasm/buildcheck"
)

// Size thresholds. Crossing one draws a warning in the report; suite
// verdicts are never affected. Overridable before the first Run.
var (
	TotalSizeThreshold  int64 = 200 << 20 // 200 MiB
	BinarySizeThreshold int64 = 100 << 20 // 100 MiB
	ScriptSizeThreshold int64 = 50 << 20  // 50 MiB
)

// collectSizes sums artifact sizes by kind and checks the per-target
// thresholds. Sizes come from the artifact listing; no file is reopened.
func collectSizes(target *buildcheck.Target, c *Collection) {
	var total, binary, script int64
	for _, a := range target.Artifacts {
		total += a.Size
		switch a.Kind {
		case buildcheck.KindBinaryModule:
			binary += a.Size
		case buildcheck.KindGlueScript:
			script += a.Size
		}
	}

	c.add(target.Name, "total_size", float64(total), UnitBytes)
	c.add(target.Name, "binary_size", float64(binary), UnitBytes)
	c.add(target.Name, "script_size", float64(script), UnitBytes)

	if total > TotalSizeThreshold {
		c.Warnings = append(c.Warnings, fmt.Sprintf(
			"total size %s exceeds %s", buildcheck.FormatBytes(total), buildcheck.FormatBytes(TotalSizeThreshold)))
	}
	if binary > BinarySizeThreshold {
		c.Warnings = append(c.Warnings, fmt.Sprintf(
			"binary size %s exceeds %s", buildcheck.FormatBytes(binary), buildcheck.FormatBytes(BinarySizeThreshold)))
	}
	if script > ScriptSizeThreshold {
		c.Warnings = append(c.Warnings, fmt.Sprintf(
			"script size %s exceeds %s", buildcheck.FormatBytes(script), buildcheck.FormatBytes(ScriptSizeThreshold)))
	}

	Logger().Debug("sizes collected",
		zap.String("target", target.Name),
		zap.Int64("total", total),
		zap.Int64("binary", binary),
		zap.Int64("script", script))
}
