package validate_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/qemu-wasm/buildcheck"
)

// validWrapper satisfies the whole capability contract and carries a
// memory-configuration marker.
const validWrapper = `const runtimeOptions = {
  INITIAL_MEMORY: 268435456,
  ALLOW_MEMORY_GROWTH: 1,
};

class QemuRunner {
  constructor() {
    this.status = "created";
    this.instance = null;
  }

  async init() {
    this.status = "ready";
  }

  async start(options) {
    this.args = this.buildArgs(options);
    this.status = "running";
  }

  stop() {
    this.status = "stopped";
  }

  getStatus() {
    return this.status;
  }

  buildArgs(options) {
    const args = ["-machine", options.machine];
    if (options.memory) {
      args.push("-m", String(options.memory));
    }
    return args;
  }
}

module.exports = QemuRunner;
`

const validDescriptor = `{
  "name": "qemu-i386-wasm",
  "version": "8.2.0",
  "description": "QEMU i386 system emulator compiled to WebAssembly",
  "main": "qemu-runner.js",
  "license": "GPL-2.0"
}`

var wasmHeader = []byte{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00}

// newTarget writes the given files into a fresh directory and returns
// the loaded target.
func newTarget(t *testing.T, files map[string][]byte) *buildcheck.Target {
	t.Helper()
	dir := t.TempDir()
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	target := &buildcheck.Target{Name: "i386-softmmu", Dir: dir}
	if err := buildcheck.LoadArtifacts(target); err != nil {
		t.Fatalf("LoadArtifacts: %v", err)
	}
	return target
}

// validTarget builds a structurally complete target: wrapper,
// descriptor, one signed binary module and one extra glue script.
func validTarget(t *testing.T) *buildcheck.Target {
	t.Helper()
	return newTarget(t, map[string][]byte{
		buildcheck.WrapperName:  []byte(validWrapper),
		buildcheck.MetadataName: []byte(validDescriptor),
		"qemu-system-i386.wasm": paddedModule(2 << 20),
		"qemu-system-i386.js":   []byte("var Module = typeof Module != 'undefined' ? Module : {};\n"),
	})
}

// paddedModule returns a correctly signed byte blob of the given total
// size. The padding is not a decodable section, which is fine for
// checks that only read the preamble.
func paddedModule(size int) []byte {
	data := make([]byte, size)
	copy(data, wasmHeader)
	return data
}
