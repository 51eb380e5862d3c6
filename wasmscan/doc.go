// Package wasmscan provides lightweight WebAssembly binary inspection.
//
// Unlike a full decoder, the scanner reads only what artifact checks
// need: the 8-byte preamble, the section layout, and the memory and
// export inventories. Function bodies and data payloads are skipped,
// so scanning stays cheap even for emulator binaries in the tens of
// megabytes.
//
// # Usage
//
// Verify the preamble of a module file:
//
//	header, err := wasmscan.ParseHeader(data)
//	if errors.Is(err, wasmscan.ErrInvalidMagic) {
//	    // not a wasm module
//	}
//
// Take a full section inventory:
//
//	inv, err := wasmscan.Scan(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(inv.HasMemory(), inv.ExportedFunctions())
package wasmscan
