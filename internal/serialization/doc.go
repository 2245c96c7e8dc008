// Package serialization provides the .bprp file format for saving and
// loading trained MLP parameters.
//
// The format is a small binary container for float64 tensors:
//
//	Format Structure:
//	  [4 bytes: Magic "BPRP"]
//	  [4 bytes: Version (uint32 LE)]
//	  [4 bytes: Flags (uint32 LE)]
//	  [8 bytes: Header Size (uint64 LE)]
//	  [Header: JSON metadata]
//	  [Padding: zero bytes up to an 8-byte boundary]
//	  [Tensor data: float64 LE, in header order]
//	  [32 bytes: SHA-256 of header JSON and tensor data]
//
// The header records the model topology, activations, loss and seed, so a
// file is enough to rebuild the network, plus optional training metadata
// for resuming.
//
// Example usage:
//
//	err := serialization.Save("xor.bprp", header, tensors)
//
//	file, err := serialization.Load("xor.bprp")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	weights := file.Tensors["0.weight"]
package serialization
