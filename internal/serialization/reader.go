package serialization

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// Read decodes a .bprp stream.
//
// The checksum is verified before the header is trusted, then every tensor
// entry is validated against the data section.
func Read(r io.Reader) (*File, error) {
	var fixed [FixedHeaderSize]byte
	if _, err := io.ReadFull(r, fixed[:]); err != nil {
		return nil, readError("fixed header", err)
	}
	if string(fixed[0:4]) != MagicBytes {
		return nil, ErrInvalidMagic
	}
	if version := binary.LittleEndian.Uint32(fixed[4:8]); version != FormatVersion {
		return nil, fmt.Errorf("%w: got %d, expected %d", ErrUnsupportedVersion, version, FormatVersion)
	}
	headerSize := binary.LittleEndian.Uint64(fixed[12:20])
	if headerSize > MaxHeaderSize {
		return nil, ErrHeaderTooLarge
	}

	headerJSON := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerJSON); err != nil {
		return nil, readError("header", err)
	}
	if _, err := io.CopyN(io.Discard, r, int64(padding(len(headerJSON)))); err != nil {
		return nil, readError("padding", err)
	}

	rest, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read tensor data: %w", err)
	}
	if len(rest) < ChecksumSize {
		return nil, fmt.Errorf("%w: missing checksum", ErrTruncated)
	}
	data := rest[:len(rest)-ChecksumSize]
	var stored [ChecksumSize]byte
	copy(stored[:], rest[len(rest)-ChecksumSize:])
	if err := ValidateChecksum(ComputeChecksum(headerJSON, data), stored); err != nil {
		return nil, err
	}

	var header Header
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		return nil, fmt.Errorf("failed to parse header JSON: %w", err)
	}
	if err := ValidateHeader(&header, int64(len(data))); err != nil {
		return nil, err
	}

	var used int64
	tensors := make(map[string]Tensor, len(header.Tensors))
	for _, meta := range header.Tensors {
		values := make([]float64, meta.Size/8)
		chunk := data[meta.Offset : meta.Offset+meta.Size]
		for i := range values {
			values[i] = math.Float64frombits(binary.LittleEndian.Uint64(chunk[8*i:]))
		}
		tensors[meta.Name] = Tensor{Shape: append([]int(nil), meta.Shape...), Data: values}
		used += meta.Size
	}
	if used != int64(len(data)) {
		return nil, &ValidationError{
			Type:    "unused_data",
			Details: fmt.Sprintf("tensors cover %d of %d data bytes", used, len(data)),
		}
	}

	return &File{Header: header, Tensors: tensors}, nil
}

// Load reads a .bprp file from path.
func Load(path string) (*File, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model loading
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	f, err := Read(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

func readError(what string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: reading %s", ErrTruncated, what)
	}
	return fmt.Errorf("failed to read %s: %w", what, err)
}
