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
	"sort"
)

// Write encodes the header and tensors to w in .bprp format.
//
// The tensor table of the header is rebuilt from tensors, sorted by name,
// so equal inputs give byte-identical output. FormatVersion is always set;
// ModelType and Version are filled in when empty.
func Write(w io.Writer, header Header, tensors map[string]Tensor) error {
	names := make([]string, 0, len(tensors))
	for name := range tensors {
		names = append(names, name)
	}
	sort.Strings(names)

	header.FormatVersion = FormatVersion
	if header.ModelType == "" {
		header.ModelType = ModelTypeMLP
	}
	if header.Version == "" {
		header.Version = LibraryVersion
	}

	var offset int64
	header.Tensors = make([]TensorMeta, 0, len(names))
	for _, name := range names {
		if err := ValidateTensorName(name); err != nil {
			return err
		}
		t := tensors[name]
		if len(t.Data) != t.NumElements() {
			return &ValidationError{
				Type:    "shape_mismatch",
				Tensor:  name,
				Details: fmt.Sprintf("shape %v holds %d values, got %d", t.Shape, t.NumElements(), len(t.Data)),
			}
		}
		size := int64(8 * len(t.Data))
		header.Tensors = append(header.Tensors, TensorMeta{
			Name:   name,
			DType:  DTypeFloat64,
			Shape:  append([]int(nil), t.Shape...),
			Offset: offset,
			Size:   size,
		})
		offset += size
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}
	if len(headerJSON) > MaxHeaderSize {
		return ErrHeaderTooLarge
	}

	var flags uint32
	if header.Checkpoint != nil {
		flags |= FlagHasCheckpoint
	}
	if len(header.Metadata) > 0 {
		flags |= FlagHasMetadata
	}

	// bufio.Writer keeps the first error; Flush reports it.
	bw := bufio.NewWriter(w)
	_, _ = bw.WriteString(MagicBytes)
	_ = binary.Write(bw, binary.LittleEndian, uint32(FormatVersion))
	_ = binary.Write(bw, binary.LittleEndian, flags)
	_ = binary.Write(bw, binary.LittleEndian, uint64(len(headerJSON)))

	sum := newChecksum()
	body := io.MultiWriter(bw, sum)
	_, _ = body.Write(headerJSON)
	_, _ = bw.Write(make([]byte, padding(len(headerJSON))))

	var buf [8]byte
	for _, name := range names {
		for _, v := range tensors[name].Data {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			_, _ = body.Write(buf[:])
		}
	}
	_, _ = bw.Write(sum.Sum(nil))

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write: %w", err)
	}
	return nil
}

// Save writes a .bprp file at path, replacing any existing file.
func Save(path string, header Header, tensors map[string]Tensor) (err error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model saving
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		err = errors.Join(err, file.Close())
	}()

	return Write(file, header, tensors)
}

// padding returns the zero bytes needed after a header of n bytes so the
// tensor data starts on a DataAlignment boundary.
func padding(n int) int {
	pos := FixedHeaderSize + n
	return (DataAlignment - pos%DataAlignment) % DataAlignment
}
