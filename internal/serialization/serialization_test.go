package serialization

import (
	"bytes"
	"encoding/binary"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func sampleTensors() map[string]Tensor {
	return map[string]Tensor{
		"0.weight": {Shape: []int{3, 2}, Data: []float64{0.5, -1, 2.25, 0, -0.125, 7}},
		"0.bias":   {Shape: []int{3}, Data: []float64{0, 0.1, -0.1}},
		"1.weight": {Shape: []int{1, 3}, Data: []float64{1, 2, 3}},
		"1.bias":   {Shape: []int{1}, Data: []float64{-0.5}},
	}
}

func sampleHeader() Header {
	return Header{
		CreatedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		Model: ModelMeta{
			LayerSizes: []int{2, 3, 1},
			Hidden:     "tanh",
			Output:     "sigmoid",
			Loss:       "bce",
			Seed:       1,
		},
		Metadata:   map[string]string{"note": "xor"},
		Checkpoint: &CheckpointMeta{Epoch: 12, Step: 48, Loss: 0.25, LearningRate: 0.2, Experiment: "xor"},
	}
}

func encode(t *testing.T, h Header, tensors map[string]Tensor) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := Write(&buf, h, tensors); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	return buf.Bytes()
}

// TestRoundTrip verifies header and tensors survive Write and Read.
func TestRoundTrip(t *testing.T) {
	raw := encode(t, sampleHeader(), sampleTensors())

	f, err := Read(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if !reflect.DeepEqual(f.Tensors, sampleTensors()) {
		t.Errorf("tensors differ:\ngot  %v\nwant %v", f.Tensors, sampleTensors())
	}

	h := f.Header
	if h.FormatVersion != FormatVersion || h.ModelType != ModelTypeMLP || h.Version != LibraryVersion {
		t.Errorf("unexpected header defaults: %+v", h)
	}
	if !reflect.DeepEqual(h.Model, sampleHeader().Model) {
		t.Errorf("model meta = %+v", h.Model)
	}
	if h.Checkpoint == nil || *h.Checkpoint != *sampleHeader().Checkpoint {
		t.Errorf("checkpoint meta = %+v", h.Checkpoint)
	}
	if !h.CreatedAt.Equal(sampleHeader().CreatedAt) {
		t.Errorf("created_at = %v", h.CreatedAt)
	}
	if len(h.Tensors) != 4 || h.Tensors[0].Name != "0.bias" {
		t.Errorf("tensor table not sorted by name: %+v", h.Tensors)
	}
}

// TestLayout checks the fixed header, flags and data alignment.
func TestLayout(t *testing.T) {
	raw := encode(t, sampleHeader(), sampleTensors())

	if string(raw[:4]) != MagicBytes {
		t.Fatalf("magic = %q", raw[:4])
	}
	if v := binary.LittleEndian.Uint32(raw[4:8]); v != FormatVersion {
		t.Errorf("version = %d", v)
	}
	if flags := binary.LittleEndian.Uint32(raw[8:12]); flags != FlagHasCheckpoint|FlagHasMetadata {
		t.Errorf("flags = %b", flags)
	}

	headerSize := int(binary.LittleEndian.Uint64(raw[12:20]))
	dataStart := FixedHeaderSize + headerSize + padding(headerSize)
	if dataStart%DataAlignment != 0 {
		t.Errorf("data starts at %d, not %d-byte aligned", dataStart, DataAlignment)
	}

	// 6+3+3+1 float64 values plus the checksum.
	if got, want := len(raw)-dataStart, 13*8+ChecksumSize; got != want {
		t.Errorf("data section = %d bytes, expected %d", got, want)
	}
}

// TestDeterministic verifies equal inputs give identical bytes.
func TestDeterministic(t *testing.T) {
	a := encode(t, sampleHeader(), sampleTensors())
	b := encode(t, sampleHeader(), sampleTensors())
	if !bytes.Equal(a, b) {
		t.Error("encoding is not deterministic")
	}
}

// TestRead_Corruption covers damaged input.
func TestRead_Corruption(t *testing.T) {
	good := encode(t, sampleHeader(), sampleTensors())

	flip := func(i int) []byte {
		b := append([]byte(nil), good...)
		b[i] ^= 0xFF
		return b
	}

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"bad magic", flip(0), ErrInvalidMagic},
		{"bad version", flip(4), ErrUnsupportedVersion},
		{"flipped data byte", flip(len(good) - ChecksumSize - 3), ErrChecksumMismatch},
		{"flipped header byte", flip(FixedHeaderSize + 5), ErrChecksumMismatch},
		{"flipped checksum", flip(len(good) - 1), ErrChecksumMismatch},
		{"truncated fixed header", good[:10], ErrTruncated},
		{"truncated checksum", good[:len(good)-ChecksumSize-8], ErrChecksumMismatch},
		{"empty", nil, ErrTruncated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(bytes.NewReader(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, expected %v", err, tt.want)
			}
		})
	}
}

// TestRead_HeaderTooLarge rejects oversized header lengths before
// allocating.
func TestRead_HeaderTooLarge(t *testing.T) {
	raw := encode(t, sampleHeader(), sampleTensors())
	binary.LittleEndian.PutUint64(raw[12:20], MaxHeaderSize+1)
	if _, err := Read(bytes.NewReader(raw)); !errors.Is(err, ErrHeaderTooLarge) {
		t.Errorf("got %v, expected ErrHeaderTooLarge", err)
	}
}

// TestWrite_ShapeMismatch rejects tensors whose data does not fill the shape.
func TestWrite_ShapeMismatch(t *testing.T) {
	tensors := map[string]Tensor{"0.weight": {Shape: []int{2, 2}, Data: []float64{1, 2, 3}}}
	err := Write(&bytes.Buffer{}, sampleHeader(), tensors)

	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Type != "shape_mismatch" {
		t.Errorf("got %v, expected shape_mismatch", err)
	}
	if !errors.Is(err, ErrValidation) {
		t.Error("ValidationError should unwrap to ErrValidation")
	}
}

// TestWrite_BadName rejects path-like tensor names.
func TestWrite_BadName(t *testing.T) {
	tensors := map[string]Tensor{"../weight": {Shape: []int{1}, Data: []float64{1}}}
	if err := Write(&bytes.Buffer{}, sampleHeader(), tensors); !errors.Is(err, ErrValidation) {
		t.Errorf("got %v, expected validation error", err)
	}
}

// TestSaveLoad round-trips through the filesystem.
func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.bprp")
	if err := Save(path, sampleHeader(), sampleTensors()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(f.Tensors, sampleTensors()) {
		t.Error("tensors differ after Save/Load")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.bprp")); err == nil {
		t.Error("expected error for missing file")
	}
}

// TestEmptyTensors allows a file with no tensors.
func TestEmptyTensors(t *testing.T) {
	raw := encode(t, Header{}, nil)
	f, err := Read(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(f.Tensors) != 0 {
		t.Errorf("got %d tensors", len(f.Tensors))
	}
	if f.Header.Checkpoint != nil {
		t.Error("unexpected checkpoint meta")
	}
}
