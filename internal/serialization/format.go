package serialization

import "time"

// Format constants.
const (
	MagicBytes      = "BPRP"
	FormatVersion   = 1 // v1: float64 tensors with trailing SHA-256 checksum
	DataAlignment   = 8 // Tensor data starts on a float64 boundary
	FixedHeaderSize = 4 + 4 + 4 + 8
	DTypeFloat64    = "float64"
	ModelTypeMLP    = "MLP"
	LibraryVersion  = "0.1.0" // Version recorded in written headers
)

// Flags for the .bprp format.
const (
	FlagHasCheckpoint uint32 = 1 << 0 // bit 0: training state included
	FlagHasMetadata   uint32 = 1 << 1 // bit 1: custom metadata included
)

// Header represents the JSON header in a .bprp file.
type Header struct {
	FormatVersion int               `json:"format_version"`       // Version of the .bprp format
	Version       string            `json:"backprop_version"`     // Library version that wrote the file
	ModelType     string            `json:"model_type"`           // Type of model ("MLP")
	CreatedAt     time.Time         `json:"created_at"`           // When the file was created
	Model         ModelMeta         `json:"model"`                // Architecture needed to rebuild the model
	Tensors       []TensorMeta      `json:"tensors"`              // Tensor metadata, in data order
	Metadata      map[string]string `json:"metadata,omitempty"`   // Custom metadata
	Checkpoint    *CheckpointMeta   `json:"checkpoint,omitempty"` // Training state (optional)
}

// ModelMeta describes the network architecture.
type ModelMeta struct {
	LayerSizes []int  `json:"layer_sizes"` // [n0, ..., nL]
	Hidden     string `json:"hidden"`      // Hidden activation name
	Output     string `json:"output"`      // Output activation name
	Loss       string `json:"loss"`        // Loss name
	Seed       int64  `json:"seed"`        // Initialization seed
}

// CheckpointMeta contains training state information for checkpoints.
type CheckpointMeta struct {
	Epoch        int     `json:"epoch"`                // Epochs trained so far
	Step         int64   `json:"step"`                 // SGD updates performed so far
	Loss         float64 `json:"loss"`                 // Dataset loss at checkpoint
	LearningRate float64 `json:"learning_rate"`        // SGD learning rate in use
	Experiment   string  `json:"experiment,omitempty"` // Experiment name, if any
}

// TensorMeta describes a tensor in the .bprp file.
type TensorMeta struct {
	Name   string `json:"name"`   // Tensor name (e.g., "0.weight")
	DType  string `json:"dtype"`  // Always "float64"
	Shape  []int  `json:"shape"`  // Tensor shape
	Offset int64  `json:"offset"` // Bytes from the start of tensor data
	Size   int64  `json:"size"`   // Size in bytes
}

// Tensor is a dense row-major float64 array.
type Tensor struct {
	Shape []int
	Data  []float64
}

// NumElements returns the product of the shape.
func (t Tensor) NumElements() int {
	return numElements(t.Shape)
}

func numElements(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

// File is a decoded .bprp file.
type File struct {
	Header  Header
	Tensors map[string]Tensor
}
