package bind_group_provider

// BufferWrite is one queued upload of a marshaled GPU record into a provider's buffer.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}

// Marshaler is implemented by the GPU records (camera, transform, light, draw).
type Marshaler interface {
	Marshal() []byte
}

// WriteRecord builds the write that replaces binding 0 of p with r.
//
// Parameters:
//   - p: the target provider
//   - r: the record to upload
//
// Returns:
//   - BufferWrite: the queued write
func WriteRecord(p BindGroupProvider, r Marshaler) BufferWrite {
	return BufferWrite{Provider: p, Binding: 0, Data: r.Marshal()}
}
