package rag

import "errors"

var (
	// ErrExtraction means the uploaded bytes are not a readable PDF.
	ErrExtraction = errors.New("pdf text extraction failed")
	// ErrIndexWrite means the backing store rejected an embedding batch.
	ErrIndexWrite = errors.New("vector index write failed")
	// ErrIndexEmpty means no chunks have ever been added to the index.
	ErrIndexEmpty = errors.New("vector index is empty")
	// ErrGeneration means the generative text service call failed.
	ErrGeneration = errors.New("answer generation failed")
)
