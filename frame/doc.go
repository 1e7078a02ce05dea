// Package frame provides the planar YUV 4:2:0 pixel buffer consumed and
// produced by the enhancement pipeline.
//
// A PixelBuffer holds one full-resolution luma plane and two quarter
// resolution chroma planes, tightly packed:
//
//	buf := frame.New(640, 480)         // zeroed planes
//	gray := frame.NewFilled(640, 480, 128, 128, 128)
//
//	// From the decoder's contiguous layout (Y, then U, then V)
//	buf, err := frame.FromBytes(data, 640, 480)
//
// # Raw Streams
//
// Reader and Writer move headerless I420 streams in and out of files. Paths
// ending in ".zst" are transparently zstd-compressed:
//
//	r, err := frame.OpenReader("input.yuv.zst", 1280, 720)
//	defer r.Close()
//	for {
//	    buf, err := r.ReadFrame()
//	    if errors.Is(err, io.EOF) {
//	        break
//	    }
//	    // ...
//	}
//
// # Inspection
//
// WriteSnapshot encodes a frame as PNG (optionally downsampled) and DrawText
// stamps diagnostic text into the luma plane.
//
// # Ownership
//
// Stages never modify the buffer they receive. A PixelBuffer handed to the
// pipeline must not be mutated by the caller until processing returns.
package frame
