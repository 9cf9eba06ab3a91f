package common

import "runtime"

// MinChunkSize is the smallest range of rows a worker goroutine is given.
// Below this the scheduling overhead dominates the field arithmetic.
const MinChunkSize int = 1 << 10

// ChunkRange is a container for the beginning and the end of a chunk
type ChunkRange struct {
	Begin, End int
}

// IntoChunkRanges returns a list of ranges covering N entries, at most one
// chunk per core and none smaller than MinChunkSize.
func IntoChunkRanges(nCore, n int) []ChunkRange {
	chunkSize := max(MinChunkSize, n/nCore)
	nChunks := n / chunkSize
	if nChunks*chunkSize < n {
		nChunks++
	}

	chunkRanges := make([]ChunkRange, nChunks)
	begin := 0
	for i := 0; i < nChunks; i++ {
		chunkRanges[i] = ChunkRange{Begin: begin, End: min(n, begin+chunkSize)}
		begin += chunkSize
	}

	return chunkRanges
}

// NumCores returns the parallelism degree used by the provers
func NumCores() int {
	return runtime.GOMAXPROCS(0)
}
