package util

import (
	"bytes"
	"sync"
)

// bytesBuffer pools the scratch buffers shared by the query hashing and
// cache encoding paths.
var bytesBuffer = sync.Pool{
	New: func() interface{} { return &bytes.Buffer{} },
}

func GetBytesBuffer() *bytes.Buffer {
	return bytesBuffer.Get().(*bytes.Buffer)
}

// PutBytesBuffer returns a buffer to the pool. Callers reset it before
// handing it back.
func PutBytesBuffer(p *bytes.Buffer) {
	bytesBuffer.Put(p)
}
