package ingest

import (
	"bufio"
	"io"
)

// ReadLines offers every line of r as one block, for piped stdin use.
// It returns when r is exhausted.
func ReadLines(r io.Reader, in *Ingestor) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		in.Offer(sc.Text())
	}
	return sc.Err()
}
