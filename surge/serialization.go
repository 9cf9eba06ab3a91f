package surge

import (
	"bytes"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// CBOR with deterministic encoding; the generous decode limits cover large
// batches and tables.

func encOptions() (cbor.EncMode, error) {
	return cbor.CoreDetEncOptions().EncMode()
}

func decOptions() (cbor.DecMode, error) {
	return cbor.DecOptions{
		MaxArrayElements: 134217728,
		MaxMapPairs:      134217728,
	}.DecMode()
}

func writeCBOR(w io.Writer, v interface{}) (int64, error) {
	enc, err := encOptions()
	if err != nil {
		return 0, err
	}
	var buf bytes.Buffer
	if err := enc.NewEncoder(&buf).Encode(v); err != nil {
		return 0, err
	}
	n, err := w.Write(buf.Bytes())
	return int64(n), err
}

func readCBOR(r io.Reader, v interface{}) (int64, error) {
	dm, err := decOptions()
	if err != nil {
		return 0, err
	}
	cr := &countingReader{r: r}
	if err := dm.NewDecoder(cr).Decode(v); err != nil {
		return cr.n, err
	}
	return cr.n, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// WriteTo serializes the proof
func (p *EvaluationProof) WriteTo(w io.Writer) (int64, error) {
	return writeCBOR(w, p)
}

// ReadFrom deserializes a proof produced by WriteTo
func (p *EvaluationProof) ReadFrom(r io.Reader) (int64, error) {
	return readCBOR(r, p)
}

// WriteTo serializes the commitment
func (c *Commitment) WriteTo(w io.Writer) (int64, error) {
	return writeCBOR(w, c)
}

// ReadFrom deserializes a commitment produced by WriteTo
func (c *Commitment) ReadFrom(r io.Reader) (int64, error) {
	return readCBOR(r, c)
}
