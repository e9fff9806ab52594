package dispatch

import "io"

// progressReader wraps a response body and reports the download fraction
// after every read. The fraction stays at 0 when the content length is
// unknown.
type progressReader struct {
	r      io.Reader
	total  int64
	read   int64
	report func(fraction float64)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.read += int64(n)
	if n > 0 && p.report != nil {
		p.report(p.fraction())
	}
	return n, err
}

func (p *progressReader) fraction() float64 {
	if p.total <= 0 {
		return 0
	}
	f := float64(p.read) / float64(p.total)
	if f > 1 {
		f = 1
	}
	return f
}
