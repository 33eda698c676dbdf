// Package sample performs single timed request/response exchanges against
// the reference host and extracts the whole-second timestamp carried by
// the server's Date header.
package sample

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// AgentString identifies htdate in outgoing requests.
const AgentString = "htdate/1.0"

// RequestPath is the resource named in the HEAD request. The reference
// server does not need to serve it; only the response header block is
// consumed.
const RequestPath = "/.well-known/time"

// Sample is the result of one timed exchange. Transmit is read
// immediately before the request bytes are written and Receive at the
// moment the empty line ending the response header block is seen, so
// Receive.Sub(Transmit) is the observed round-trip time. ServerSecond is
// the Unix timestamp parsed from the Date header; the server reports no
// sub-second resolution.
type Sample struct {
	Transmit     time.Time
	Receive      time.Time
	ServerSecond int64
}

// RTT returns the observed round-trip time of this sample.
func (s Sample) RTT() time.Duration {
	return s.Receive.Sub(s.Transmit)
}

// ProtocolError means a response arrived but its header block could not
// be interpreted. Everything else the Sampler returns is an I/O failure
// from the underlying stream.
type ProtocolError struct {
	Reason string
}

func (e *ProtocolError) Error() string {
	return "protocol error: " + e.Reason
}

// deadliner is the subset of net.Conn needed to arm per-request
// deadlines. Streams that do not implement it simply block.
type deadliner interface {
	SetDeadline(t time.Time) error
}

// Sampler performs HEAD exchanges over a single duplex stream. The
// stream is opened and closed by the caller and reused across calls.
type Sampler struct {
	conn    io.ReadWriter
	host    string
	timeout time.Duration
	input   *bufio.Reader

	// now is a hook for tests.
	now func() time.Time
}

// New creates a Sampler speaking to host over conn. When timeout is
// nonzero and conn supports deadlines, every exchange arms a deadline
// that far in the future before writing the request.
func New(conn io.ReadWriter, host string, timeout time.Duration) *Sampler {
	return &Sampler{
		conn:    conn,
		host:    host,
		timeout: timeout,
		input:   bufio.NewReader(conn),
		now:     time.Now,
	}
}

// Sample performs exactly one request/response exchange and returns the
// timed result. It consumes the full response header block and nothing
// beyond it, and never closes the stream.
func (s *Sampler) Sample() (Sample, error) {
	if s.timeout > 0 {
		if d, ok := s.conn.(deadliner); ok {
			if err := d.SetDeadline(s.now().Add(s.timeout)); err != nil {
				return Sample{}, err
			}
		}
	}
	transmit := s.now()
	request := "HEAD " + RequestPath + " HTTP/1.1\r\n" +
		"Host: " + s.host + "\r\n" +
		"User-Agent: " + AgentString + "\r\n" +
		"\r\n"
	if _, err := io.WriteString(s.conn, request); err != nil {
		return Sample{}, err
	}
	date := ""
	for {
		line, err := s.input.ReadString('\n')
		if err != nil {
			return Sample{}, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		if name, value, ok := splitHeader(line); ok && strings.EqualFold(name, "Date") {
			date = value
		}
	}
	receive := s.now()
	if date == "" {
		return Sample{}, &ProtocolError{Reason: "response carried no Date header"}
	}
	when, err := time.Parse(http.TimeFormat, date)
	if err != nil {
		return Sample{}, &ProtocolError{Reason: fmt.Sprintf("unparsable Date header %q", date)}
	}
	return Sample{Transmit: transmit, Receive: receive, ServerSecond: when.Unix()}, nil
}

func splitHeader(line string) (name, value string, ok bool) {
	i := strings.IndexByte(line, ':')
	if i < 0 {
		return "", "", false
	}
	return line[:i], strings.TrimSpace(line[i+1:]), true
}
