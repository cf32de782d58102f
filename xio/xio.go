// Package xio opens inputs and creates outputs, with transparent gzip and
// zstd handling based on the file name.
package xio

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	gzip "github.com/klauspost/pgzip"
	"github.com/sethgrid/pester"
)

// Stdio is the name that refers to stdin or stdout.
const Stdio = "-"

// DefaultMaxRetries for remote inputs.
const DefaultMaxRetries = 3

// HTTPClient is used for remote inputs.
var HTTPClient = newClient()

func newClient() *pester.Client {
	client := pester.New()
	client.MaxRetries = DefaultMaxRetries
	client.Backoff = pester.ExponentialBackoff
	client.SetRetryOnHTTP429(true)
	return client
}

// IsRemote reports whether name looks like a http or https URL.
func IsRemote(name string) bool {
	return strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://")
}

// Open returns a reader for a file, stdin ("-") or a URL. Files ending in
// .gz or .zst are decompressed. The caller needs to close the reader.
func Open(name string) (io.ReadCloser, error) {
	var (
		rc  io.ReadCloser
		err error
	)
	switch {
	case name == Stdio:
		return io.NopCloser(os.Stdin), nil
	case IsRemote(name):
		rc, err = fetch(name)
	default:
		rc, err = os.Open(name)
	}
	if err != nil {
		return nil, err
	}
	return decompress(rc, compressionSuffix(name))
}

func fetch(link string) (io.ReadCloser, error) {
	req, err := http.NewRequest("GET", link, nil)
	if err != nil {
		return nil, err
	}
	resp, err := HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: %s", link, resp.Status)
	}
	return resp.Body, nil
}

// compressionSuffix returns the name suffix relevant for compression, for
// URLs the query string is ignored.
func compressionSuffix(name string) string {
	if IsRemote(name) {
		if u, err := url.Parse(name); err == nil {
			name = u.Path
		}
	}
	switch {
	case strings.HasSuffix(name, ".gz"):
		return ".gz"
	case strings.HasSuffix(name, ".zst"):
		return ".zst"
	}
	return ""
}

func decompress(rc io.ReadCloser, suffix string) (io.ReadCloser, error) {
	switch suffix {
	case ".gz":
		zr, err := gzip.NewReader(rc)
		if err != nil {
			rc.Close()
			return nil, err
		}
		return &compositeReadCloser{reader: zr, closers: []io.Closer{zr, rc}}, nil
	case ".zst":
		zr, err := zstd.NewReader(rc)
		if err != nil {
			rc.Close()
			return nil, err
		}
		return &compositeReadCloser{
			reader:  zr,
			closers: []io.Closer{closerFunc(func() error { zr.Close(); return nil }), rc},
		}, nil
	default:
		return rc, nil
	}
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// compositeReadCloser closes the decompressor and the underlying reader.
type compositeReadCloser struct {
	reader  io.Reader
	closers []io.Closer
}

func (c *compositeReadCloser) Read(p []byte) (int, error) {
	return c.reader.Read(p)
}

func (c *compositeReadCloser) Close() error {
	var first error
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Create truncates or creates a file for writing, "-" is stdout. Files
// ending in .gz or .zst are compressed. Close flushes the compressor and
// closes the file.
func Create(name string) (io.WriteCloser, error) {
	if name == Stdio {
		return nopWriteCloser{os.Stdout}, nil
	}
	outFile, err := os.Create(name)
	if err != nil {
		return nil, fmt.Errorf("error creating output file: %w", err)
	}
	switch compressionSuffix(name) {
	case ".gz":
		return &compositeWriteCloser{
			writer:       gzip.NewWriter(outFile),
			outFile:      outFile,
			isCompressed: true,
		}, nil
	case ".zst":
		zw, err := zstd.NewWriter(outFile)
		if err != nil {
			outFile.Close()
			return nil, fmt.Errorf("error creating zstd writer: %w", err)
		}
		return &compositeWriteCloser{
			writer:       zw,
			outFile:      outFile,
			isCompressed: true,
		}, nil
	default:
		return outFile, nil
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// compositeWriteCloser ensures both the compression writer and file are closed properly
type compositeWriteCloser struct {
	writer       io.WriteCloser
	outFile      *os.File
	isCompressed bool
}

func (c *compositeWriteCloser) Write(p []byte) (n int, err error) {
	return c.writer.Write(p)
}

func (c *compositeWriteCloser) Close() error {
	if c.isCompressed {
		if err := c.writer.Close(); err != nil {
			c.outFile.Close()
			return err
		}
	}
	return c.outFile.Close()
}
