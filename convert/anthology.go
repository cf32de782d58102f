// Package convert turns raw anthology records into normalized documents.
package convert

import (
	"bytes"
	"context"
	"crypto/sha1"
	"fmt"
	"io"
	"time"

	"github.com/irlab/iranthology/normal"
	"github.com/irlab/iranthology/pproc"
	"github.com/irlab/iranthology/record"
	"github.com/irlab/iranthology/xio"
	"github.com/segmentio/encoding/json"
	log "github.com/sirupsen/logrus"
)

// Converter turns raw anthology records, one JSON object per line, into
// normalized documents, one JSON object per line, in input order.
type Converter struct {
	// IDField names the identifier field, defaults to "id".
	IDField string
	// Pipeline is applied to the concatenated text, may be nil.
	Pipeline *normal.Pipeline
	// MaxRecordSize limits the size of a single input line, optional.
	MaxRecordSize int
	Logger        log.FieldLogger
}

// Stats about a conversion run.
type Stats struct {
	Records  int64
	BytesIn  int64
	BytesOut int64
	// SHA1 of the uncompressed output, hex encoded.
	SHA1    string
	Elapsed time.Duration
	// First converted document, if any.
	First *record.NormalizedRecord
}

func (c *Converter) idField() string {
	if c.IDField == "" {
		return record.DefaultIDField
	}
	return c.IDField
}

func (c *Converter) logger() log.FieldLogger {
	if c.Logger == nil {
		return log.StandardLogger()
	}
	return c.Logger
}

// Run converts all records from r and writes documents to w. It stops at
// the first malformed record or record without identifier.
func (c *Converter) Run(ctx context.Context, r io.Reader, w io.Writer) (Stats, error) {
	var (
		stats Stats
		buf   bytes.Buffer
	)
	var (
		started = time.Now()
		idField = c.idField()
		logger  = c.logger()
		enc     = json.NewEncoder(&buf)
		h       = sha1.New()
	)
	enc.SetEscapeHTML(false)
	opts := []pproc.ProcessorOption{
		pproc.WithSkipEmpty(true),
		pproc.WithTokenName("line"),
	}
	if c.MaxRecordSize > 0 {
		opts = append(opts, pproc.WithMaxTokenSize(c.MaxRecordSize))
	}
	proc := pproc.NewProcessor(func(p []byte) ([]byte, error) {
		stats.BytesIn += int64(len(p)) + 1
		raw, err := record.Parse(p)
		if err != nil {
			return nil, err
		}
		doc, err := record.Normalize(raw, idField)
		if err != nil {
			return nil, err
		}
		doc.Text = c.Pipeline.Normalize(doc.Text)
		buf.Reset()
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
		if stats.First == nil {
			first := doc
			stats.First = &first
		}
		stats.Records++
		stats.BytesOut += int64(buf.Len())
		return buf.Bytes(), nil
	}, opts...)
	err := proc.Process(ctx, r, io.MultiWriter(w, h))
	stats.Elapsed = time.Since(started)
	stats.SHA1 = fmt.Sprintf("%x", h.Sum(nil))
	if err != nil {
		logger.WithFields(log.Fields{
			"records": stats.Records,
		}).WithError(err).Error("conversion failed")
		return stats, err
	}
	logger.WithFields(log.Fields{
		"records": stats.Records,
		"elapsed": stats.Elapsed,
	}).Info("conversion done")
	return stats, nil
}

// ConvertFile converts the records from input into output. Input may be a
// file, "-" or a URL; output is truncated or created, "-" is stdout. Both
// are closed before returning.
func ConvertFile(ctx context.Context, c *Converter, input, output string) (stats Stats, err error) {
	r, err := xio.Open(input)
	if err != nil {
		return stats, fmt.Errorf("open input: %w", err)
	}
	defer r.Close()
	w, err := xio.Create(output)
	if err != nil {
		return stats, fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()
	c.logger().WithFields(log.Fields{
		"input":    input,
		"output":   output,
		"id_field": c.idField(),
	}).Debug("converting")
	return c.Run(ctx, r, w)
}
