// ia-convert turns the IR Anthology dump into a (doc_id, text) document
// collection, one JSON object per line. All fields except the identifier are
// concatenated, each followed by a space.
//
// $ ia-convert -i ir-anthology-07-11-2021-ss23.jsonl -o milestone-1-documents.jsonl
// $ zstdcat dump.jsonl.zst | ia-convert -i - -o - | head -1
// {"doc_id":"...","text":"..."}
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/irlab/iranthology"
	"github.com/irlab/iranthology/anthology"
	"github.com/irlab/iranthology/config"
	"github.com/irlab/iranthology/convert"
	"github.com/irlab/iranthology/normal"
	"github.com/irlab/iranthology/xio"
	log "github.com/sirupsen/logrus"
)

var (
	defaults = config.Default()

	input        = flag.String("i", defaults.Input, "input file with raw records, jsonl, may be .gz or .zst, - for stdin, or a URL")
	output       = flag.String("o", defaults.Output, "output file, truncated, - for stdout")
	idField      = flag.String("id", defaults.IDField, "name of the identifier field")
	manifest     = flag.Bool("m", defaults.Manifest, "write a manifest next to the output")
	lower        = flag.Bool("lower", false, "lowercase text")
	newlines     = flag.Bool("nl", false, "replace line breaks and tabs in text with a space")
	collapse     = flag.Bool("collapse", false, "collapse whitespace runs into a single space")
	maxLineBytes = flag.Int("x", 1<<26, "max bytes per input line")
	verbose      = flag.Bool("v", defaults.Verbose, "verbose output")
	showVersion  = flag.Bool("version", false, "show version")
)

var help = `ia-convert normalizes IR Anthology records

Every line of the input is a JSON object. The identifier field becomes
doc_id, all other fields are concatenated in order into text.

Examples:

    $ ia-convert -i ir-anthology-07-11-2021-ss23.jsonl -o output.jsonl
    $ ia-convert -i dump.jsonl.zst -o - -lower -nl -collapse

Usage:

`

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, help)
		flag.PrintDefaults()
	}
	flag.Parse()
	if *showVersion {
		fmt.Println(iranthology.Version)
		os.Exit(0)
	}
	log.SetOutput(os.Stderr)
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	var pipeline normal.Pipeline
	if *newlines {
		pipeline.Normalizer = append(pipeline.Normalizer, &normal.ControlSpaceNormalizer{})
	}
	if *lower {
		pipeline.Normalizer = append(pipeline.Normalizer, &normal.LowerNormalizer{})
	}
	if *collapse {
		pipeline.Normalizer = append(pipeline.Normalizer, &normal.CollapseSpaceNormalizer{})
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	c := &convert.Converter{
		IDField:       *idField,
		Pipeline:      &pipeline,
		MaxRecordSize: *maxLineBytes,
		Logger:        log.StandardLogger(),
	}
	stats, err := convert.ConvertFile(ctx, c, *input, *output)
	if err != nil {
		log.Fatal(err)
	}
	if stats.First != nil {
		log.WithFields(log.Fields{
			"doc_id": stats.First.DocID,
			"text":   stats.First.Text,
		}).Info("first document")
	}
	if !*manifest {
		return
	}
	if *output == xio.Stdio {
		log.Warn("no manifest for stdout output")
		return
	}
	m := convert.NewManifest(anthology.DatasetID, *input, *output, *idField, stats)
	fn := convert.ManifestPath(*output)
	if err := m.WriteFile(fn); err != nil {
		log.Fatal(err)
	}
	log.WithFields(log.Fields{
		"manifest": fn,
		"run_id":   m.RunID,
	}).Info("manifest written")
}
