// ia-dataset registers the IR Anthology dataset and gives access to it.
//
// $ ia-dataset -l
// iranthology-ir-lab-sose2023-information-retrievers
//
// $ ia-dataset -queries | head -1
// {"query_id":"1","title":"..."}
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/irlab/iranthology"
	"github.com/irlab/iranthology/anthology"
	"github.com/irlab/iranthology/config"
	"github.com/irlab/iranthology/dataset"
	"github.com/segmentio/encoding/json"
	log "github.com/sirupsen/logrus"
)

var (
	defaults = config.Default()

	dataDir     = flag.String("d", defaults.DataDir, "directory or URL with the dataset files")
	name        = flag.String("n", anthology.DatasetID, "dataset name")
	listNames   = flag.Bool("l", false, "list registered datasets")
	dumpDocs    = flag.Bool("docs", false, "write documents as jsonl to stdout")
	dumpQueries = flag.Bool("queries", false, "write queries as jsonl to stdout")
	check       = flag.Bool("check", false, "read all documents and queries, report counts")
	verbose     = flag.Bool("v", defaults.Verbose, "verbose output")
	showVersion = flag.Bool("version", false, "show version")
)

func main() {
	flag.Parse()
	if *showVersion {
		fmt.Println(iranthology.Version)
		os.Exit(0)
	}
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	if err := anthology.Register(dataset.Default, *dataDir); err != nil {
		log.Fatal(err)
	}
	log.WithField("dir", *dataDir).Debug("registered datasets")
	if *listNames {
		for _, n := range dataset.Default.Names() {
			fmt.Println(n)
		}
		return
	}
	ds, err := dataset.Default.Get(*name)
	if err != nil {
		log.Fatal(err)
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	bw := bufio.NewWriter(os.Stdout)
	defer bw.Flush()
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	switch {
	case *dumpDocs:
		if !ds.HasDocs() {
			log.Fatalf("%s: no documents", *name)
		}
		err = ds.Docs.DocsIter(ctx, func(d dataset.Doc) error {
			return enc.Encode(d)
		})
	case *dumpQueries:
		if !ds.HasQueries() {
			log.Fatalf("%s: no queries", *name)
		}
		err = ds.Queries.QueriesIter(ctx, func(q dataset.Query) error {
			return enc.Encode(q)
		})
	case *check:
		var s dataset.Summary
		s, err = dataset.Check(ctx, ds)
		if err == nil {
			err = enc.Encode(s)
		}
	default:
		flag.Usage()
		os.Exit(1)
	}
	if err != nil {
		bw.Flush()
		log.Fatal(err)
	}
}
