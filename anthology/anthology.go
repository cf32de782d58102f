// Package anthology declares the IR Anthology retrieval dataset built for the
// information retrievers group of the IR lab, summer term 2023.
package anthology

import (
	"path/filepath"

	"github.com/irlab/iranthology/dataset"
	"github.com/irlab/iranthology/xio"
)

const (
	// DatasetID is the key under which the dataset is registered.
	DatasetID = "iranthology-ir-lab-sose2023-information-retrievers"
	// DocsFile is the normalized document collection.
	DocsFile = "milestone-1-documents.jsonl"
	// TopicsFile contains the topics in TREC XML markup.
	TopicsFile = "milestone-1-topics.xml"
	// Lang of documents and topics.
	Lang = "en"
)

// Dataset returns the dataset with files located in dir. Remote locations
// are joined as URLs.
func Dataset(dir string) dataset.Dataset {
	return dataset.Dataset{
		Docs:    &dataset.JSONLDocs{Path: resolve(dir, DocsFile), Lang: Lang},
		Queries: &dataset.TrecXMLQueries{Path: resolve(dir, TopicsFile), Lang: Lang},
	}
}

// Register adds the dataset to a registry. Call once at startup.
func Register(reg *dataset.Registry, dir string) error {
	return reg.Register(DatasetID, Dataset(dir))
}

func resolve(dir, name string) string {
	if xio.IsRemote(dir) {
		if dir[len(dir)-1] != '/' {
			dir += "/"
		}
		return dir + name
	}
	return filepath.Join(dir, name)
}
