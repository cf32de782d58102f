// Package iranthology turns the IR Anthology bibliographic dump into a plain
// (doc_id, text) document collection and declares it, together with a topics
// file, as a retrieval dataset.
package iranthology

const (
	// AppName is used for data and cache directories.
	AppName = "iranthology"
	// Version of the tools.
	Version = "0.1.0"
)
