package main

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/h2non/filetype"
	"github.com/richinsley/gldraw/assets"
	"github.com/sirupsen/logrus"
)

// onePixel is a 1x1 transparent PNG, always present in the table.
const onePixel = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII="

// collect builds the key -> data URL table for files, read relative to dir.
// Missing or unrecognized files are logged and skipped.
func collect(dir string, files []string, log logrus.FieldLogger) map[string]string {
	urls := map[string]string{"1px": onePixel}
	for _, name := range files {
		key := filepath.ToSlash(name)
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.WithField("file", key).WithError(err).Warn("skipping file")
			continue
		}
		kind, err := filetype.Match(data)
		if err != nil || kind == filetype.Unknown {
			log.WithField("file", key).Warn("skipping file of unknown type")
			continue
		}
		urls[key] = assets.EncodeDataURL(kind.MIME.Value, data)
		log.WithFields(logrus.Fields{"file": key, "type": kind.MIME.Value}).Info("added")
	}
	return urls
}

// render returns gofmt'ed Go source declaring urls as a map variable.
func render(pkg, name string, urls map[string]string) ([]byte, error) {
	keys := make([]string, 0, len(urls))
	for k := range urls {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by mkdataurls; DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", pkg)
	fmt.Fprintf(&buf, "// %s holds the embedded texture images keyed by asset path.\n", name)
	fmt.Fprintf(&buf, "var %s = map[string]string{\n", name)
	for _, k := range keys {
		fmt.Fprintf(&buf, "\t%s: %s,\n", strconv.Quote(k), strconv.Quote(urls[k]))
	}
	fmt.Fprintf(&buf, "}\n")
	return format.Source(buf.Bytes())
}
