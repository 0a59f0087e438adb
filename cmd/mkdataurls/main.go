// Command mkdataurls writes a Go file embedding image files as data URLs.
//
//	mkdataurls -o dataurls.go tex/daisy.png
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	var (
		output = flag.String("o", "dataurls.go", "Output file")
		dir    = flag.String("dir", ".", "Directory the image paths are relative to")
		pkg    = flag.String("pkg", "assets", "Package name of the output file")
		name   = flag.String("var", "DataURLs", "Name of the map variable")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: mkdataurls [flags] image...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	urls := collect(*dir, flag.Args(), logrus.StandardLogger())
	src, err := render(*pkg, *name, urls)
	if err != nil {
		logrus.Fatalf("Failed to format output: %v", err)
	}
	if err := os.WriteFile(*output, src, 0o644); err != nil {
		logrus.Fatalf("Failed to write %s: %v", *output, err)
	}
	logrus.Infof("Wrote %d entries to %s", len(urls), *output)
}
