//go:build ignore

// genzones writes zones_gen.go from the zoneinfo.zip of the Go installation.
package main

import (
	"archive/zip"
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

func main() {
	input := flag.String("input", filepath.Join(runtime.GOROOT(), "lib", "time", "zoneinfo.zip"), "zoneinfo.zip to read")
	output := flag.String("output", "zones_gen.go", "file to write")
	flag.Parse()

	reader, err := zip.OpenReader(*input)
	if err != nil {
		log.Fatal(err)
	}

	defer reader.Close()

	var names []string
	for _, file := range reader.File {
		name := file.Name
		first, _ := utf8.DecodeRuneInString(name)
		if file.FileInfo().IsDir() || strings.Contains(name, ".") || !unicode.IsUpper(first) {
			continue
		}

		names = append(names, name)
	}

	slices.Sort(names)

	var buf bytes.Buffer
	buf.WriteString("// Code generated by genzones.go; DO NOT EDIT.\n\npackage tz\n\n")
	buf.WriteString("// embeddedZones lists the zones of the time/tzdata database linked into every binary.\n")
	buf.WriteString("var embeddedZones = []string{\n")
	for _, name := range names {
		fmt.Fprintf(&buf, "\t%q,\n", name)
	}
	buf.WriteString("}\n")

	source, err := format.Source(buf.Bytes())
	if err != nil {
		log.Fatal(err)
	}

	if err := os.WriteFile(*output, source, 0o644); err != nil {
		log.Fatal(err)
	}
}
