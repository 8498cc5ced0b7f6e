package tz

import (
	"archive/zip"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/flachnetz/timeutil/lib/set"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// system locations of the zoneinfo database, same as the time package checks.
var zoneDirs = []string{
	"/usr/share/zoneinfo/",
	"/usr/share/lib/zoneinfo/",
	"/usr/lib/locale/TZ/",
	"/etc/zoneinfo/",
}

// zoneSources returns the places to look for zone names, most specific first.
func zoneSources() []string {
	var sources []string

	if zoneinfo := os.Getenv("ZONEINFO"); zoneinfo != "" {
		sources = append(sources, zoneinfo)
	}

	sources = append(sources, zoneDirs...)
	sources = append(sources, filepath.Join(runtime.GOROOT(), "lib", "time", "zoneinfo.zip"))

	return sources
}

// ZoneNames collects the candidate zone names found in the given sources. A source
// is either a zoneinfo directory or a zoneinfo.zip file. Sources that do not exist
// are skipped, every other failure is collected into the returned error. The names
// that were found before a failure are still returned.
//
// The names are not validated, a few of them might not be loadable. UTC is
// always part of the result.
func ZoneNames(sources ...string) ([]string, error) {
	names := set.WithCapacity[string](1024)
	names.Add("UTC")

	var result *multierror.Error
	for _, source := range sources {
		result = multierror.Append(result, scanSource(source, &names))
	}

	return set.Sorted(names), result.ErrorOrNil()
}

func scanSource(source string, names *set.Set[string]) error {
	info, err := os.Stat(source)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil

	case err != nil:
		return errors.WithMessagef(err, "stat zone source %q", source)

	case info.IsDir():
		return scanDirectory(source, names)

	default:
		return scanZip(source, names)
	}
}

func scanDirectory(root string, names *set.Set[string]) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		name, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		name = filepath.ToSlash(name)

		if entry.IsDir() {
			if name != "." && !isZoneName(name) {
				return filepath.SkipDir
			}

			return nil
		}

		addZone(names, name)
		return nil
	})

	return errors.WithMessagef(err, "scan zone directory %q", root)
}

func scanZip(path string, names *set.Set[string]) error {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return errors.WithMessagef(err, "open zone archive %q", path)
	}

	defer reader.Close()

	for _, file := range reader.File {
		if !file.FileInfo().IsDir() {
			addZone(names, file.Name)
		}
	}

	return nil
}

func addZone(names *set.Set[string], name string) {
	if isZoneName(name) {
		names.Add(name)
	}
}

// isZoneName filters out the files living next to the zone files, like zone1970.tab,
// tzdata.zi, posixrules or localtime, as well as the posix/ and right/ copies.
func isZoneName(name string) bool {
	if name == "" || strings.Contains(name, ".") {
		return false
	}

	first, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(first)
}
