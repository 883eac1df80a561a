package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fec-codec/fec-codec/internal/ber"
)

func main() {
	var dir, outPath string
	var target float64
	flag.StringVar(&dir, "results", "results", "directory holding the fec_eval CSV files")
	flag.StringVar(&outPath, "out", "", "output markdown path (default <results>/coding_gain.md)")
	flag.Float64Var(&target, "target", 1e-5, "error rate at which Eb/N0 is compared")
	flag.Parse()
	if outPath == "" {
		outPath = filepath.Join(dir, "coding_gain.md")
	}
	if target <= 0 || target >= 1 {
		fatalf("target must be in (0,1), got %g", target)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fatalf("mkdir %s: %v", filepath.Dir(outPath), err)
	}
	f, err := os.Create(outPath)
	if err != nil {
		fatalf("create %s: %v", outPath, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "# Coding gain summary")
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Required Eb/N0 at an error rate of %g, interpolated in log scale. Gain is measured against the uncoded BPSK column of the same file.\n", target)
	fmt.Fprintln(w, "")

	found := 0
	for _, name := range []string{ber.NSCFile, ber.RSBERFile, ber.RSBLERFile} {
		curves, err := ber.ReadCurves(filepath.Join(dir, name))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			fatalf("%v", err)
		}
		found++

		var ref *ber.Curve
		for i := range curves {
			if strings.HasSuffix(curves[i].Name, "_bpsk") {
				ref = &curves[i]
			}
		}
		refDB, refOK := 0.0, false
		if ref != nil {
			refDB, refOK = ref.EbN0At(target)
		}

		fmt.Fprintf(w, "## %s\n\n", name)
		fmt.Fprintln(w, "| Curve | Eb/N0 (dB) | Gain (dB) |")
		fmt.Fprintln(w, "|---|---:|---:|")
		for _, c := range curves {
			db, ok := c.EbN0At(target)
			switch {
			case !ok:
				fmt.Fprintf(w, "| %s | not reached | |\n", c.Name)
			case refOK && c.Name != ref.Name:
				fmt.Fprintf(w, "| %s | %.2f | %.2f |\n", c.Name, db, refDB-db)
			default:
				fmt.Fprintf(w, "| %s | %.2f | |\n", c.Name, db)
			}
		}
		fmt.Fprintln(w, "")
	}
	if err := w.Flush(); err != nil {
		fatalf("write %s: %v", outPath, err)
	}
	if found == 0 {
		fatalf("no result CSVs in %s", dir)
	}
	fmt.Printf("wrote %s\n", outPath)
}

func fatalf(f string, a ...any) { fmt.Fprintf(os.Stderr, f+"\n", a...); os.Exit(1) }
