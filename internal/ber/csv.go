package ber

import (
	"fmt"
	"os"
	"path/filepath"
)

// File names and headers read by the plotting scripts.
const (
	NSCFile    = "nsc_ber_data.csv"
	RSBERFile  = "rs_ber_data.csv"
	RSBLERFile = "rs_bler_data.csv"

	nscHeader    = "EbN0_dB,BER_soft,BER_hard,BER_bpsk"
	rsBERHeader  = "EbN0_dB,BER_RS,BER_bpsk"
	rsBLERHeader = "EbN0_dB,BLER_RS,BLER_bpsk"
)

// CSVSink writes the comma separated result files into a directory that is
// created on first use. Files are only created for the schemes that run.
type CSVSink struct {
	dir   string
	files map[string]*os.File
}

func NewCSVSink(dir string) *CSVSink {
	return &CSVSink{dir: dir, files: make(map[string]*os.File)}
}

func (s *CSVSink) file(name, header string) (*os.File, error) {
	if f, ok := s.files[name]; ok {
		return f, nil
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return nil, err
	}
	if _, err := fmt.Fprintln(f, header); err != nil {
		f.Close()
		return nil, err
	}
	s.files[name] = f
	return f, nil
}

func (s *CSVSink) WriteNSC(p NSCPoint) error {
	f, err := s.file(NSCFile, nscHeader)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(f, "%.1f,%.10f,%.10f,%.10f\n", p.EbN0DB, p.BERSoft, p.BERHard, p.BERBPSK)
	return err
}

func (s *CSVSink) WriteRS(p RSPoint) error {
	f, err := s.file(RSBERFile, rsBERHeader)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f, "%4.1f,%.10e,%.10e\n", p.EbN0DB, p.BER, p.BERBPSK); err != nil {
		return err
	}
	f, err = s.file(RSBLERFile, rsBLERHeader)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(f, "%4.1f,%.10e,%.10e\n", p.EbN0DB, p.BLER, p.BLERBPSK)
	return err
}

func (s *CSVSink) Close() error {
	var first error
	for name, f := range s.files {
		if err := f.Close(); err != nil && first == nil {
			first = fmt.Errorf("close %s: %w", name, err)
		}
	}
	s.files = map[string]*os.File{}
	return first
}
