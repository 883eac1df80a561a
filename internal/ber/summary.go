package ber

import (
	"os"
	"path/filepath"
	"time"

	"github.com/francoispqt/gojay"
)

// Meta describes the run a summary belongs to.
type Meta struct {
	Seed    int64
	Started time.Time
	NSCK    int
	RSM     int
	RSN     int
	RSK     int
}

func (m Meta) MarshalJSONObject(enc *gojay.Encoder) {
	enc.Int64Key("seed", m.Seed)
	enc.StringKey("started", m.Started.UTC().Format(time.RFC3339))
	enc.IntKey("nsc_k", m.NSCK)
	enc.IntKey("rs_m", m.RSM)
	enc.IntKey("rs_n", m.RSN)
	enc.IntKey("rs_k", m.RSK)
}

func (m Meta) IsNil() bool { return false }

func (p NSCPoint) MarshalJSONObject(enc *gojay.Encoder) {
	enc.Float64Key("ebn0_db", p.EbN0DB)
	enc.IntKey("trials", p.Trials)
	enc.Int64Key("bits", p.Bits)
	enc.Int64Key("soft_errors", p.SoftErrors)
	enc.Int64Key("hard_errors", p.HardErrors)
	enc.Float64Key("ber_soft", p.BERSoft)
	enc.Float64Key("ber_hard", p.BERHard)
	enc.Float64Key("ber_bpsk", p.BERBPSK)
}

func (p NSCPoint) IsNil() bool { return false }

func (p RSPoint) MarshalJSONObject(enc *gojay.Encoder) {
	enc.Float64Key("ebn0_db", p.EbN0DB)
	enc.IntKey("trials", p.Trials)
	enc.Int64Key("bits", p.Bits)
	enc.Int64Key("bit_errors", p.BitErrors)
	enc.Int64Key("block_errors", p.BlockErrors)
	enc.Float64Key("ber", p.BER)
	enc.Float64Key("bler", p.BLER)
	enc.Float64Key("ber_bpsk", p.BERBPSK)
	enc.Float64Key("bler_bpsk", p.BLERBPSK)
	enc.Int64Key("corrected", p.Corrected)
	enc.Int64Key("partially_corrected", p.Partial)
	enc.Int64Key("likely_uncorrectable", p.Uncorrectable)
}

func (p RSPoint) IsNil() bool { return false }

type nscPoints []NSCPoint

func (s nscPoints) MarshalJSONArray(enc *gojay.Encoder) {
	for _, p := range s {
		enc.Object(p)
	}
}

func (s nscPoints) IsNil() bool { return len(s) == 0 }

type rsPoints []RSPoint

func (s rsPoints) MarshalJSONArray(enc *gojay.Encoder) {
	for _, p := range s {
		enc.Object(p)
	}
}

func (s rsPoints) IsNil() bool { return len(s) == 0 }

type summary struct {
	meta Meta
	nsc  nscPoints
	rs   rsPoints
}

func (s *summary) MarshalJSONObject(enc *gojay.Encoder) {
	enc.ObjectKey("run", s.meta)
	enc.ArrayKeyOmitEmpty("nsc", s.nsc)
	enc.ArrayKeyOmitEmpty("rs", s.rs)
}

func (s *summary) IsNil() bool { return s == nil }

// SummarySink collects every point and writes one JSON document on Close.
type SummarySink struct {
	path string
	sum  summary
}

func NewSummarySink(path string, meta Meta) *SummarySink {
	return &SummarySink{path: path, sum: summary{meta: meta}}
}

func (s *SummarySink) WriteNSC(p NSCPoint) error {
	s.sum.nsc = append(s.sum.nsc, p)
	return nil
}

func (s *SummarySink) WriteRS(p RSPoint) error {
	s.sum.rs = append(s.sum.rs, p)
	return nil
}

func (s *SummarySink) Close() error {
	if err := ensureDir(s.path); err != nil {
		return err
	}
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	enc := gojay.BorrowEncoder(f)
	defer enc.Release()
	if err := enc.EncodeObject(&s.sum); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
