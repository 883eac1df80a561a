package ber

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// ReportSink renders a Markdown report of the sweep on Close.
type ReportSink struct {
	path string
	meta Meta
	nsc  []NSCPoint
	rs   []RSPoint
	now  func() time.Time
}

func NewReportSink(path string, meta Meta) *ReportSink {
	return &ReportSink{path: path, meta: meta, now: time.Now}
}

func (s *ReportSink) WriteNSC(p NSCPoint) error {
	s.nsc = append(s.nsc, p)
	return nil
}

func (s *ReportSink) WriteRS(p RSPoint) error {
	s.rs = append(s.rs, p)
	return nil
}

func (s *ReportSink) Close() error {
	if err := ensureDir(s.path); err != nil {
		return err
	}
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	if err := s.writeMarkdown(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *ReportSink) writeMarkdown(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# FEC BER Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", s.now().Format(time.RFC3339))
	fmt.Fprintf(&b, "Seed: %d\n\n", s.meta.Seed)

	if len(s.nsc) > 0 {
		fmt.Fprintf(&b, "## NSC rate 1/2, (7,5) octal, K=%d\n\n", s.meta.NSCK)
		fmt.Fprintf(&b, "| Eb/N0 (dB) | Trials | BER soft | BER hard | BER BPSK |\n")
		fmt.Fprintf(&b, "|---:|---:|---:|---:|---:|\n")
		for _, p := range s.nsc {
			fmt.Fprintf(&b, "| %.1f | %d | %.3e | %.3e | %.3e |\n", p.EbN0DB, p.Trials, p.BERSoft, p.BERHard, p.BERBPSK)
		}
		fmt.Fprintf(&b, "\n")
	}

	if len(s.rs) > 0 {
		fmt.Fprintf(&b, "## RS(%d,%d) over GF(2^%d)\n\n", s.meta.RSN, s.meta.RSK, s.meta.RSM)
		fmt.Fprintf(&b, "### Error Rates\n\n")
		fmt.Fprintf(&b, "| Eb/N0 (dB) | Trials | BER | BLER | BER BPSK | BLER BPSK |\n")
		fmt.Fprintf(&b, "|---:|---:|---:|---:|---:|---:|\n")
		for _, p := range s.rs {
			fmt.Fprintf(&b, "| %.1f | %d | %.3e | %.3e | %.3e | %.3e |\n", p.EbN0DB, p.Trials, p.BER, p.BLER, p.BERBPSK, p.BLERBPSK)
		}
		fmt.Fprintf(&b, "\n")

		fmt.Fprintf(&b, "### Decoder Status (%%)\n\n")
		fmt.Fprintf(&b, "| Eb/N0 (dB) | Corrected | Partial | Uncorrectable |\n")
		fmt.Fprintf(&b, "|---:|---:|---:|---:|\n")
		for _, p := range s.rs {
			if p.Trials == 0 {
				continue
			}
			pct := func(n int64) float64 { return 100 * float64(n) / float64(p.Trials) }
			fmt.Fprintf(&b, "| %.1f | %.2f | %.2f | %.2f |\n", p.EbN0DB, pct(p.Corrected), pct(p.Partial), pct(p.Uncorrectable))
		}
		fmt.Fprintf(&b, "\n")
	}

	fmt.Fprintf(&b, "---\n\n")
	fmt.Fprintf(&b, "Notes:\n\n- Channel: BPSK over AWGN, sigma^2 = 1/(2 R Eb/N0).\n- NSC soft decoding uses LLR = 2y/sigma^2; hard decoding slices at zero.\n- RS decoding is hard decision; BLER BPSK assumes N*m independent bits.\n")
	_, err := io.WriteString(w, b.String())
	return err
}
