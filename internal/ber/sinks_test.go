package ber

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCSVSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")
	s := NewCSVSink(dir)
	require.NoError(t, s.WriteNSC(NSCPoint{EbN0DB: 1, BERSoft: 0.25, BERHard: 0.5, BERBPSK: 0.125}))
	require.NoError(t, s.WriteRS(RSPoint{EbN0DB: 0.5, BER: 1e-3, BERBPSK: 0.5, BLER: 0.25, BLERBPSK: 1}))
	require.NoError(t, s.WriteRS(RSPoint{EbN0DB: 10, BER: 0, BERBPSK: 3.5e-6}))
	require.NoError(t, s.Close())

	read := func(name string) string {
		b, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		return string(b)
	}
	assert.Equal(t, "EbN0_dB,BER_soft,BER_hard,BER_bpsk\n1.0,0.2500000000,0.5000000000,0.1250000000\n", read(NSCFile))
	assert.Equal(t, "EbN0_dB,BER_RS,BER_bpsk\n 0.5,1.0000000000e-03,5.0000000000e-01\n10.0,0.0000000000e+00,3.5000000000e-06\n", read(RSBERFile))
	assert.Equal(t, "EbN0_dB,BLER_RS,BLER_bpsk\n 0.5,2.5000000000e-01,1.0000000000e+00\n10.0,0.0000000000e+00,0.0000000000e+00\n", read(RSBLERFile))
}

func TestCSVSinkOnlyCreatesUsedFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewCSVSink(dir)
	require.NoError(t, s.WriteNSC(NSCPoint{}))
	require.NoError(t, s.Close())
	_, err := os.Stat(filepath.Join(dir, RSBERFile))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestSummarySink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "summary.json")
	meta := Meta{Seed: 9, Started: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), NSCK: 100, RSM: 8, RSN: 255, RSK: 223}
	s := NewSummarySink(path, meta)
	require.NoError(t, s.WriteRS(RSPoint{EbN0DB: 2, Trials: 10, Bits: 17840, BitErrors: 4, BlockErrors: 1, Corrected: 9, Uncorrectable: 1}))
	require.NoError(t, s.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc struct {
		Run struct {
			Seed    int64  `json:"seed"`
			Started string `json:"started"`
			RSN     int    `json:"rs_n"`
		} `json:"run"`
		NSC []json.RawMessage `json:"nsc"`
		RS  []struct {
			EbN0          float64 `json:"ebn0_db"`
			BitErrors     int64   `json:"bit_errors"`
			Corrected     int64   `json:"corrected"`
			Uncorrectable int64   `json:"likely_uncorrectable"`
		} `json:"rs"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, int64(9), doc.Run.Seed)
	assert.Equal(t, "2024-03-01T12:00:00Z", doc.Run.Started)
	assert.Equal(t, 255, doc.Run.RSN)
	assert.Nil(t, doc.NSC, "empty sections are omitted")
	require.Len(t, doc.RS, 1)
	assert.Equal(t, 2.0, doc.RS[0].EbN0)
	assert.Equal(t, int64(4), doc.RS[0].BitErrors)
	assert.Equal(t, int64(9), doc.RS[0].Corrected)
	assert.Equal(t, int64(1), doc.RS[0].Uncorrectable)
}

func TestReportSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	s := NewReportSink(path, Meta{Seed: 3, NSCK: 100, RSM: 8, RSN: 255, RSK: 223})
	s.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	require.NoError(t, s.WriteNSC(NSCPoint{EbN0DB: 1, Trials: 5, BERSoft: 0.01}))
	require.NoError(t, s.WriteRS(RSPoint{EbN0DB: 1.5, Trials: 4, Corrected: 3, Partial: 1}))
	require.NoError(t, s.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	md := string(raw)
	assert.True(t, strings.HasPrefix(md, "# FEC BER Report\n\nGenerated: 2024-01-02T03:04:05Z\n"))
	assert.Contains(t, md, "## NSC rate 1/2, (7,5) octal, K=100")
	assert.Contains(t, md, "| 1.0 | 5 | 1.000e-02 |")
	assert.Contains(t, md, "## RS(255,223) over GF(2^8)")
	assert.Contains(t, md, "| 1.5 | 75.00 | 25.00 | 0.00 |")
}

func TestTee(t *testing.T) {
	ctrl := gomock.NewController(t)
	a, b := NewMockSink(ctrl), NewMockSink(ctrl)
	p := NSCPoint{EbN0DB: 3}
	closeErr := errors.New("close a")

	gomock.InOrder(
		a.EXPECT().WriteNSC(p).Return(nil),
		b.EXPECT().WriteNSC(p).Return(nil),
	)
	a.EXPECT().Close().Return(closeErr)
	b.EXPECT().Close().Return(errors.New("close b"))

	s := Tee(a, b)
	require.NoError(t, s.WriteNSC(p))
	require.ErrorIs(t, s.Close(), closeErr)
}

func TestTeeStopsOnError(t *testing.T) {
	ctrl := gomock.NewController(t)
	a, b := NewMockSink(ctrl), NewMockSink(ctrl)
	boom := errors.New("boom")
	a.EXPECT().WriteRS(gomock.Any()).Return(boom)
	require.ErrorIs(t, Tee(a, b).WriteRS(RSPoint{}), boom)
}
