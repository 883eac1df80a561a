package ber

//go:generate mockgen -source=sink.go -destination=mock_sink_test.go -package=ber

// NSCPoint is one Eb/N0 point of the convolutional code sweep.
type NSCPoint struct {
	EbN0DB     float64
	Trials     int
	Bits       int64 // information bits sent
	SoftErrors int64
	HardErrors int64
	BERSoft    float64
	BERHard    float64
	BERBPSK    float64 // uncoded reference
}

// RSPoint is one Eb/N0 point of the Reed-Solomon sweep.
type RSPoint struct {
	EbN0DB      float64
	Trials      int
	Bits        int64
	BitErrors   int64
	BlockErrors int64
	BER         float64
	BLER        float64
	BERBPSK     float64
	BLERBPSK    float64 // 1-(1-BERBPSK)^(N*m)

	// decoder status counts
	Corrected     int64
	Partial       int64
	Uncorrectable int64
}

// Sink receives sweep results in Eb/N0 order.
type Sink interface {
	WriteNSC(p NSCPoint) error
	WriteRS(p RSPoint) error
	Close() error
}

// Tee fans every point out to all sinks. Close closes all of them and
// returns the first error.
func Tee(sinks ...Sink) Sink { return tee(sinks) }

type tee []Sink

func (t tee) WriteNSC(p NSCPoint) error {
	for _, s := range t {
		if err := s.WriteNSC(p); err != nil {
			return err
		}
	}
	return nil
}

func (t tee) WriteRS(p RSPoint) error {
	for _, s := range t {
		if err := s.WriteRS(p); err != nil {
			return err
		}
	}
	return nil
}

func (t tee) Close() error {
	var first error
	for _, s := range t {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
