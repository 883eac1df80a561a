package fec

// DefaultMaxInfoBits caps the Viterbi back-pointer arena of one decode call.
const DefaultMaxInfoBits = 1 << 24

type options struct {
	metrics     *Metrics
	strict      bool
	reencode    bool
	maxInfoBits int
}

func defaultOptions() options {
	return options{maxInfoBits: DefaultMaxInfoBits}
}

// Option configures an RSCodec or NSCCodec.
type Option func(*options)

// WithMetrics records decode outcomes on m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithStrictDecoding makes RSCodec.Decode return ErrUncorrectable (along with
// the usual best-effort result) whenever the status is not StatusCorrected.
func WithStrictDecoding() Option {
	return func(o *options) { o.strict = true }
}

// WithReencode makes the Viterbi decoders re-encode the decoded bits into
// NSCResult.Codeword.
func WithReencode() Option {
	return func(o *options) { o.reencode = true }
}

// WithMaxInfoBits limits the frame size an NSCCodec is willing to decode.
// Values <= 0 keep the default.
func WithMaxInfoBits(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxInfoBits = n
		}
	}
}
