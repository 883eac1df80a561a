package fec

// Rate-1/2 non-systematic convolutional code, constraint length 3,
// generators (7,5) octal. The state is the 2-bit shift register: the high
// bit holds the most recent input, the low bit the one before it.

// State is a trellis state.
type State uint8

const (
	StateA State = iota // 00, start and termination state
	StateB              // 01
	StateC              // 10
	StateD              // 11

	numStates = 4
)

func (s State) String() string {
	if s < numStates {
		return string("ABCD"[s])
	}
	return "?"
}

const (
	// TailLength zero bits drive any state back to StateA.
	TailLength = 2
	// FreeDistance is the minimum Hamming distance between two distinct
	// terminated codewords.
	FreeDistance = 5
)

type transition struct {
	next State
	out  [2]uint8
}

// trellis[state][input] fully determines the encoder; no per-state branching.
var trellis = [numStates][2]transition{
	StateA: {{next: StateA, out: [2]uint8{0, 0}}, {next: StateC, out: [2]uint8{1, 1}}},
	StateB: {{next: StateA, out: [2]uint8{1, 1}}, {next: StateC, out: [2]uint8{0, 0}}},
	StateC: {{next: StateB, out: [2]uint8{1, 0}}, {next: StateD, out: [2]uint8{0, 1}}},
	StateD: {{next: StateB, out: [2]uint8{0, 1}}, {next: StateD, out: [2]uint8{1, 0}}},
}

// NextState returns the state reached from s on input bit b.
func NextState(s State, b uint8) State { return trellis[s][b&1].next }

// Output returns the two code bits emitted from s on input bit b.
func Output(s State, b uint8) [2]uint8 { return trellis[s][b&1].out }
