package constants

// Grid constants
const (
	MinBoardSize = 7
	MaxBoardSize = 25
)

// Solver limits
const (
	DefaultExhaustiveCallLimit = 20000
	GeneratorSampleCallLimit   = 200000
	GeneratorSampleAttempts    = 20
	GeneratorMaxTuningIters    = 500
)

// Difficulties
const (
	DifficultyBasic        = "basic"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
	DifficultyUnreasonable = "unreasonable"
)

// Difficulty compact keys (for the pre-generated puzzle batch file format)
var DifficultyKeys = map[string]string{
	DifficultyBasic:        "b",
	DifficultyIntermediate: "i",
	DifficultyAdvanced:     "a",
	DifficultyUnreasonable: "u",
}

// API version
const APIVersion = "0.1.0"

// DefaultPort is the fallback HTTP listen port.
const DefaultPort = "8080"

// DateFormat is the format used by the daily-puzzle seed derivation.
const DateFormat = "2006-01-02"
