package repair

// Code is the engine-native outcome code. The values match the exit codes
// of par2cmdline-compatible engines.
type Code int

// Engine-native outcome codes.
const (
	CodeSuccess Code = iota
	CodeRepairPossible
	CodeRepairNotPossible
	CodeInvalidArguments
	CodeInsufficientData
	CodeRepairFailed
	CodeFileIOError
	CodeLogicError
	CodeMemoryError
)

// Outcome is the public result taxonomy of one repair invocation. It
// distinguishes caller misuse (InvalidArguments), engine verdicts on
// repairability (RepairPossible, RepairNotPossible, InsufficientData),
// execution failures (RepairFailed, FileIOError), and internal engine
// failures (LogicError, MemoryError).
type Outcome int

// Invocation outcomes.
const (
	// OutcomeSuccess means the files were verified intact or repaired.
	OutcomeSuccess Outcome = iota

	// OutcomeRepairPossible means verification found damage that the
	// available recovery data can fix.
	OutcomeRepairPossible

	// OutcomeRepairNotPossible means damage exceeds the recovery data.
	OutcomeRepairNotPossible

	// OutcomeInvalidArguments means the request was malformed, e.g. an
	// empty recovery-file path.
	OutcomeInvalidArguments

	// OutcomeInsufficientData means the recovery files themselves lack
	// critical packets.
	OutcomeInsufficientData

	// OutcomeRepairFailed means a repair was attempted and did not
	// complete.
	OutcomeRepairFailed

	// OutcomeFileIOError means an I/O error occurred during the repair.
	OutcomeFileIOError

	// OutcomeLogicError means the engine reached an unexpected internal
	// state, or reported a code this layer does not recognize.
	OutcomeLogicError

	// OutcomeMemoryError means the engine ran out of memory.
	OutcomeMemoryError
)

// outcomeFromCode holds the 1:1 translation of engine-native codes.
var outcomeFromCode = map[Code]Outcome{
	CodeSuccess:           OutcomeSuccess,
	CodeRepairPossible:    OutcomeRepairPossible,
	CodeRepairNotPossible: OutcomeRepairNotPossible,
	CodeInvalidArguments:  OutcomeInvalidArguments,
	CodeInsufficientData:  OutcomeInsufficientData,
	CodeRepairFailed:      OutcomeRepairFailed,
	CodeFileIOError:       OutcomeFileIOError,
	CodeLogicError:        OutcomeLogicError,
	CodeMemoryError:       OutcomeMemoryError,
}

// OutcomeFromCode translates an engine-native code into the public
// taxonomy. Unrecognized codes map to OutcomeLogicError rather than being
// treated as success.
func OutcomeFromCode(c Code) Outcome {
	if o, ok := outcomeFromCode[c]; ok {
		return o
	}
	return OutcomeLogicError
}

// String returns a short description of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeRepairPossible:
		return "repair possible"
	case OutcomeRepairNotPossible:
		return "repair not possible"
	case OutcomeInvalidArguments:
		return "invalid arguments"
	case OutcomeInsufficientData:
		return "insufficient recovery data"
	case OutcomeRepairFailed:
		return "repair failed"
	case OutcomeFileIOError:
		return "file I/O error"
	case OutcomeLogicError:
		return "internal logic error"
	case OutcomeMemoryError:
		return "out of memory"
	default:
		return "unknown"
	}
}

// Ok reports whether the outcome leaves the data set usable. A plain
// verification is fine when a repair would merely be possible; once a
// repair was requested, only full success counts.
func (o Outcome) Ok(repairRequested bool) bool {
	switch o {
	case OutcomeSuccess:
		return true
	case OutcomeRepairPossible:
		return !repairRequested
	default:
		return false
	}
}
