package video

// Strategy identifies which cut strategy the engine was asked to use.
type Strategy string

const (
	// StrategyCopy repositions container boundaries without re-encoding.
	// Fast, but rejected by the engine for some container/codec combinations.
	StrategyCopy Strategy = "copy"

	// StrategyReencode fully decodes and re-encodes the streams. Slower but
	// works at arbitrary cut points.
	StrategyReencode Strategy = "reencode"
)

// TrimOutcome is the result of a successful trim. It reports which strategy
// actually produced the output file.
type TrimOutcome struct {
	OutputPath string
	Strategy   Strategy
}
