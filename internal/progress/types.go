package progress

// TerminalCapabilities describes what the progress output may use.
type TerminalCapabilities struct {
	IsTTY           bool
	SupportsColor   bool
	SupportsUnicode bool
	Width           int
}

// ProgressSymbols is the symbol set used for progress lines.
type ProgressSymbols struct {
	Checkmark  string
	Failure    string
	SpinnerSet int // Index into spinner.CharSets
}
