package editor

// echoState suppresses re-importing dimensions the editor just exported.
// Publishing rows/columns moves to echoAwaiting; the next inbound dimension
// update is swallowed and moves back to echoIdle.
type echoState int

const (
	echoIdle echoState = iota
	echoAwaiting
)

func (s echoState) String() string {
	switch s {
	case echoAwaiting:
		return "AwaitingEcho"
	default:
		return "Idle"
	}
}

// exported records that dimensions were just pushed outward.
func (s echoState) exported() echoState {
	return echoAwaiting
}

// inbound consumes one inbound update. It reports whether the update is the
// echo of our own export and must be ignored.
func (s echoState) inbound() (echoState, bool) {
	if s == echoAwaiting {
		return echoIdle, true
	}
	return echoIdle, false
}
