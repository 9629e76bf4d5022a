package st7789

// State is the lifecycle state of the controller as tracked by Dev.
type State uint8

// Controller states. Init walks Uninitialized through Ready; any failed
// command sequence moves the device to Faulted until the next Init.
const (
	Uninitialized State = iota
	Resetting
	SleepOut
	Configured
	Ready
	Faulted
)

const stateName = "UninitializedResettingSleepOutConfiguredReadyFaulted"

var stateIndex = [...]uint8{0, 13, 22, 30, 40, 45, 52}

func (s State) String() string {
	if int(s) >= len(stateIndex)-1 {
		return "State(?)"
	}
	return stateName[stateIndex[s]:stateIndex[s+1]]
}
