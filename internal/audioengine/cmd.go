package audioengine

import "github.com/retrocoderamen/grain-bank-dx/internal/kit"

// BankTag selects which of the two banks a BankCmd targets.
type BankTag uint8

const (
	BankA BankTag = iota
	BankB
)

func (t BankTag) String() string {
	if t == BankA {
		return "A"
	}
	return "B"
}

// Cmd is the enumerated set of commands accepted on the audio command
// channel (§6). Concrete types implement it with an unexported marker
// method so only this package's command set satisfies it.
type Cmd interface{ isCmd() }

type ClockCmd struct{}
type StopCmd struct{}
type AssignTempoCmd struct{ Value float32 }
type AssignBlendCmd struct{ Value float32 } // [0,1]
type OffsetSpeedCmd struct{ Value float32 }
type SaveSceneCmd struct{ Path string }
type LoadSceneCmd struct{ Scene *kit.Scene }
type BankTargetCmd struct {
	Bank BankTag
	Cmd  BankCmd
}

func (ClockCmd) isCmd()        {}
func (StopCmd) isCmd()         {}
func (AssignTempoCmd) isCmd()  {}
func (AssignBlendCmd) isCmd()  {}
func (OffsetSpeedCmd) isCmd()  {}
func (SaveSceneCmd) isCmd()    {}
func (LoadSceneCmd) isCmd()    {}
func (BankTargetCmd) isCmd()   {}

// BankCmd is the per-bank command set dispatched through BankTargetCmd.
type BankCmd interface{ isBankCmd() }

type AssignSpeedCmd struct{ Value float32 }
type AssignDriftCmd struct{ Value float32 }
type AssignBiasCmd struct{ Value float32 }
type AssignWidthCmd struct{ Value float32 }
type AssignReverseCmd struct{ Value bool }
type AssignKitCmd struct{ Index int }
type LoadKitCmd struct{ Index int }
type AssignOnsetCmd struct {
	Pad   uint8
	Alt   bool
	Onset kit.Onset
}
type ForceEventCmd struct{ Event kit.Event }
type PushEventCmd struct{ Event kit.Event }
type TakeRecordCmd struct{ Pad *uint8 }
type BakeRecordCmd struct{ Len uint16 }
type ClearPoolCmd struct{}
type PushPoolCmd struct{ Pad uint8 }

func (AssignSpeedCmd) isBankCmd()   {}
func (AssignDriftCmd) isBankCmd()   {}
func (AssignBiasCmd) isBankCmd()    {}
func (AssignWidthCmd) isBankCmd()   {}
func (AssignReverseCmd) isBankCmd() {}
func (AssignKitCmd) isBankCmd()     {}
func (LoadKitCmd) isBankCmd()       {}
func (AssignOnsetCmd) isBankCmd()   {}
func (ForceEventCmd) isBankCmd()    {}
func (PushEventCmd) isBankCmd()     {}
func (TakeRecordCmd) isBankCmd()    {}
func (BakeRecordCmd) isBankCmd()    {}
func (ClearPoolCmd) isBankCmd()     {}
func (PushPoolCmd) isBankCmd()      {}
