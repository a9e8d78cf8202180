package rules

import "github.com/feremabraz/osric-rules-engine-sub007/backend/internal/kernel"

// RegisterAll wires every illustrative command in this package onto e.
// Call before Engine.Start.
func RegisterAll(e *kernel.Engine) error {
	registrars := []func(*kernel.Engine) error{
		RegisterRandCommand,
		RegisterInspirePartyCommand,
		RegisterFailCmdCommand,
		RegisterCreateCharacterCommand,
		RegisterStopChainDemoCommand,
		RegisterPrereqDemoCommand,
	}
	for _, register := range registrars {
		if err := register(e); err != nil {
			return err
		}
	}
	return nil
}
