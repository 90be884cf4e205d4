package simulation

import "github.com/bielosheikin/vesiclesim/simerr"

func missingHydrogen(channel string) error {
	return simerr.At(simerr.MissingDependency, channel, "channel requires free hydrogen but no species named \"h\" exists")
}
