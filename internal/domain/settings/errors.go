package settings

import "errors"

// ErrNoEffectiveSettings means the merged configuration is incomplete. It is
// fatal to the operation that needed it; the engine never falls back to
// silent defaults.
var ErrNoEffectiveSettings = errors.New("no effective settings resolvable")
