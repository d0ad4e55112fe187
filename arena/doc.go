/*
Package arena implements a generational arena: a flat store of records
addressed by versioned slot indices instead of native pointers.

Records are inserted into slots and addressed by an Index, which pairs the
slot position with a generation counter. When a record is removed its slot
is recycled, but the slot's generation is bumped, so any Index handed out
for the old record turns stale and will no longer resolve. This makes it
safe to keep indices around across arbitrary mutation of the arena: a
lookup with a stale Index simply fails instead of silently aliasing a new
record.

The arena additionally supports resolving two distinct slots at once
(Get2), which callers use to mutate two records simultaneously. Asking for
the same slot twice is a programming error and panics.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package arena

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'scenegraph.arena'.
func tracer() tracing.Trace {
	return tracing.Select("scenegraph.arena")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("scenegraph.arena: "+msg, msgargs...)
		panic(msg)
	}
}
