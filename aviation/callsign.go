// aviation/callsign.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"strings"
	"sync"
)

// Callsign is an interned aircraft identifier (e.g., "AAL1234"). Interning
// means two callsigns with the same text always compare equal as plain
// strings and never need a deep comparison.
type Callsign string

var (
	callsignMu     sync.Mutex
	callsignIntern = make(map[string]Callsign)
)

// Intern returns the canonical Callsign for s, uppercased. The process-wide
// interning table is the one piece of global mutable state this package
// owns; it is populated at boot and never torn down.
func Intern(s string) Callsign {
	s = strings.ToUpper(strings.TrimSpace(s))

	callsignMu.Lock()
	defer callsignMu.Unlock()

	if cs, ok := callsignIntern[s]; ok {
		return cs
	}
	cs := Callsign(s)
	callsignIntern[s] = cs
	return cs
}
