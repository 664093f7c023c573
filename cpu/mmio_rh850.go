//go:build rh850

package cpu

import "embedded/mmio"

type cell = mmio.U32
